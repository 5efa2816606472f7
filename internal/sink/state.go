package sink

import "math"

// MaxButtons is the number of discrete button slots tracked for monitoring.
const MaxButtons = 8

// monitorKeys fixes the key set and its display order for monitoring.
var monitorKeys = [...]Key{KeySpace, KeyEnter, KeyUp, KeyDown}

type AxesState struct {
	Steering    int `json:"steering"`
	Throttle    int `json:"throttle"`
	Accelerator int `json:"accelerator"`
	Brake       int `json:"brake"`
}

type ButtonsState [MaxButtons]bool

type KeysState [len(monitorKeys)]bool

// ControlState is a snapshot of everything the pipeline has emitted: the
// last value per axis, the pressed latch per button and key, the active
// output mode and the current blend factor.
type ControlState struct {
	Axes         AxesState    `json:"axes"`
	Buttons      ButtonsState `json:"buttons"`
	Keys         KeysState    `json:"keys"`
	KeyboardMode bool         `json:"keyboardMode"`
	Blend        float64      `json:"blend"`
}

// DeltaChanges carries only the parts of a ControlState that changed.
type DeltaChanges struct {
	Axes         *AxesState    `json:"axes,omitempty"`
	Buttons      *ButtonsState `json:"buttons,omitempty"`
	Keys         *KeysState    `json:"keys,omitempty"`
	KeyboardMode *bool         `json:"keyboardMode,omitempty"`
	Blend        *float64      `json:"blend,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Axes == nil &&
		d.Buttons == nil &&
		d.Keys == nil &&
		d.KeyboardMode == nil &&
		d.Blend == nil
}

const blendThreshold = 0.001

func blendEqual(a, b float64) bool {
	return math.Abs(a-b) < blendThreshold
}

// ComputeDelta compares two states and returns the changed parts.
func ComputeDelta(old, new_ ControlState) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Axes != new_.Axes {
		d.Axes = &new_.Axes
	}
	if old.Buttons != new_.Buttons {
		d.Buttons = &new_.Buttons
	}
	if old.Keys != new_.Keys {
		d.Keys = &new_.Keys
	}
	if old.KeyboardMode != new_.KeyboardMode {
		d.KeyboardMode = &new_.KeyboardMode
	}
	if !blendEqual(old.Blend, new_.Blend) {
		d.Blend = &new_.Blend
	}

	return d
}

func keySlot(k Key) int {
	for i, mk := range monitorKeys {
		if mk == k {
			return i
		}
	}
	return -1
}

// ValidKey reports whether k belongs to the fixed key set the keyboard
// output supports.
func ValidKey(k Key) bool {
	return keySlot(k) >= 0
}
