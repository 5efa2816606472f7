// Package pipeline turns receiver channel snapshots into simulator control
// outputs: deadzone filtering, change detection, curve shaping and
// edge-triggered button events, all driven by a single-threaded cycle.
package pipeline

import (
	"github.com/rcdrive/rcdrive/internal/curve"
	"github.com/rcdrive/rcdrive/internal/receiver"
	"github.com/rcdrive/rcdrive/internal/sink"
)

// ButtonSpec maps one discrete receiver channel to a simulator button index
// and its keyboard-mode key.
type ButtonSpec struct {
	Channel   receiver.Channel
	Index     int
	Key       sink.Key
	Threshold int
}

// Settings is the per-instance wiring of the pipeline: channel assignments,
// deadzone, curve parameters and button mappings. Read-only during a cycle.
type Settings struct {
	SteeringChannel receiver.Channel
	ThrottleChannel receiver.Channel
	BlendChannel    receiver.Channel
	ModeChannel     receiver.Channel

	Deadzone         int
	SteeringExponent float64

	// Blend remap endpoints. The blend knob channel's full travel maps
	// linearly onto [BlendMin, BlendMax]; values outside [0,1] are
	// deliberate extrapolation, tuned for low- and high-grip driving.
	BlendMin float64
	BlendMax float64

	// Mode channel values above ModeThreshold route button edges to the
	// HID button sink, at or below to the keyboard sink. ModeHysteresis
	// widens the crossing so a value sitting on the threshold cannot
	// flip the mode every cycle; zero restores the raw comparison.
	ModeThreshold  int
	ModeHysteresis int

	Buttons []ButtonSpec
}

// Toggles are the curve enable switches, polled once per cycle from the
// configuration source.
type Toggles struct {
	SteeringExpo     bool
	AcceleratorCurve bool
	BrakeCurve       bool
}

// StatusSink receives per-cycle pipeline status for monitoring. Optional.
type StatusSink interface {
	SetBlend(b float64)
	SetOutputMode(keyboard bool)
}

// Pipeline owns all per-axis and per-button state. It is driven by exactly
// one goroutine; one Cycle call processes one immutable snapshot.
type Pipeline struct {
	settings Settings
	tracker  *Tracker

	lastOut [sink.NumAxes]int
	emitted [sink.NumAxes]bool

	buttons      []buttonState
	keyboardMode bool
	modePrimed   bool

	out    sink.OutputSink
	keys   sink.KeySink
	status StatusSink
}

// New creates a pipeline writing axis and button output to out and
// keyboard-mode edges to keys. status may be nil.
func New(settings Settings, out sink.OutputSink, keys sink.KeySink, status StatusSink) *Pipeline {
	p := &Pipeline{
		settings: settings,
		tracker:  NewTracker(),
		out:      out,
		keys:     keys,
		status:   status,
	}
	for _, spec := range settings.Buttons {
		p.buttons = append(p.buttons, buttonState{spec: spec})
	}
	return p
}

// Cycle runs one polling cycle in fixed order: blend factor, steering,
// throttle/brake, buttons. snap is immutable for the duration of the call;
// toggles are the configuration snapshot for this cycle.
func (p *Pipeline) Cycle(snap receiver.Snapshot, toggles Toggles) {
	blend := p.blendFactor(snap)
	if p.status != nil {
		p.status.SetBlend(blend)
	}

	p.cycleSteering(snap, toggles)
	p.cycleThrottle(snap, toggles, blend)
	p.cycleButtons(snap)
}

// blendFactor remaps the blend knob channel's full travel onto the
// configured blend range. Computed fresh each cycle and shared by the
// accelerator and brake curves.
func (p *Pipeline) blendFactor(snap receiver.Snapshot) float64 {
	raw := snap.Get(p.settings.BlendChannel)
	return curve.MapRange(float64(raw),
		receiver.ChannelMin, receiver.ChannelMax,
		p.settings.BlendMin, p.settings.BlendMax)
}

func (p *Pipeline) cycleSteering(snap receiver.Snapshot, toggles Toggles) {
	ch := p.settings.SteeringChannel
	eff, changed := p.tracker.Update(ch, snap.Get(ch), p.settings.Deadzone)
	if !changed {
		return
	}

	v := eff
	if toggles.SteeringExpo {
		v = curve.Steering(eff, receiver.ChannelMax, p.settings.SteeringExponent)
	}
	p.emit(sink.AxisSteering, v)
}

// cycleThrottle splits the bidirectional throttle channel: the positive side
// drives the accelerator and forces the brake to rest, the negative side
// drives the brake by magnitude and forces the accelerator to rest, and an
// in-deadzone reading rests both. The raw combined value also goes out on
// the throttle axis, unshaped.
func (p *Pipeline) cycleThrottle(snap receiver.Snapshot, toggles Toggles, blend float64) {
	ch := p.settings.ThrottleChannel
	eff, changed := p.tracker.Update(ch, snap.Get(ch), p.settings.Deadzone)
	if !changed {
		return
	}

	p.emit(sink.AxisThrottle, eff)

	accel, brake := 0, 0
	switch {
	case eff > 0:
		accel = eff
	case eff < 0:
		brake = -eff
	}

	if accel > 0 && toggles.AcceleratorCurve {
		accel = curve.ThrottleBrake(accel, receiver.ChannelMax, blend)
	}
	if brake > 0 && toggles.BrakeCurve {
		brake = curve.ThrottleBrake(brake, receiver.ChannelMax, blend)
	}

	p.emit(sink.AxisAccelerator, accel)
	p.emit(sink.AxisBrake, brake)
}

// emit clamps v into the axis bounds and forwards it, unless it equals the
// previously emitted value for that axis.
func (p *Pipeline) emit(a sink.Axis, v int) {
	min, max := a.Bounds()
	v = curve.Clamp(v, min, max)
	if p.emitted[a] && p.lastOut[a] == v {
		return
	}
	p.lastOut[a] = v
	p.emitted[a] = true
	p.out.SetAxis(a, v)
}
