package sink

import "testing"

func TestComputeDeltaEmptyForEqualStates(t *testing.T) {
	s := ControlState{}
	s.Axes.Steering = 300
	s.Buttons[1] = true

	d := ComputeDelta(s, s)
	if !d.IsEmpty() {
		t.Errorf("delta of identical states not empty: %+v", d)
	}
}

func TestComputeDeltaCarriesOnlyChangedParts(t *testing.T) {
	old := ControlState{}
	new_ := old
	new_.Axes.Brake = 400

	d := ComputeDelta(old, new_)
	if d.Axes == nil || d.Axes.Brake != 400 {
		t.Errorf("axes change not carried: %+v", d.Axes)
	}
	if d.Buttons != nil || d.Keys != nil || d.KeyboardMode != nil || d.Blend != nil {
		t.Errorf("unchanged parts present in delta: %+v", d)
	}
}

func TestComputeDeltaIgnoresSubThresholdBlendChange(t *testing.T) {
	old := ControlState{Blend: 0.7}
	new_ := ControlState{Blend: 0.7005}

	if d := ComputeDelta(old, new_); d.Blend != nil {
		t.Errorf("blend delta emitted for sub-threshold change: %v", *d.Blend)
	}

	new_.Blend = 0.75
	if d := ComputeDelta(old, new_); d.Blend == nil {
		t.Error("blend delta missing for real change")
	}
}

func TestMonitorEmitsOnlyOnChange(t *testing.T) {
	m := NewMonitor()

	m.SetAxis(AxisSteering, 500)
	select {
	case s := <-m.Changes():
		if s.Axes.Steering != 500 {
			t.Errorf("snapshot steering = %d, want 500", s.Axes.Steering)
		}
	default:
		t.Fatal("no snapshot emitted for a state change")
	}

	m.SetAxis(AxisSteering, 500)
	select {
	case <-m.Changes():
		t.Error("snapshot emitted for an unchanged state")
	default:
	}
}

func TestValidKey(t *testing.T) {
	for _, k := range []Key{KeySpace, KeyEnter, KeyUp, KeyDown} {
		if !ValidKey(k) {
			t.Errorf("ValidKey(%q) = false, want true", k)
		}
	}
	for _, k := range []Key{"spacebar", "", "f13"} {
		if ValidKey(k) {
			t.Errorf("ValidKey(%q) = true, want false", k)
		}
	}
}

func TestMonitorIgnoresUnknownKeysAndBadIndexes(t *testing.T) {
	m := NewMonitor()

	m.KeyDown(Key("f13"))
	m.PressButton(-1)
	m.PressButton(MaxButtons)

	select {
	case <-m.Changes():
		t.Error("out-of-range input mutated monitor state")
	default:
	}
}
