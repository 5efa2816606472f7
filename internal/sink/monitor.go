package sink

import "sync"

// Monitor records everything the pipeline emits and publishes state change
// snapshots on a channel for the websocket broadcaster. It observes outputs
// only; a slow or absent consumer never blocks the control loop.
type Monitor struct {
	mu      sync.RWMutex
	state   ControlState
	changes chan ControlState
}

func NewMonitor() *Monitor {
	return &Monitor{
		changes: make(chan ControlState, 64),
	}
}

// Changes returns the channel on which state snapshots are sent.
func (m *Monitor) Changes() <-chan ControlState {
	return m.changes
}

// CurrentState returns a snapshot of the current emitted-output state.
func (m *Monitor) CurrentState() ControlState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) SetAxis(a Axis, value int) {
	m.mutate(func(s *ControlState) {
		switch a {
		case AxisSteering:
			s.Axes.Steering = value
		case AxisThrottle:
			s.Axes.Throttle = value
		case AxisAccelerator:
			s.Axes.Accelerator = value
		case AxisBrake:
			s.Axes.Brake = value
		}
	})
}

func (m *Monitor) PressButton(index int)   { m.setButton(index, true) }
func (m *Monitor) ReleaseButton(index int) { m.setButton(index, false) }

func (m *Monitor) setButton(index int, pressed bool) {
	if index < 0 || index >= MaxButtons {
		return
	}
	m.mutate(func(s *ControlState) {
		s.Buttons[index] = pressed
	})
}

func (m *Monitor) KeyDown(k Key) { m.setKey(k, true) }
func (m *Monitor) KeyUp(k Key)   { m.setKey(k, false) }

func (m *Monitor) setKey(k Key, down bool) {
	slot := keySlot(k)
	if slot < 0 {
		return
	}
	m.mutate(func(s *ControlState) {
		s.Keys[slot] = down
	})
}

// SetBlend records the per-cycle blend factor.
func (m *Monitor) SetBlend(b float64) {
	m.mutate(func(s *ControlState) {
		s.Blend = b
	})
}

// SetOutputMode records whether button edges currently go to the keyboard.
func (m *Monitor) SetOutputMode(keyboard bool) {
	m.mutate(func(s *ControlState) {
		s.KeyboardMode = keyboard
	})
}

func (m *Monitor) mutate(f func(*ControlState)) {
	m.mu.Lock()
	prev := m.state
	f(&m.state)
	s := m.state
	m.mu.Unlock()

	if s == prev {
		return
	}

	select {
	case m.changes <- s:
	default:
		// Drop if the channel is full to avoid blocking the control loop.
	}
}
