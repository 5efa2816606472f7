package sink

// Multi fans axis and button calls out to several sinks in order.
type Multi []OutputSink

func (m Multi) SetAxis(a Axis, value int) {
	for _, s := range m {
		s.SetAxis(a, value)
	}
}

func (m Multi) PressButton(index int) {
	for _, s := range m {
		s.PressButton(index)
	}
}

func (m Multi) ReleaseButton(index int) {
	for _, s := range m {
		s.ReleaseButton(index)
	}
}

// MultiKeys fans key calls out to several key sinks in order.
type MultiKeys []KeySink

func (m MultiKeys) KeyDown(k Key) {
	for _, s := range m {
		s.KeyDown(k)
	}
}

func (m MultiKeys) KeyUp(k Key) {
	for _, s := range m {
		s.KeyUp(k)
	}
}
