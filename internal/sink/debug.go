package sink

import "log"

// DebugSink logs every emission as one line per event. It is wired into the
// output chain only when the debug flag is set, so the disabled case costs
// nothing on the control path.
type DebugSink struct{}

func (DebugSink) SetAxis(a Axis, value int) { debugf("axis", a.String(), value) }

func (DebugSink) PressButton(index int) { debugf("button-press", "", index) }

func (DebugSink) ReleaseButton(index int) { debugf("button-release", "", index) }

func (DebugSink) KeyDown(k Key) { debugf("key-down", string(k), 0) }

func (DebugSink) KeyUp(k Key) { debugf("key-up", string(k), 0) }

// debugf is the single diagnostic entry point: one event kind, an optional
// textual tag, and a numeric value.
func debugf(kind, tag string, value int) {
	if tag != "" {
		log.Printf("[DEBUG] %s %s=%d", kind, tag, value)
		return
	}
	log.Printf("[DEBUG] %s %d", kind, value)
}
