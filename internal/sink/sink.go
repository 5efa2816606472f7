// Package sink defines the output boundary of the control pipeline: absolute
// axis writes, edge-triggered button presses, and key events, plus the
// batching, fan-out and monitoring implementations the bridge wires together.
package sink

// Axis identifies one continuous simulator control.
type Axis int

const (
	AxisSteering Axis = iota
	AxisThrottle
	AxisAccelerator
	AxisBrake
	NumAxes
)

func (a Axis) String() string {
	switch a {
	case AxisSteering:
		return "steering"
	case AxisThrottle:
		return "throttle"
	case AxisAccelerator:
		return "accelerator"
	case AxisBrake:
		return "brake"
	}
	return "unknown"
}

// Bounds returns the declared output range for the axis. Steering and the
// combined throttle are symmetric; accelerator and brake are one-sided.
func (a Axis) Bounds() (min, max int) {
	switch a {
	case AxisSteering, AxisThrottle:
		return -1000, 1000
	default:
		return 0, 1000
	}
}

// Key names a simulator keyboard key for the keyboard output mode.
type Key string

const (
	KeySpace Key = "space"
	KeyEnter Key = "enter"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
)

// OutputSink accepts absolute axis values and discrete button edges. Axis
// values are already clamped to Axis.Bounds by the pipeline; button calls
// arrive exactly once per state transition.
type OutputSink interface {
	SetAxis(a Axis, value int)
	PressButton(index int)
	ReleaseButton(index int)
}

// KeySink accepts discrete key edges for games expecting a keyboard
// interface. Calls are mutually exclusive with button calls per the output
// mode selection.
type KeySink interface {
	KeyDown(k Key)
	KeyUp(k Key)
}
