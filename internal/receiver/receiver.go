// Package receiver defines the boundary to the radio-control receiver: a
// fixed set of normalized channel readings refreshed once per polling cycle.
package receiver

// NumChannels is the number of receiver channels the pipeline consumes.
// Transmitters in USB joystick mode commonly expose eight.
const NumChannels = 8

// Channel value range. Readings are normalized pulse widths: 0 is the stick
// or switch rest position, the extremes are full deflection.
const (
	ChannelMin  = -1000
	ChannelMax  = 1000
	ChannelRest = 0
)

// Channel identifies one receiver channel by index.
type Channel int

// Snapshot is an immutable set of channel readings for one cycle. Values are
// within [ChannelMin, ChannelMax].
type Snapshot [NumChannels]int

// Get returns the reading for ch, or the rest value for an out-of-range
// channel so a misconfigured assignment degrades to a silent input rather
// than a panic in the control loop.
func (s Snapshot) Get(ch Channel) int {
	if ch < 0 || int(ch) >= NumChannels {
		return ChannelRest
	}
	return s[ch]
}

// Reader is the source of channel snapshots. Implementations own signal
// acquisition; the control loop only ever sees the snapshot, never partially
// written channel data.
type Reader interface {
	// Snapshot returns the most recent complete set of channel readings.
	Snapshot() Snapshot
	// Available reports whether every channel has produced at least one
	// reading since startup. The control loop does not enter cycle 0
	// until this is true.
	Available() bool
}
