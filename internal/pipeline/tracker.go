package pipeline

import "github.com/rcdrive/rcdrive/internal/receiver"

// Tracker suppresses redundant downstream work: it applies the deadzone to
// each channel's raw reading and reports whether the effective value changed
// since the previous cycle. Readings inside the deadzone collapse to rest,
// so a stick hovering around center stays numerically silent after the one
// return-to-rest change.
type Tracker struct {
	last   map[receiver.Channel]int
	primed map[receiver.Channel]bool
}

func NewTracker() *Tracker {
	return &Tracker{
		last:   make(map[receiver.Channel]int),
		primed: make(map[receiver.Channel]bool),
	}
}

// Update applies the deadzone to raw and returns the effective value along
// with whether it differs from the previous cycle's effective value. The
// first observation of a channel always counts as changed.
func (t *Tracker) Update(ch receiver.Channel, raw, deadzone int) (effective int, changed bool) {
	effective = raw
	if raw >= -deadzone && raw <= deadzone {
		effective = receiver.ChannelRest
	}

	if t.primed[ch] && t.last[ch] == effective {
		return effective, false
	}
	t.last[ch] = effective
	t.primed[ch] = true
	return effective, true
}
