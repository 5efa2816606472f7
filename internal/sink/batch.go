package sink

// Batch defers axis writes so all axes updated within one cycle reach the
// underlying sink together. Button edges pass through immediately; only the
// continuous axes benefit from atomic per-cycle flushing. Last write per
// axis wins within a cycle.
type Batch struct {
	next    OutputSink
	pending [NumAxes]int
	dirty   [NumAxes]bool
}

func NewBatch(next OutputSink) *Batch {
	return &Batch{next: next}
}

func (b *Batch) SetAxis(a Axis, value int) {
	if a < 0 || a >= NumAxes {
		return
	}
	b.pending[a] = value
	b.dirty[a] = true
}

func (b *Batch) PressButton(index int)   { b.next.PressButton(index) }
func (b *Batch) ReleaseButton(index int) { b.next.ReleaseButton(index) }

// Flush forwards all deferred axis writes in axis order and clears the
// pending set. Called once per cycle by the control loop.
func (b *Batch) Flush() {
	for a := Axis(0); a < NumAxes; a++ {
		if b.dirty[a] {
			b.next.SetAxis(a, b.pending[a])
			b.dirty[a] = false
		}
	}
}
