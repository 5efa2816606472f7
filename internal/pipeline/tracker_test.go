package pipeline

import "testing"

func TestTrackerDeadzoneForcesRest(t *testing.T) {
	tr := NewTracker()
	for _, raw := range []int{12, -12, 25, -25, 0} {
		eff, _ := tr.Update(0, raw, 25)
		if eff != 0 {
			t.Errorf("Update(raw=%d, deadzone=25) effective = %d, want 0", raw, eff)
		}
	}
}

func TestTrackerFirstObservationCountsAsChanged(t *testing.T) {
	tr := NewTracker()
	if _, changed := tr.Update(0, 0, 25); !changed {
		t.Error("first observation should report changed")
	}
	if _, changed := tr.Update(0, 0, 25); changed {
		t.Error("repeated rest reading should not report changed")
	}
}

func TestTrackerChangeDetection(t *testing.T) {
	tr := NewTracker()
	tr.Update(0, 0, 25)

	if _, changed := tr.Update(0, 500, 25); !changed {
		t.Error("leaving rest should report changed")
	}
	if _, changed := tr.Update(0, 500, 25); changed {
		t.Error("identical reading should not report changed")
	}
	if _, changed := tr.Update(0, 510, 25); !changed {
		t.Error("different reading outside deadzone should report changed")
	}
}

func TestTrackerReturnToRestEmitsOnce(t *testing.T) {
	tr := NewTracker()
	tr.Update(0, 500, 25)

	eff, changed := tr.Update(0, 10, 25)
	if eff != 0 || !changed {
		t.Fatalf("re-entering deadzone: effective=%d changed=%v, want 0,true", eff, changed)
	}

	// Noise inside the band must stay silent after the one rest event.
	for _, raw := range []int{5, -8, 20, -25, 0} {
		if _, changed := tr.Update(0, raw, 25); changed {
			t.Errorf("raw=%d inside deadzone reported changed after rest", raw)
		}
	}
}

func TestTrackerChannelsAreIndependent(t *testing.T) {
	tr := NewTracker()
	tr.Update(0, 500, 25)
	if _, changed := tr.Update(1, 500, 25); !changed {
		t.Error("channel 1 first observation should be independent of channel 0")
	}
}
