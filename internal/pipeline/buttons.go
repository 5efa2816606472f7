package pipeline

import "github.com/rcdrive/rcdrive/internal/receiver"

// buttonState is the Released/Pressed latch for one discrete channel. The
// output target chosen at press time is remembered so the matching release
// goes to the same sink even if the mode flips in between.
type buttonState struct {
	spec        ButtonSpec
	pressed     bool
	viaKeyboard bool
}

func (p *Pipeline) cycleButtons(snap receiver.Snapshot) {
	p.updateMode(snap.Get(p.settings.ModeChannel))
	if p.status != nil {
		p.status.SetOutputMode(p.keyboardMode)
	}

	for i := range p.buttons {
		b := &p.buttons[i]
		pressed := snap.Get(b.spec.Channel) > b.spec.Threshold
		if pressed == b.pressed {
			continue
		}
		b.pressed = pressed

		if pressed {
			b.viaKeyboard = p.keyboardMode
			if b.viaKeyboard {
				p.keys.KeyDown(b.spec.Key)
			} else {
				p.out.PressButton(b.spec.Index)
			}
		} else {
			if b.viaKeyboard {
				p.keys.KeyUp(b.spec.Key)
			} else {
				p.out.ReleaseButton(b.spec.Index)
			}
		}
	}
}

// updateMode reads the mode channel fresh each cycle. With hysteresis the
// mode only flips once the value clears the threshold by the configured
// margin; with a zero margin this is the plain above/below comparison.
func (p *Pipeline) updateMode(raw int) {
	thr := p.settings.ModeThreshold
	h := p.settings.ModeHysteresis

	if !p.modePrimed {
		p.keyboardMode = raw <= thr
		p.modePrimed = true
		return
	}

	if p.keyboardMode {
		if raw > thr+h {
			p.keyboardMode = false
		}
	} else if raw <= thr-h {
		p.keyboardMode = true
	}
}
