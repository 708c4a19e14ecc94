// Package xbox360 maps virtual button changes onto an Xbox 360 pad state
// streamed to a VIIPER device.
package xbox360

import (
	"fmt"
	"sync"

	"github.com/Alia5/vtouch/device"
	"github.com/Alia5/vtouch/overlay"
)

// Pad holds the pad state derived from the overlay and pushes it to the
// device whenever it changes.
//
// Several buttons may drive the same control (for example diagonal d-pad
// regions); the control stays active while any of them is pressed. A button
// reported pressed again while already held counts once.
type Pad struct {
	w        device.StateWriter
	controls map[int]Control

	mu     sync.Mutex
	state  InputState
	active map[Control]map[int]struct{}
}

// NewPad resolves inputs (button id to input name) into controls.
func NewPad(w device.StateWriter, inputs map[int]string) (*Pad, error) {
	controls := make(map[int]Control, len(inputs))
	for id, name := range inputs {
		c, err := LookupControl(name)
		if err != nil {
			return nil, fmt.Errorf("button %d: %w", id, err)
		}
		controls[id] = c
	}
	return &Pad{w: w, controls: controls, active: map[Control]map[int]struct{}{}}, nil
}

// Apply folds changes into the pad state and sends it if anything changed.
// Changes for buttons without a mapped control are ignored.
func (p *Pad) Apply(changes []overlay.Change) error {
	p.mu.Lock()
	before := p.state
	for _, c := range changes {
		ctl, ok := p.controls[c.ButtonID]
		if !ok {
			continue
		}
		held := p.active[ctl]
		if c.State == overlay.Pressed {
			if held == nil {
				held = map[int]struct{}{}
				p.active[ctl] = held
			}
			held[c.ButtonID] = struct{}{}
		} else {
			delete(held, c.ButtonID)
		}
		p.set(ctl, len(held) > 0)
	}
	st := p.state
	p.mu.Unlock()

	if st == before {
		return nil
	}
	if err := p.w.WriteBinary(&st); err != nil {
		return fmt.Errorf("write pad state: %w", err)
	}
	return nil
}

func (p *Pad) set(c Control, on bool) {
	var v uint8
	if on {
		v = 0xff
	}
	switch c.Trigger {
	case LeftTrigger:
		p.state.LT = v
	case RightTrigger:
		p.state.RT = v
	default:
		if on {
			p.state.Buttons |= c.Mask
		} else {
			p.state.Buttons &^= c.Mask
		}
	}
}

// State returns the current pad state.
func (p *Pad) State() InputState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
