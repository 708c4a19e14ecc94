package hotkeys

import (
	"fmt"

	"github.com/Alia5/vtouch/overlay"
)

// Name identifies a hotkey action a layout button can be bound to.
type Name string

const TurboToggle Name = "turbo"

// Router consumes changes for buttons bound to hotkeys and passes the rest
// through.
type Router struct {
	bindings map[int]Name
	turbo    *Turbo
}

// NewRouter validates bindings (button id to hotkey) against the supported
// hotkeys.
func NewRouter(bindings map[int]Name, turbo *Turbo) (*Router, error) {
	for id, name := range bindings {
		switch name {
		case TurboToggle:
			if turbo == nil {
				return nil, fmt.Errorf("button %d: hotkey %q needs turbo support", id, name)
			}
		default:
			return nil, fmt.Errorf("button %d: unknown hotkey %q", id, name)
		}
	}
	return &Router{bindings: bindings, turbo: turbo}, nil
}

// Route fires hotkeys on press and returns the changes that are not hotkeys.
func (r *Router) Route(changes []overlay.Change) ([]overlay.Change, error) {
	var rest []overlay.Change
	for _, c := range changes {
		name, ok := r.bindings[c.ButtonID]
		if !ok {
			rest = append(rest, c)
			continue
		}
		if c.State != overlay.Pressed {
			continue
		}
		if name == TurboToggle {
			if err := r.turbo.Toggle(); err != nil {
				return rest, fmt.Errorf("toggle turbo: %w", err)
			}
		}
	}
	return rest, nil
}

// MemorySpeed holds the frame limit for hosts whose emulation core polls it.
type MemorySpeed struct{ Percent int }

func (m *MemorySpeed) FrameLimit() int { return m.Percent }

func (m *MemorySpeed) SetFrameLimit(p int) error {
	if p <= 0 {
		return fmt.Errorf("invalid frame limit %d", p)
	}
	m.Percent = p
	return nil
}
