// Package overlay turns a multi-touch pointer stream into press/release
// transitions for a set of on-screen virtual buttons.
//
// The package has no knowledge of any host input API: touch sources translate
// their native events into TouchEvent records, and sinks consume the Change
// values returned by Overlay.Dispatch.
package overlay

import "fmt"

// Action is the kind of pointer transition carried by a TouchEvent.
type Action uint8

const (
	ActionDown Action = iota
	ActionUp
	ActionMove
	// ActionCancel is emitted by sources that lose a pointer without a
	// proper lift. Buttons ignore it; hosts call Overlay.ReleaseAll instead.
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction returns the Action named by s ("down", "up", "move" or
// "cancel").
func ParseAction(s string) (Action, error) {
	for a := ActionDown; a <= ActionCancel; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// NoPointer marks a button that is not owned by any pointer.
const NoPointer = -1

// TouchEvent is a single pointer transition in surface coordinates.
type TouchEvent struct {
	Action  Action
	Pointer int
	X, Y    int
}

// State is the logical state of a virtual button as seen by input consumers.
type State uint8

const (
	Released State = iota
	Pressed
)

func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Change reports a button whose state flipped while processing one event.
type Change struct {
	ButtonID int
	State    State
}
