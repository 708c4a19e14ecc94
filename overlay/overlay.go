package overlay

import (
	"image"
	"slices"
)

// Overlay owns a set of virtual buttons and feeds every touch event to each
// of them.
//
// Buttons are evaluated independently: a touch landing in the overlap of two
// buttons presses both. An Overlay is not safe for concurrent use; events
// must be dispatched serially from a single goroutine.
type Overlay struct {
	buttons []*Button
	haptic  HapticFunc

	configuring bool
	// drags maps a configure-mode pointer to the buttons it is moving.
	drags map[int][]*Button
}

// New creates an overlay owning buttons. haptic may be nil.
func New(buttons []*Button, haptic HapticFunc) *Overlay {
	return &Overlay{
		buttons: buttons,
		haptic:  haptic,
		drags:   map[int][]*Button{},
	}
}

// SetLayout replaces every button at once. Pending configure gestures are
// dropped.
func (o *Overlay) SetLayout(buttons []*Button) {
	o.buttons = buttons
	clear(o.drags)
}

// Buttons returns the buttons in layout order.
func (o *Overlay) Buttons() []*Button { return slices.Clone(o.buttons) }

// Button looks up a button by id.
func (o *Overlay) Button(id int) (*Button, bool) {
	for _, b := range o.buttons {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Dispatch evaluates ev against every button and returns the buttons whose
// state changed, in layout order. In configure mode the event drags buttons
// instead and no change is reported.
//
// A second pointer landing on a held button takes it over and is reported
// again as Pressed, with another press feedback. Consumers must treat a
// repeated Pressed for the same button as idempotent.
func (o *Overlay) Dispatch(ev TouchEvent, cfg Config) []Change {
	if o.configuring {
		o.configure(ev)
		return nil
	}

	var changes []Change
	for _, b := range o.buttons {
		if !b.UpdateStatus(ev, cfg.Sliding) {
			continue
		}
		changes = append(changes, Change{ButtonID: b.ID, State: b.Status()})
		o.feedback(b.Status(), cfg)
	}
	return changes
}

// ReleaseAll releases every pressed button, as if each owning pointer had
// lifted. Hosts call it when the touch source goes away mid-gesture.
func (o *Overlay) ReleaseAll(cfg Config) []Change {
	var changes []Change
	for _, b := range o.buttons {
		if !b.pressed {
			continue
		}
		b.release()
		changes = append(changes, Change{ButtonID: b.ID, State: Released})
		o.feedback(Released, cfg)
	}
	return changes
}

func (o *Overlay) feedback(s State, cfg Config) {
	if !cfg.HapticsEnabled || o.haptic == nil {
		return
	}
	if s == Pressed {
		o.haptic(HapticPress)
	} else {
		o.haptic(HapticRelease)
	}
}

// SetConfigureMode switches between live input and drag-to-reposition.
// Button press state is left untouched in both directions.
func (o *Overlay) SetConfigureMode(on bool) {
	o.configuring = on
	clear(o.drags)
}

func (o *Overlay) ConfigureMode() bool { return o.configuring }

func (o *Overlay) configure(ev TouchEvent) {
	switch ev.Action {
	case ActionDown:
		p := image.Pt(ev.X, ev.Y)
		var targets []*Button
		for _, b := range o.buttons {
			if p.In(b.bounds) {
				targets = append(targets, b)
			}
		}
		if len(targets) == 0 {
			return
		}
		for _, b := range targets {
			b.OnConfigureTouch(ev)
		}
		o.drags[ev.Pointer] = targets
	case ActionMove:
		for _, b := range o.drags[ev.Pointer] {
			b.OnConfigureTouch(ev)
		}
	case ActionUp, ActionCancel:
		delete(o.drags, ev.Pointer)
	}
}

// ButtonView is what a renderer needs to draw one button.
type ButtonView struct {
	ID      int
	Bounds  image.Rectangle
	Opacity int
	Visual  Visual
}

// Snapshot returns the render state of every button in layout order.
func (o *Overlay) Snapshot() []ButtonView {
	out := make([]ButtonView, 0, len(o.buttons))
	for _, b := range o.buttons {
		out = append(out, ButtonView{ID: b.ID, Bounds: b.bounds, Opacity: b.Opacity, Visual: b.Bitmap()})
	}
	return out
}

// States returns the current state of every button keyed by id.
func (o *Overlay) States() map[int]State {
	out := make(map[int]State, len(o.buttons))
	for _, b := range o.buttons {
		out[b.ID] = b.Status()
	}
	return out
}

// ButtonPositions returns the top-left corner of every button keyed by id,
// for hosts that persist the configured layout.
func (o *Overlay) ButtonPositions() map[int]image.Point {
	out := make(map[int]image.Point, len(o.buttons))
	for _, b := range o.buttons {
		out[b.ID] = b.Position()
	}
	return out
}
