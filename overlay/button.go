package overlay

import "image"

// Visual selects which of a button's two images a renderer should draw.
type Visual uint8

const (
	VisualReleased Visual = iota
	VisualPressed
)

// Button is a single virtual button and the pointer currently holding it.
//
// A Button tracks at most one pointer. It only ever changes state from
// UpdateStatus, and only its bounds change from Reposition, SetPosition and
// OnConfigureTouch.
type Button struct {
	ID      int
	Opacity int

	bounds        image.Rectangle
	width, height int

	trackID int
	pressed bool
	// direct is set when the current press came from a touch landing inside
	// the button rather than a pointer sliding in.
	direct bool

	controlX, controlY   int
	previousX, previousY int
}

// NewButton creates a released button with the given id and bounds.
func NewButton(id int, bounds image.Rectangle, opacity int) *Button {
	bounds = bounds.Canon()
	return &Button{
		ID:       id,
		Opacity:  opacity,
		bounds:   bounds,
		width:    bounds.Dx(),
		height:   bounds.Dy(),
		trackID:  NoPointer,
		controlX: bounds.Min.X,
		controlY: bounds.Min.Y,
	}
}

// UpdateStatus applies ev to the button and reports whether its pressed
// state changed.
func (b *Button) UpdateStatus(ev TouchEvent, mode SlidingMode) bool {
	inside := image.Pt(ev.X, ev.Y).In(b.bounds)

	switch ev.Action {
	case ActionDown:
		if !inside {
			return false
		}
		b.press(ev.Pointer, true)
		return true

	case ActionUp:
		if b.trackID != ev.Pointer {
			return false
		}
		b.release()
		return true

	case ActionMove:
		if mode == SlideNone {
			return false
		}
		if b.pressed {
			// only the owning pointer leaving the area matters
			if inside || b.trackID != ev.Pointer {
				return false
			}
			if mode == SlideKeepFirst && b.direct {
				return false
			}
			b.release()
			return true
		}
		if !inside {
			return false
		}
		b.press(ev.Pointer, false)
		return true
	}
	return false
}

func (b *Button) press(pointer int, direct bool) {
	b.pressed = true
	b.direct = direct
	b.trackID = pointer
}

func (b *Button) release() {
	b.pressed = false
	b.direct = false
	b.trackID = NoPointer
}

// OnConfigureTouch drags the button by the frame-to-frame movement of a
// pointer. Down records the reference position, Move applies the delta and
// Up ends the gesture.
func (b *Button) OnConfigureTouch(ev TouchEvent) {
	switch ev.Action {
	case ActionDown:
		b.previousX, b.previousY = ev.X, ev.Y
	case ActionMove:
		b.Reposition(ev.X-b.previousX, ev.Y-b.previousY)
		b.previousX, b.previousY = ev.X, ev.Y
	}
}

// Reposition translates the button by (dx, dy).
func (b *Button) Reposition(dx, dy int) {
	b.SetPosition(b.controlX+dx, b.controlY+dy)
}

// SetPosition moves the top-left corner of the button to (x, y), keeping
// its size.
func (b *Button) SetPosition(x, y int) {
	b.controlX, b.controlY = x, y
	b.bounds = image.Rect(x, y, x+b.width, y+b.height)
}

// Bounds returns the button's hit rectangle in surface coordinates.
func (b *Button) Bounds() image.Rectangle { return b.bounds }

// Position returns the top-left corner of the button.
func (b *Button) Position() image.Point { return image.Pt(b.controlX, b.controlY) }

func (b *Button) Pressed() bool { return b.pressed }
func (b *Button) TrackID() int  { return b.trackID }
func (b *Button) Direct() bool  { return b.direct }

// Status maps the pressed flag to the downstream button state.
func (b *Button) Status() State {
	if b.pressed {
		return Pressed
	}
	return Released
}

// Bitmap selects the visual matching the current state.
func (b *Button) Bitmap() Visual {
	if b.pressed {
		return VisualPressed
	}
	return VisualReleased
}
