package evdev

import (
	"image"

	"github.com/Alia5/vtouch/overlay"
)

type slot struct {
	id     int32
	active bool
	x, y   int32
	rx, ry int32
	moved  bool
	began  bool
	ended  bool
}

// Decoder converts type B multitouch frames into touch events, one per
// contact change. A slot index is used as the pointer id for the lifetime
// of its contact. Devices that never report ABS_MT_* are treated as a
// single-touch screen driven by ABS_X, ABS_Y and BTN_TOUCH.
type Decoder struct {
	x, y   Axis
	screen image.Point

	slots   []slot
	cur     int
	mt      bool
	dropped bool
}

// NewDecoder creates a decoder scaling the x and y axes onto a screen of
// the given size. A zero screen passes raw device coordinates through.
func NewDecoder(x, y Axis, screen image.Point) *Decoder {
	d := &Decoder{x: x, y: y, screen: screen, slots: make([]slot, maxSupportedSlot)}
	d.reset()
	return d
}

func (d *Decoder) reset() {
	for i := range d.slots {
		d.slots[i] = slot{id: -1}
	}
	d.cur = 0
}

// Feed consumes one event. Touch events are only produced at the end of a
// frame (SYN_REPORT). After SYN_DROPPED every contact is forgotten and a
// single cancel event is produced once the stream resynchronizes.
func (d *Decoder) Feed(ev Event) []overlay.TouchEvent {
	if d.dropped {
		if ev.Type == evSyn && ev.Code == synReport {
			d.dropped = false
			d.reset()
			return []overlay.TouchEvent{{Action: overlay.ActionCancel, Pointer: overlay.NoPointer}}
		}
		return nil
	}

	switch ev.Type {
	case evSyn:
		switch ev.Code {
		case synReport:
			return d.flush()
		case synDropped:
			d.dropped = true
		}
	case evKey:
		if ev.Code == btnTouch && !d.mt {
			id := int32(-1)
			if ev.Value != 0 {
				id = 0
			}
			d.track(0, id)
		}
	case evAbs:
		d.abs(ev.Code, ev.Value)
	}
	return nil
}

func (d *Decoder) abs(code uint16, value int32) {
	switch code {
	case absMTSlot:
		d.mt = true
		d.cur = -1
		if value >= 0 && int(value) < len(d.slots) {
			d.cur = int(value)
		}
	case absMTTrackingID:
		d.mt = true
		if d.cur >= 0 {
			d.track(d.cur, value)
		}
	case absMTPositionX:
		d.mt = true
		if s := d.at(d.cur); s != nil {
			s.x, s.moved = value, true
		}
	case absMTPositionY:
		d.mt = true
		if s := d.at(d.cur); s != nil {
			s.y, s.moved = value, true
		}
	case absX:
		if !d.mt {
			d.slots[0].x, d.slots[0].moved = value, true
		}
	case absY:
		if !d.mt {
			d.slots[0].y, d.slots[0].moved = value, true
		}
	}
}

func (d *Decoder) track(i int, id int32) {
	s := &d.slots[i]
	switch {
	case id < 0:
		if s.id >= 0 {
			s.ended = true
		}
	case s.id < 0:
		s.began = true
	case s.id != id:
		s.ended = true
		s.began = true
	}
	s.id = id
}

func (d *Decoder) at(i int) *slot {
	if i < 0 {
		return nil
	}
	return &d.slots[i]
}

// flush emits lifts first, then new contacts, then moves, each in slot
// order.
func (d *Decoder) flush() []overlay.TouchEvent {
	var ups, downs, moves []overlay.TouchEvent
	for i := range d.slots {
		s := &d.slots[i]
		if s.ended && s.active {
			ups = append(ups, d.event(overlay.ActionUp, i, s.rx, s.ry))
			s.active = false
		}
		switch {
		case s.began && s.id >= 0:
			downs = append(downs, d.event(overlay.ActionDown, i, s.x, s.y))
			s.active = true
			s.rx, s.ry = s.x, s.y
		case s.moved && s.active && (s.x != s.rx || s.y != s.ry):
			moves = append(moves, d.event(overlay.ActionMove, i, s.x, s.y))
			s.rx, s.ry = s.x, s.y
		}
		s.began, s.ended, s.moved = false, false, false
	}
	return append(append(ups, downs...), moves...)
}

func (d *Decoder) event(a overlay.Action, pointer int, x, y int32) overlay.TouchEvent {
	return overlay.TouchEvent{
		Action:  a,
		Pointer: pointer,
		X:       d.x.scale(x, d.screen.X),
		Y:       d.y.scale(y, d.screen.Y),
	}
}
