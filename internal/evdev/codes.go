// Package evdev turns a Linux multitouch input device into overlay touch
// events.
//
// Decoding is independent of the device so recorded event streams can be
// replayed on any platform; only opening a device node is Linux specific.
package evdev

// Event types and codes consumed by the decoder (linux/input-event-codes.h).
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport  = 0x00
	synDropped = 0x03

	btnTouch = 0x14a

	absX             = 0x00
	absY             = 0x01
	absMTSlot        = 0x2f
	absMTPositionX   = 0x35
	absMTPositionY   = 0x36
	absMTTrackingID  = 0x39
	maxSupportedSlot = 16
)

// Event is one decoded struct input_event without its timestamp.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Axis is the reported range of an absolute axis.
type Axis struct {
	Min int32
	Max int32
}

// scale maps v from the axis range onto [0, size). A zero size or an empty
// range leaves v unchanged.
func (a Axis) scale(v int32, size int) int {
	if size <= 0 || a.Max <= a.Min {
		return int(v)
	}
	v = min(max(v, a.Min), a.Max)
	return int(int64(v-a.Min) * int64(size-1) / int64(a.Max-a.Min))
}
