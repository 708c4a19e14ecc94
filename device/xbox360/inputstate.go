package xbox360

import (
	"encoding/binary"
	"io"
)

// InputStateSize is the length of an InputState on the device stream.
const InputStateSize = 20

// InputState is the client-to-device pad state sent over a VIIPER stream.
//
// Layout (little endian):
//
//	 0-3: Buttons
//	   4: LT (0-255)
//	   5: RT (0-255)
//	 6-7: LX
//	 8-9: LY
//	10-11: RX
//	12-13: RY
//	14-19: Reserved
type InputState struct {
	Buttons  uint32
	LT, RT   uint8
	LX, LY   int16
	RX, RY   int16
	Reserved [6]byte
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (x *InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, InputStateSize)
	binary.LittleEndian.PutUint32(b[0:4], x.Buttons)
	b[4] = x.LT
	b[5] = x.RT
	binary.LittleEndian.PutUint16(b[6:8], uint16(x.LX))
	binary.LittleEndian.PutUint16(b[8:10], uint16(x.LY))
	binary.LittleEndian.PutUint16(b[10:12], uint16(x.RX))
	binary.LittleEndian.PutUint16(b[12:14], uint16(x.RY))
	copy(b[14:20], x.Reserved[:])
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (x *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < InputStateSize {
		return io.ErrUnexpectedEOF
	}
	x.Buttons = binary.LittleEndian.Uint32(data[0:4])
	x.LT = data[4]
	x.RT = data[5]
	x.LX = int16(binary.LittleEndian.Uint16(data[6:8]))
	x.LY = int16(binary.LittleEndian.Uint16(data[8:10]))
	x.RX = int16(binary.LittleEndian.Uint16(data[10:12]))
	x.RY = int16(binary.LittleEndian.Uint16(data[12:14]))
	copy(x.Reserved[:], data[14:20])
	return nil
}
