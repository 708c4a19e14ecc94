package evdev

import "encoding/binary"

// Parser splits a byte stream into input events. The kernel struct is a
// timeval followed by type, code and value, so its size depends on the
// platform word size.
type Parser struct {
	buf  []byte
	size int
}

// NewParser creates a parser for events of eventSize bytes (24 on 64-bit
// kernels, 16 on 32-bit).
func NewParser(eventSize int) *Parser {
	return &Parser{size: eventSize}
}

// Feed appends chunk and returns every complete event it now holds.
func (p *Parser) Feed(chunk []byte) []Event {
	p.buf = append(p.buf, chunk...)
	var out []Event
	for len(p.buf) >= p.size {
		raw := p.buf[p.size-8 : p.size]
		out = append(out, Event{
			Type:  binary.NativeEndian.Uint16(raw[0:2]),
			Code:  binary.NativeEndian.Uint16(raw[2:4]),
			Value: int32(binary.NativeEndian.Uint32(raw[4:8])),
		})
		p.buf = p.buf[p.size:]
	}
	if len(p.buf) == 0 {
		p.buf = nil
	}
	return out
}
