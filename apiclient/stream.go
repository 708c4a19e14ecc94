package apiclient

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	apitypes "github.com/Alia5/vtouch/apitypes"
)

var errStreamClosed = errors.New("stream closed")

// DeviceStream is the input channel of one device.
type DeviceStream struct {
	BusID uint32
	DevID string

	conn         net.Conn
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// OpenStream connects to the stream of an existing device.
func (c *Client) OpenStream(ctx context.Context, busID uint32, devID string) (*DeviceStream, error) {
	if c.transport.mock != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}
	conn, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write([]byte(fmt.Sprintf("bus/%d/%s\x00", busID, devID))); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}
	return &DeviceStream{
		BusID:        busID,
		DevID:        devID,
		conn:         conn,
		writeTimeout: c.transport.cfg.WriteTimeout,
	}, nil
}

// AddDeviceAndConnect creates a device on the bus and opens its stream.
func (c *Client) AddDeviceAndConnect(ctx context.Context, busID uint32, deviceType string) (*DeviceStream, *apitypes.Device, error) {
	dev, err := c.DeviceAddCtx(ctx, busID, deviceType)
	if err != nil {
		return nil, nil, err
	}
	stream, err := c.OpenStream(ctx, busID, dev.DevId)
	if err != nil {
		return nil, dev, err
	}
	return stream, dev, nil
}

// Write sends raw bytes to the device.
func (s *DeviceStream) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errStreamClosed
	}
	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	return s.conn.Write(data)
}

// WriteBinary marshals v and sends it as one device input message.
func (s *DeviceStream) WriteBinary(v encoding.BinaryMarshaler) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = s.Write(data)
	return err
}

// Close closes the stream. Closing twice is a no-op.
func (s *DeviceStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}
