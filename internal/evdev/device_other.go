//go:build !linux

package evdev

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("evdev devices are only supported on linux")

// Device is an input device node. It is only available on Linux.
type Device struct {
	Name string
	X, Y Axis
}

func Open(path string, grab bool) (*Device, error) { return nil, errUnsupported }

func (d *Device) ReadEvents(ctx context.Context, fn func(Event) error) error { return errUnsupported }

func (d *Device) Close() error { return nil }
