//go:build linux

package evdev

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<30 | size<<16 | typ<<8 | nr)
}

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// EVIOCGABS(abs)
func evioCGAbs(code uint32) uintptr {
	return ioc(iocRead, 'E', 0x40+code, uint32(unsafe.Sizeof(absInfo{})))
}

// EVIOCGNAME(len)
func evioCGName(n uint32) uintptr { return ioc(iocRead, 'E', 0x06, n) }

// EVIOCGRAB
func evioCGrab() uintptr { return ioc(iocWrite, 'E', 0x90, uint32(unsafe.Sizeof(int32(0)))) }

// ioctl runs a request without taking the file out of the runtime poller, so
// Close still interrupts a pending Read.
func ioctl(f *os.File, req, arg uintptr) error {
	return control(f, func(fd uintptr) unix.Errno {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, arg)
		return errno
	})
}

func ioctlPtr(f *os.File, req uintptr, arg unsafe.Pointer) error {
	return control(f, func(fd uintptr) unix.Errno {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
		return errno
	})
}

func control(f *os.File, fn func(fd uintptr) unix.Errno) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var errno unix.Errno
	if err := rc.Control(func(fd uintptr) { errno = fn(fd) }); err != nil {
		return err
	}
	if errno != 0 {
		return errno
	}
	return nil
}

// Device is an open /dev/input/event* node.
type Device struct {
	Name string
	X, Y Axis

	f       *os.File
	grabbed bool
}

// Open opens the device at path and reads its multitouch axis ranges. With
// grab set, other readers of the device (the desktop) stop receiving its
// events until Close.
func Open(path string, grab bool) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d := &Device{f: f}

	name := make([]byte, 256)
	if err := ioctlPtr(f, evioCGName(uint32(len(name))), unsafe.Pointer(&name[0])); err == nil {
		d.Name = string(bytes.TrimRight(name, "\x00"))
	}

	x, err := absRange(f, absMTPositionX, absX)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	y, err := absRange(f, absMTPositionY, absY)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.X, d.Y = x, y

	if grab {
		if err := ioctl(f, evioCGrab(), 1); err != nil {
			f.Close()
			return nil, fmt.Errorf("grab %s: %w", path, err)
		}
		d.grabbed = true
	}
	return d, nil
}

// absRange returns the range of the first axis the device reports.
func absRange(f *os.File, codes ...uint32) (Axis, error) {
	var lastErr error
	for _, c := range codes {
		var info absInfo
		if err := ioctlPtr(f, evioCGAbs(c), unsafe.Pointer(&info)); err != nil {
			lastErr = err
			continue
		}
		if info.Max > info.Min {
			return Axis{Min: info.Min, Max: info.Max}, nil
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no absolute position axis")
	}
	return Axis{}, fmt.Errorf("not a touch device: %w", lastErr)
}

// ReadEvents delivers events to fn until ctx is done, fn fails or the
// device goes away.
func (d *Device) ReadEvents(ctx context.Context, fn func(Event) error) error {
	stop := context.AfterFunc(ctx, func() { _ = d.f.Close() })
	defer stop()

	var tv unix.Timeval
	p := NewParser(int(unsafe.Sizeof(tv)) + 8)
	buf := make([]byte, 64*p.size)
	for {
		n, err := d.f.Read(buf)
		for _, ev := range p.Feed(buf[:n]) {
			if ferr := fn(ev); ferr != nil {
				return ferr
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, unix.ENODEV) {
				return fmt.Errorf("device %s gone: %w", d.Name, err)
			}
			return fmt.Errorf("read: %w", err)
		}
	}
}

// Close releases the grab and closes the device.
func (d *Device) Close() error {
	if d.grabbed {
		_ = ioctl(d.f, evioCGrab(), 0)
		d.grabbed = false
	}
	err := d.f.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
