// Package hotkeys implements overlay buttons that act on the emulator itself
// instead of being forwarded as pad input.
package hotkeys

import "log/slog"

// Speed is the part of the emulation core that controls the frame limit.
type Speed interface {
	FrameLimit() int
	SetFrameLimit(percent int) error
}

// Turbo switches the frame limit between the user's normal speed and the
// configured turbo speed.
type Turbo struct {
	speed      Speed
	turboSpeed int
	logger     *slog.Logger

	normalSpeed int
	enabled     bool
}

func NewTurbo(speed Speed, turboSpeed int, logger *slog.Logger) *Turbo {
	return &Turbo{
		speed:       speed,
		turboSpeed:  turboSpeed,
		logger:      logger,
		normalSpeed: speed.FrameLimit(),
	}
}

func (t *Turbo) Enabled() bool { return t.enabled }

// Set enables or disables turbo and applies the resulting frame limit.
func (t *Turbo) Set(enabled bool) error {
	t.enabled = enabled
	return t.apply()
}

// Toggle flips turbo on or off.
func (t *Turbo) Toggle() error {
	return t.Set(!t.enabled)
}

func (t *Turbo) apply() error {
	target := t.normalSpeed
	if t.enabled {
		t.normalSpeed = t.speed.FrameLimit()
		target = t.turboSpeed
	}
	if err := t.speed.SetFrameLimit(target); err != nil {
		return err
	}
	t.logger.Info("Changed emulation speed", "percent", target)
	return nil
}

// Reset restores the normal speed if turbo is active and does nothing
// otherwise.
func (t *Turbo) Reset() error {
	if !t.enabled {
		return nil
	}
	t.enabled = false
	return t.speed.SetFrameLimit(t.normalSpeed)
}
