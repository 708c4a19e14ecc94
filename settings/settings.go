// Package settings reads the emulation menu preferences that drive the
// overlay. The file is owned by the host application; this package only
// reads it.
package settings

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Alia5/vtouch/overlay"

	"github.com/BurntSushi/toml"
)

// Settings mirrors the persisted emulation menu preferences.
type Settings struct {
	ButtonSlide    overlay.SlidingMode `toml:"button_slide"`
	HapticFeedback bool                `toml:"haptic_feedback"`
	// FrameLimit is the emulation speed in percent.
	FrameLimit  int  `toml:"frame_limit"`
	TurboSpeed  int  `toml:"turbo_speed"`
	ShowOverlay bool `toml:"show_overlay"`
}

// Defaults returns the values used for preferences missing from the file.
func Defaults() Settings {
	return Settings{
		ButtonSlide:    overlay.SlideNone,
		HapticFeedback: true,
		FrameLimit:     100,
		TurboSpeed:     200,
		ShowOverlay:    true,
	}
}

// Load reads path on top of Defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("read settings %s: %w", path, err)
	}
	if s.FrameLimit <= 0 {
		return Defaults(), fmt.Errorf("read settings %s: frame_limit must be positive", path)
	}
	return s, nil
}

// Overlay returns the event processing configuration.
func (s Settings) Overlay() overlay.Config {
	return overlay.Config{Sliding: s.ButtonSlide, HapticsEnabled: s.HapticFeedback}
}
