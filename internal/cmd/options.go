package cmd

import (
	"time"
)

// OverlayOptions are shared by every command that drives an overlay.
type OverlayOptions struct {
	Layout        string `help:"Button layout file (json, yaml or toml)" required:"" type:"existingfile" env:"VTOUCH_LAYOUT"`
	Settings      string `help:"Emulation settings file (toml); missing keys use defaults" type:"path" env:"VTOUCH_SETTINGS"`
	Slide         string `help:"Override the button sliding mode (none, simple, keep-first)" env:"VTOUCH_SLIDE"`
	HapticCommand string `help:"Command run with 'press' or 'release' appended for haptic feedback" env:"VTOUCH_HAPTIC_COMMAND"`
}

// Viiper selects the VIIPER server that hosts the virtual pad.
type Viiper struct {
	Addr     string        `help:"VIIPER API server address" default:"localhost:3242" env:"VTOUCH_VIIPER_ADDR"`
	Password string        `help:"VIIPER API password; empty disables authentication" env:"VTOUCH_VIIPER_PASSWORD"`
	Timeout  time.Duration `help:"VIIPER API operation timeout" default:"5s" env:"VTOUCH_VIIPER_TIMEOUT"`
}
