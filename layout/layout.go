// Package layout reads the static description of the on-screen buttons.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/vtouch/hotkeys"
	"github.com/Alia5/vtouch/overlay"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Button describes one virtual button. Exactly one of Input and Hotkey is
// set: Input names the pad control the button drives, Hotkey an emulator
// action.
type Button struct {
	ID      int    `json:"id" yaml:"id" toml:"id"`
	Input   string `json:"input,omitempty" yaml:"input,omitempty" toml:"input,omitempty"`
	Hotkey  string `json:"hotkey,omitempty" yaml:"hotkey,omitempty" toml:"hotkey,omitempty"`
	X       int    `json:"x" yaml:"x" toml:"x"`
	Y       int    `json:"y" yaml:"y" toml:"y"`
	Width   int    `json:"width" yaml:"width" toml:"width"`
	Height  int    `json:"height" yaml:"height" toml:"height"`
	Opacity int    `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
}

// Layout is the full set of buttons for one screen.
type Layout struct {
	Buttons []Button `json:"buttons" yaml:"buttons" toml:"buttons"`
}

const defaultOpacity = 255

// Load reads a layout file, choosing the decoder from its extension.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	l, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes data in the format named by ext (".json", ".yaml", ".yml"
// or ".toml") and validates the result.
func Parse(data []byte, ext string) (*Layout, error) {
	var l Layout
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&l); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&l); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &l); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", ext)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks ids are unique and every button has a size and a target.
func (l *Layout) Validate() error {
	if len(l.Buttons) == 0 {
		return errors.New("layout has no buttons")
	}
	seen := map[int]bool{}
	for _, b := range l.Buttons {
		if seen[b.ID] {
			return fmt.Errorf("duplicate button id %d", b.ID)
		}
		seen[b.ID] = true
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("button %d: width and height must be positive", b.ID)
		}
		if (b.Input == "") == (b.Hotkey == "") {
			return fmt.Errorf("button %d: exactly one of input and hotkey must be set", b.ID)
		}
		if b.Opacity < 0 || b.Opacity > 255 {
			return fmt.Errorf("button %d: opacity must be within 0-255", b.ID)
		}
	}
	return nil
}

// Build creates the overlay buttons in layout order.
func (l *Layout) Build() []*overlay.Button {
	out := make([]*overlay.Button, 0, len(l.Buttons))
	for _, b := range l.Buttons {
		opacity := b.Opacity
		if opacity == 0 {
			opacity = defaultOpacity
		}
		out = append(out, overlay.NewButton(b.ID, image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height), opacity))
	}
	return out
}

// Hotkeys returns the hotkey bindings keyed by button id.
func (l *Layout) Hotkeys() map[int]hotkeys.Name {
	out := map[int]hotkeys.Name{}
	for _, b := range l.Buttons {
		if b.Hotkey != "" {
			out[b.ID] = hotkeys.Name(b.Hotkey)
		}
	}
	return out
}

// Inputs returns the pad control names keyed by button id.
func (l *Layout) Inputs() map[int]string {
	out := map[int]string{}
	for _, b := range l.Buttons {
		if b.Input != "" {
			out[b.ID] = b.Input
		}
	}
	return out
}

// ApplyPositions moves buttons to the given top-left corners, typically
// Overlay.ButtonPositions after a configure session. Unknown ids are
// ignored.
func (l *Layout) ApplyPositions(pos map[int]image.Point) {
	for i := range l.Buttons {
		if p, ok := pos[l.Buttons[i].ID]; ok {
			l.Buttons[i].X, l.Buttons[i].Y = p.X, p.Y
		}
	}
}

// Save writes the layout to path in the format named by its extension.
func (l *Layout) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(l, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(l)
	case ".toml":
		data, err = toml.Marshal(*l)
	default:
		return fmt.Errorf("unsupported layout format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}
