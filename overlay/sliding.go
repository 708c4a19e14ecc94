package overlay

import (
	"fmt"
	"strconv"
	"strings"
)

// SlidingMode controls whether pointer movement can change button state.
// The integer values match the persisted preference encoding.
type SlidingMode int

const (
	// SlideNone only reacts to touches landing on or lifting off a button.
	SlideNone SlidingMode = 0
	// SlideSimple additionally presses buttons a pointer slides into and
	// releases them when that pointer slides out.
	SlideSimple SlidingMode = 1
	// SlideKeepFirst behaves like SlideSimple, except a button pressed by a
	// direct touch stays pressed until its pointer lifts.
	SlideKeepFirst SlidingMode = 2
)

func (m SlidingMode) String() string {
	switch m {
	case SlideNone:
		return "none"
	case SlideSimple:
		return "simple"
	case SlideKeepFirst:
		return "keep-first"
	default:
		return strconv.Itoa(int(m))
	}
}

// ParseSlidingMode accepts the symbolic names as well as the numeric
// preference values.
func ParseSlidingMode(s string) (SlidingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "0", "":
		return SlideNone, nil
	case "simple", "1":
		return SlideSimple, nil
	case "keep-first", "keepfirst", "keep_first", "2":
		return SlideKeepFirst, nil
	}
	return SlideNone, fmt.Errorf("unknown sliding mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m SlidingMode) MarshalText() ([]byte, error) {
	switch m {
	case SlideNone, SlideSimple, SlideKeepFirst:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("invalid sliding mode %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler, which is what kong, the
// YAML and the TOML decoders use for flag and config values.
func (m *SlidingMode) UnmarshalText(text []byte) error {
	v, err := ParseSlidingMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
