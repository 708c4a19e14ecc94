// Package replay reads recorded touch scripts and plays them through an
// overlay.
//
// A script is JSON lines. Blank lines and lines starting with '#' are
// skipped. Every other line is an object with any of
//
//	"action", "pointer", "x", "y"  a touch event ("pointer" defaults to 0)
//	"wait"                         a duration to sleep first, e.g. "16ms"
//	"configure"                    enter (true) or leave (false) configure mode
//	"expect_pressed"               ids of the buttons that must be pressed after the line
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/Alia5/vtouch/overlay"

	"github.com/tidwall/gjson"
)

// Step is one script line.
type Step struct {
	Line  int
	Wait  time.Duration
	Event *overlay.TouchEvent

	Configure *bool

	CheckPressed bool
	Pressed      []int
}

// Load reads the script at path.
func Load(path string) ([]Step, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a script from r.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		st, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		st.Line = line
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseLine(text string) (Step, error) {
	var st Step
	if !gjson.Valid(text) {
		return st, fmt.Errorf("invalid JSON")
	}
	obj := gjson.Parse(text)
	if !obj.IsObject() {
		return st, fmt.Errorf("expected an object")
	}

	if w := obj.Get("wait"); w.Exists() {
		d, err := time.ParseDuration(w.String())
		if err != nil || d < 0 {
			return st, fmt.Errorf("invalid wait %q", w.String())
		}
		st.Wait = d
	}

	if c := obj.Get("configure"); c.Exists() {
		if !c.IsBool() {
			return st, fmt.Errorf("configure must be true or false")
		}
		v := c.Bool()
		st.Configure = &v
	}

	if a := obj.Get("action"); a.Exists() {
		ev, err := parseEvent(obj, a.String())
		if err != nil {
			return st, err
		}
		st.Event = &ev
	}

	if e := obj.Get("expect_pressed"); e.Exists() {
		if !e.IsArray() {
			return st, fmt.Errorf("expect_pressed must be an array")
		}
		st.CheckPressed = true
		st.Pressed = []int{}
		for _, id := range e.Array() {
			st.Pressed = append(st.Pressed, int(id.Int()))
		}
		slices.Sort(st.Pressed)
	}

	if st.Event == nil && st.Configure == nil && !st.CheckPressed && st.Wait == 0 {
		return st, fmt.Errorf("line does nothing")
	}
	return st, nil
}

func parseEvent(obj gjson.Result, action string) (overlay.TouchEvent, error) {
	a, err := overlay.ParseAction(action)
	if err != nil {
		return overlay.TouchEvent{}, err
	}
	ev := overlay.TouchEvent{Action: a, Pointer: int(obj.Get("pointer").Int())}
	if a == overlay.ActionCancel {
		return ev, nil
	}
	x, y := obj.Get("x"), obj.Get("y")
	if x.Type != gjson.Number || y.Type != gjson.Number {
		return overlay.TouchEvent{}, fmt.Errorf("%s needs numeric x and y", action)
	}
	ev.X, ev.Y = int(x.Int()), int(y.Int())
	return ev, nil
}
