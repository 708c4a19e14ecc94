package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Alia5/vtouch/overlay"
)

// EventTrace records every touch event and the press changes it caused.
type EventTrace interface {
	Log(ev overlay.TouchEvent, changes []overlay.Change)
}

type eventTrace struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTrace creates an EventTrace writing to w. A nil w discards everything.
func NewTrace(w io.Writer) EventTrace {
	return &eventTrace{w: w}
}

// Log writes one line per event, e.g.
//
//	2026/01/02 15:04:05 move ptr=0 x=120 y=40 changes=[2:pressed 1:released]
func (t *eventTrace) Log(ev overlay.TouchEvent, changes []overlay.Change) {
	if t.w == nil {
		return
	}

	var b strings.Builder
	for i, c := range changes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%s", c.ButtonID, c.State)
	}

	line := fmt.Sprintf("%s %s ptr=%d x=%d y=%d changes=[%s]\n",
		time.Now().Format("2006/01/02 15:04:05"),
		ev.Action,
		ev.Pointer,
		ev.X,
		ev.Y,
		b.String())

	t.mu.Lock()
	_, _ = t.w.Write([]byte(line))
	t.mu.Unlock()
}
