package log

import (
	"io"
	"os"
	"sync"
)

// Console is a console destination that can be redirected while the
// process runs, e.g. through a terminal that owns the screen.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// Stdout and Stderr are the destinations SetupLogger writes console output to.
var (
	Stdout = &Console{w: os.Stdout}
	Stderr = &Console{w: os.Stderr}
)

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

// Redirect sends output to w until the returned func is called.
func (c *Console) Redirect(w io.Writer) (restore func()) {
	c.mu.Lock()
	prev := c.w
	c.w = w
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.w = prev
		c.mu.Unlock()
	}
}
