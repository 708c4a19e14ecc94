package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Alia5/vtouch/internal/log"

	"golang.org/x/term"
)

const consoleHelp = `commands:
  c, configure  toggle configure mode (drag buttons to move them)
  s, save       write button positions to the layout file
  t, turbo      toggle turbo speed
  r, release    release every button
  q, quit       exit`

// console is an interactive prompt on the controlling terminal. While it
// is open, log output is routed through it so lines do not tear the prompt.
type console struct {
	fd      int
	state   *term.State
	term    *term.Terminal
	lines   chan string
	restore []func()
}

// openConsole returns nil when stdin is not a terminal.
func openConsole(ctx context.Context) (*console, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw terminal: %w", err)
	}
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "vtouch> ")

	c := &console{
		fd:    fd,
		state: state,
		term:  t,
		lines: make(chan string),
		restore: []func(){
			log.Stdout.Redirect(t),
			log.Stderr.Redirect(t),
		},
	}
	go c.read(ctx)
	return c, nil
}

func (c *console) read(ctx context.Context) {
	defer close(c.lines)
	for {
		line, err := c.term.ReadLine()
		if err != nil {
			return
		}
		select {
		case c.lines <- strings.TrimSpace(line):
		case <-ctx.Done():
			return
		}
	}
}

// Lines delivers entered commands; it is closed on EOF (Ctrl-D).
func (c *console) Lines() <-chan string {
	if c == nil {
		return nil
	}
	return c.lines
}

func (c *console) Println(s string) {
	_, _ = fmt.Fprintln(c.term, s)
}

func (c *console) Close() {
	if c == nil {
		return
	}
	for _, r := range c.restore {
		r()
	}
	_ = term.Restore(c.fd, c.state)
}
