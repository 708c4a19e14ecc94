package cmd

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/vtouch/internal/evdev"
	"github.com/Alia5/vtouch/internal/log"
	"github.com/Alia5/vtouch/overlay"
)

// Run drives the overlay from a touch screen and feeds a virtual pad.
type Run struct {
	Device     string         `help:"Multitouch input device" required:"" type:"path" env:"VTOUCH_DEVICE"`
	Grab       bool           `help:"Grab the device so the desktop stops receiving its touches" env:"VTOUCH_GRAB"`
	Width      int            `help:"Surface width the layout is drawn for; 0 keeps device coordinates" default:"0" env:"VTOUCH_WIDTH"`
	Height     int            `help:"Surface height the layout is drawn for; 0 keeps device coordinates" default:"0" env:"VTOUCH_HEIGHT"`
	DryRun     bool           `help:"Log pad states instead of sending them to VIIPER" env:"VTOUCH_DRY_RUN"`
	SaveLayout bool           `help:"Write moved buttons back to the layout when configure mode ends" env:"VTOUCH_SAVE_LAYOUT"`
	Overlay    OverlayOptions `embed:""`
	Viiper     Viiper         `embed:"" prefix:"viiper."`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, trace log.EventTrace) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var viiper *Viiper
	if !r.DryRun {
		viiper = &r.Viiper
	}
	sink, closeSink, err := openSink(ctx, viiper, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	s, err := newSession(r.Overlay, sink, logger, trace)
	if err != nil {
		return err
	}
	defer s.Close()

	dev, err := evdev.Open(r.Device, r.Grab)
	if err != nil {
		return err
	}
	defer dev.Close()
	logger.Info("Opened touch device", "device", r.Device, "name", dev.Name,
		"x", dev.X, "y", dev.Y, "grabbed", r.Grab)

	dec := evdev.NewDecoder(dev.X, dev.Y, image.Pt(r.Width, r.Height))
	events := make(chan overlay.TouchEvent, 64)
	readErr := make(chan error, 1)
	go func() {
		readErr <- dev.ReadEvents(ctx, func(ev evdev.Event) error {
			for _, te := range dec.Feed(ev) {
				select {
				case events <- te:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}()

	con, err := openConsole(ctx)
	if err != nil {
		logger.Warn("Interactive commands unavailable", "error", err)
	}
	defer con.Close()
	if con != nil {
		con.Println(consoleHelp)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case err := <-readErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case ev := <-events:
			if err := s.handle(ev); err != nil {
				return err
			}
		case line, ok := <-con.Lines():
			if !ok {
				return nil
			}
			quit, err := r.command(s, con, line)
			if err != nil {
				logger.Error("Command failed", "command", line, "error", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func (r *Run) command(s *session, con *console, line string) (quit bool, err error) {
	switch line {
	case "":
		return false, nil
	case "c", "configure":
		return false, s.toggleConfigure(r.SaveLayout)
	case "s", "save":
		return false, s.saveLayout()
	case "t", "turbo":
		return false, s.turbo.Toggle()
	case "r", "release":
		return false, s.releaseAll()
	case "q", "quit", "exit":
		return true, nil
	default:
		con.Println(consoleHelp)
		return false, nil
	}
}
