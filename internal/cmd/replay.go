package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/vtouch/internal/log"
	"github.com/Alia5/vtouch/internal/replay"
	"github.com/Alia5/vtouch/overlay"
)

// Replay plays a recorded touch script through the overlay.
type Replay struct {
	Script   string         `arg:"" help:"JSON-lines touch script" type:"existingfile"`
	Realtime bool           `help:"Sleep for the script's wait lines" env:"VTOUCH_REPLAY_REALTIME"`
	Forward  bool           `help:"Send pad states to VIIPER instead of logging them" env:"VTOUCH_REPLAY_FORWARD"`
	Overlay  OverlayOptions `embed:""`
	Viiper   Viiper         `embed:"" prefix:"viiper."`
}

// Run is called by Kong when the replay command is executed.
func (r *Replay) Run(logger *slog.Logger, trace log.EventTrace) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	steps, err := replay.Load(r.Script)
	if err != nil {
		return err
	}

	var viiper *Viiper
	if r.Forward {
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

	p := &replay.Player{
		Overlay:  s.overlay,
		Config:   s.config,
		Realtime: r.Realtime,
		OnChanges: func(ev overlay.TouchEvent, changes []overlay.Change) error {
			s.trace.Log(ev, changes)
			return s.forward(changes)
		},
	}
	if err := p.Play(ctx, steps); err != nil {
		return fmt.Errorf("replay %s: %w", r.Script, err)
	}
	st := s.pad.State()
	logger.Info("Replay finished", "steps", len(steps), "buttons", fmt.Sprintf("0x%04x", st.Buttons))
	return nil
}
