package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/vtouch/device"
	"github.com/Alia5/vtouch/device/xbox360"
	"github.com/Alia5/vtouch/haptic"
	"github.com/Alia5/vtouch/hotkeys"
	"github.com/Alia5/vtouch/internal/log"
	"github.com/Alia5/vtouch/layout"
	"github.com/Alia5/vtouch/overlay"
	"github.com/Alia5/vtouch/settings"
)

const hapticQueueSize = 16

// session wires an overlay to its consumers: hotkeys first, the pad for
// everything else.
type session struct {
	logger   *slog.Logger
	trace    log.EventTrace
	settings settings.Settings
	cfg      overlay.Config

	layoutPath string
	layout     *layout.Layout
	overlay    *overlay.Overlay
	router     *hotkeys.Router
	turbo      *hotkeys.Turbo
	pad        *xbox360.Pad
	haptics    *haptic.Async
}

func newSession(opts OverlayOptions, w device.StateWriter, logger *slog.Logger, trace log.EventTrace) (*session, error) {
	st, err := settings.Load(opts.Settings)
	if err != nil {
		return nil, err
	}
	if opts.Slide != "" {
		if st.ButtonSlide, err = overlay.ParseSlidingMode(opts.Slide); err != nil {
			return nil, err
		}
	}

	l, err := layout.Load(opts.Layout)
	if err != nil {
		return nil, err
	}

	speed := &hotkeys.MemorySpeed{Percent: st.FrameLimit}
	turbo := hotkeys.NewTurbo(speed, st.TurboSpeed, logger)
	router, err := hotkeys.NewRouter(l.Hotkeys(), turbo)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", opts.Layout, err)
	}
	pad, err := xbox360.NewPad(w, l.Inputs())
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", opts.Layout, err)
	}

	var backend haptic.Backend = haptic.LogBackend{Logger: logger}
	if fields := strings.Fields(opts.HapticCommand); len(fields) > 0 {
		backend = haptic.CommandBackend{Path: fields[0], Args: fields[1:]}
	}
	haptics := haptic.NewAsync(backend, hapticQueueSize, logger)

	s := &session{
		logger:     logger,
		trace:      trace,
		settings:   st,
		cfg:        st.Overlay(),
		layoutPath: opts.Layout,
		layout:     l,
		overlay:    overlay.New(l.Build(), haptics.Func()),
		router:     router,
		turbo:      turbo,
		pad:        pad,
		haptics:    haptics,
	}
	logger.Info("Overlay ready",
		"buttons", len(l.Buttons),
		"slide", st.ButtonSlide,
		"haptics", st.HapticFeedback,
		"visible", st.ShowOverlay)
	return s, nil
}

func (s *session) config() overlay.Config { return s.cfg }

// handle dispatches one touch event and forwards the resulting changes.
// Events are ignored while the overlay is hidden.
func (s *session) handle(ev overlay.TouchEvent) error {
	if !s.settings.ShowOverlay {
		return nil
	}
	var changes []overlay.Change
	if ev.Action == overlay.ActionCancel && !s.overlay.ConfigureMode() {
		changes = s.overlay.ReleaseAll(s.cfg)
	} else {
		changes = s.overlay.Dispatch(ev, s.cfg)
	}
	s.trace.Log(ev, changes)
	return s.forward(changes)
}

func (s *session) forward(changes []overlay.Change) error {
	if len(changes) == 0 {
		return nil
	}
	for _, c := range changes {
		s.logger.Debug("Button changed", "button", c.ButtonID, "state", c.State)
	}
	rest, err := s.router.Route(changes)
	if err != nil {
		return err
	}
	return s.pad.Apply(rest)
}

func (s *session) releaseAll() error {
	return s.forward(s.overlay.ReleaseAll(s.cfg))
}

// toggleConfigure flips configure mode. Leaving it with save set writes the
// moved buttons back to the layout file.
func (s *session) toggleConfigure(save bool) error {
	on := !s.overlay.ConfigureMode()
	s.overlay.SetConfigureMode(on)
	s.logger.Info("Configure mode", "enabled", on)
	if on || !save {
		return nil
	}
	return s.saveLayout()
}

func (s *session) saveLayout() error {
	s.layout.ApplyPositions(s.overlay.ButtonPositions())
	if err := s.layout.Save(s.layoutPath); err != nil {
		return err
	}
	s.logger.Info("Saved layout", "file", s.layoutPath)
	return nil
}

func (s *session) Close() {
	if err := s.releaseAll(); err != nil {
		s.logger.Warn("Failed to release buttons", "error", err)
	}
	if err := s.turbo.Reset(); err != nil {
		s.logger.Warn("Failed to reset emulation speed", "error", err)
	}
	_ = s.haptics.Close()
	if n := s.haptics.Dropped(); n > 0 {
		s.logger.Debug("Dropped haptic requests", "count", n)
	}
}
