// Package haptic delivers overlay feedback requests without blocking the
// input loop.
package haptic

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/Alia5/vtouch/overlay"
)

// Backend performs one feedback tick. It may block; Async runs it off the
// input goroutine.
type Backend interface {
	Vibrate(ctx context.Context, kind overlay.HapticKind) error
}

// Async queues feedback requests for a single worker goroutine and drops
// them when the queue is full.
type Async struct {
	backend Backend
	logger  *slog.Logger
	queue   chan overlay.HapticKind
	dropped atomic.Uint64

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewAsync starts a dispatcher with the given queue size.
func NewAsync(backend Backend, queueSize int, logger *slog.Logger) *Async {
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &Async{
		backend: backend,
		logger:  logger,
		queue:   make(chan overlay.HapticKind, queueSize),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go a.run(ctx)
	return a
}

func (a *Async) run(ctx context.Context) {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return
		case kind := <-a.queue:
			if err := a.backend.Vibrate(ctx, kind); err != nil && ctx.Err() == nil {
				a.logger.Debug("haptic feedback failed", "kind", kind, "error", err)
			}
		}
	}
}

// Trigger enqueues a request. It never blocks.
func (a *Async) Trigger(kind overlay.HapticKind) {
	select {
	case a.queue <- kind:
	default:
		a.dropped.Add(1)
	}
}

// Func adapts the dispatcher to overlay.HapticFunc.
func (a *Async) Func() overlay.HapticFunc { return a.Trigger }

// Dropped reports how many requests were discarded because the queue was full.
func (a *Async) Dropped() uint64 { return a.dropped.Load() }

// Close stops the worker. Pending requests are discarded.
func (a *Async) Close() error {
	a.once.Do(func() {
		a.cancel()
		<-a.done
	})
	return nil
}

// LogBackend records feedback at debug level; used when no vibration
// hardware is available.
type LogBackend struct{ Logger *slog.Logger }

func (l LogBackend) Vibrate(_ context.Context, kind overlay.HapticKind) error {
	l.Logger.Debug("haptic tick", "kind", kind)
	return nil
}

// CommandBackend runs an external program per tick with the kind
// ("press" or "release") appended as the last argument, e.g.
// termux-vibrate wrappers on Android hosts.
type CommandBackend struct {
	Path string
	Args []string
}

func (c CommandBackend) Vibrate(ctx context.Context, kind overlay.HapticKind) error {
	args := append(append([]string{}, c.Args...), kind.String())
	return exec.CommandContext(ctx, c.Path, args...).Run()
}
