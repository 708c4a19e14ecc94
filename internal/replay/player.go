package replay

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Alia5/vtouch/overlay"
)

// Player feeds script steps into an overlay.
type Player struct {
	Overlay *overlay.Overlay
	Config  func() overlay.Config
	// OnChanges receives every touch event with the changes it caused.
	OnChanges func(ev overlay.TouchEvent, changes []overlay.Change) error
	// Realtime honors "wait" lines; otherwise they are skipped.
	Realtime bool
}

// Play runs steps in order and stops at the first failed expectation.
func (p *Player) Play(ctx context.Context, steps []Step) error {
	for _, st := range steps {
		if p.Realtime && st.Wait > 0 {
			t := time.NewTimer(st.Wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if st.Configure != nil {
			p.Overlay.SetConfigureMode(*st.Configure)
		}
		if st.Event != nil {
			changes := p.dispatch(*st.Event)
			if p.OnChanges != nil {
				if err := p.OnChanges(*st.Event, changes); err != nil {
					return fmt.Errorf("line %d: %w", st.Line, err)
				}
			}
		}
		if st.CheckPressed {
			if got := pressedIDs(p.Overlay); !slices.Equal(got, st.Pressed) {
				return fmt.Errorf("line %d: pressed %v, want %v", st.Line, got, st.Pressed)
			}
		}
	}
	return nil
}

// dispatch treats a cancel outside configure mode as the loss of every
// pointer.
func (p *Player) dispatch(ev overlay.TouchEvent) []overlay.Change {
	if ev.Action == overlay.ActionCancel && !p.Overlay.ConfigureMode() {
		return p.Overlay.ReleaseAll(p.Config())
	}
	return p.Overlay.Dispatch(ev, p.Config())
}

func pressedIDs(o *overlay.Overlay) []int {
	ids := []int{}
	for id, s := range o.States() {
		if s == overlay.Pressed {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
