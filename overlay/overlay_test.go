package overlay_test

import (
	"image"
	"testing"

	"github.com/Alia5/vtouch/overlay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hapticRecorder struct{ kinds []overlay.HapticKind }

func (h *hapticRecorder) fn(k overlay.HapticKind) { h.kinds = append(h.kinds, k) }

// newTestOverlay lays out A at (0,0)-(100,100), B overlapping A at
// (50,50)-(150,150) and C on its own at (300,0)-(400,100).
func newTestOverlay(h *hapticRecorder) *overlay.Overlay {
	return overlay.New([]*overlay.Button{
		overlay.NewButton(1, image.Rect(0, 0, 100, 100), 255),
		overlay.NewButton(2, image.Rect(50, 50, 150, 150), 255),
		overlay.NewButton(3, image.Rect(300, 0, 400, 100), 255),
	}, h.fn)
}

func pressed(id int) overlay.Change  { return overlay.Change{ButtonID: id, State: overlay.Pressed} }
func released(id int) overlay.Change { return overlay.Change{ButtonID: id, State: overlay.Released} }

func TestDispatch(t *testing.T) {
	tests := []struct {
		name        string
		mode        overlay.SlidingMode
		events      []overlay.TouchEvent
		wantChanges [][]overlay.Change
		wantHaptics []overlay.HapticKind
	}{
		{
			name:        "up for untracked pointer is a no-op",
			mode:        overlay.SlideSimple,
			events:      []overlay.TouchEvent{up(9, 10, 10)},
			wantChanges: [][]overlay.Change{nil},
		},
		{
			name:        "round trip",
			mode:        overlay.SlideNone,
			events:      []overlay.TouchEvent{down(0, 10, 10), up(0, 10, 10)},
			wantChanges: [][]overlay.Change{{pressed(1)}, {released(1)}},
			wantHaptics: []overlay.HapticKind{overlay.HapticPress, overlay.HapticRelease},
		},
		{
			name:   "overlap presses both",
			mode:   overlay.SlideNone,
			events: []overlay.TouchEvent{down(0, 75, 75), up(0, 75, 75)},
			wantChanges: [][]overlay.Change{
				{pressed(1), pressed(2)},
				{released(1), released(2)},
			},
			wantHaptics: []overlay.HapticKind{
				overlay.HapticPress, overlay.HapticPress,
				overlay.HapticRelease, overlay.HapticRelease,
			},
		},
		{
			name:   "simple slide from empty space",
			mode:   overlay.SlideSimple,
			events: []overlay.TouchEvent{down(0, 250, 50), move(0, 350, 50), move(0, 450, 50)},
			wantChanges: [][]overlay.Change{
				nil,
				{pressed(3)},
				{released(3)},
			},
			wantHaptics: []overlay.HapticKind{overlay.HapticPress, overlay.HapticRelease},
		},
		{
			name:   "keep first immunity",
			mode:   overlay.SlideKeepFirst,
			events: []overlay.TouchEvent{down(0, 10, 10), move(0, 250, 50)},
			wantChanges: [][]overlay.Change{
				{pressed(1)},
				nil,
			},
			wantHaptics: []overlay.HapticKind{overlay.HapticPress},
		},
		{
			name:   "simple releases on the same sequence",
			mode:   overlay.SlideSimple,
			events: []overlay.TouchEvent{down(0, 10, 10), move(0, 250, 50)},
			wantChanges: [][]overlay.Change{
				{pressed(1)},
				{released(1)},
			},
			wantHaptics: []overlay.HapticKind{overlay.HapticPress, overlay.HapticRelease},
		},
		{
			name:   "keep first while second finger slides across",
			mode:   overlay.SlideKeepFirst,
			events: []overlay.TouchEvent{down(0, 10, 10), down(1, 250, 50), move(1, 350, 50), move(1, 450, 50), move(0, 20, 20)},
			wantChanges: [][]overlay.Change{
				{pressed(1)},
				nil,
				{pressed(3)},
				{released(3)},
				nil,
			},
			wantHaptics: []overlay.HapticKind{overlay.HapticPress, overlay.HapticPress, overlay.HapticRelease},
		},
		{
			name:   "slide from A into overlap",
			mode:   overlay.SlideSimple,
			events: []overlay.TouchEvent{down(0, 10, 10), move(0, 75, 75), move(0, 120, 120)},
			wantChanges: [][]overlay.Change{
				{pressed(1)},
				{pressed(2)},
				{released(1)},
			},
			wantHaptics: []overlay.HapticKind{overlay.HapticPress, overlay.HapticPress, overlay.HapticRelease},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &hapticRecorder{}
			o := newTestOverlay(h)
			cfg := overlay.Config{Sliding: tt.mode, HapticsEnabled: true}
			require.Len(t, tt.wantChanges, len(tt.events))
			for i, ev := range tt.events {
				got := o.Dispatch(ev, cfg)
				assert.Equal(t, tt.wantChanges[i], got, "event %d (%s)", i, ev.Action)
				for _, b := range o.Buttons() {
					assertInvariant(t, b)
				}
			}
			assert.Equal(t, tt.wantHaptics, h.kinds)
		})
	}
}

func TestDispatchModeNoneIgnoresMovement(t *testing.T) {
	h := &hapticRecorder{}
	o := newTestOverlay(h)
	cfg := overlay.Config{Sliding: overlay.SlideNone, HapticsEnabled: true}

	require.Len(t, o.Dispatch(down(0, 10, 10), cfg), 1)

	for _, ev := range []overlay.TouchEvent{
		move(0, 500, 500), move(0, 75, 75), move(0, 350, 50),
		move(1, 10, 10), move(1, 350, 50),
	} {
		assert.Empty(t, o.Dispatch(ev, cfg))
	}
	assert.Equal(t, map[int]overlay.State{1: overlay.Pressed, 2: overlay.Released, 3: overlay.Released}, o.States())
}

func TestDispatchHapticsDisabled(t *testing.T) {
	h := &hapticRecorder{}
	o := newTestOverlay(h)
	cfg := overlay.Config{Sliding: overlay.SlideSimple}

	assert.Equal(t, []overlay.Change{pressed(1)}, o.Dispatch(down(0, 10, 10), cfg))
	assert.Equal(t, []overlay.Change{released(1)}, o.Dispatch(up(0, 10, 10), cfg))
	assert.Empty(t, h.kinds)
}

func TestDispatchNilHaptic(t *testing.T) {
	o := overlay.New([]*overlay.Button{overlay.NewButton(1, image.Rect(0, 0, 10, 10), 255)}, nil)
	assert.NotPanics(t, func() {
		o.Dispatch(down(0, 1, 1), overlay.Config{HapticsEnabled: true})
	})
}

func TestDispatchSecondPointerTakesOverHeldButton(t *testing.T) {
	h := &hapticRecorder{}
	o := newTestOverlay(h)
	cfg := overlay.Config{Sliding: overlay.SlideSimple, HapticsEnabled: true}

	assert.Equal(t, []overlay.Change{pressed(3)}, o.Dispatch(down(0, 310, 10), cfg))
	assert.Equal(t, []overlay.Change{pressed(3)}, o.Dispatch(down(1, 320, 20), cfg))

	b, ok := o.Button(3)
	require.True(t, ok)
	assert.Equal(t, 1, b.TrackID())

	assert.Equal(t, []overlay.Change{released(3)}, o.Dispatch(up(1, 320, 20), cfg))
	assert.Empty(t, o.Dispatch(up(0, 310, 10), cfg))
	assert.Equal(t, overlay.Released, b.Status())
	assert.Equal(t, []overlay.HapticKind{overlay.HapticPress, overlay.HapticPress, overlay.HapticRelease}, h.kinds)
}

func TestReleaseAll(t *testing.T) {
	h := &hapticRecorder{}
	o := newTestOverlay(h)
	cfg := overlay.Config{Sliding: overlay.SlideNone, HapticsEnabled: true}

	o.Dispatch(down(0, 75, 75), cfg)
	o.Dispatch(down(1, 350, 50), cfg)
	h.kinds = nil

	got := o.ReleaseAll(cfg)
	assert.Equal(t, []overlay.Change{released(1), released(2), released(3)}, got)
	assert.Len(t, h.kinds, 3)
	for _, b := range o.Buttons() {
		assert.False(t, b.Pressed())
		assertInvariant(t, b)
	}
	assert.Empty(t, o.ReleaseAll(cfg))
}

func TestConfigureMode(t *testing.T) {
	h := &hapticRecorder{}
	o := newTestOverlay(h)
	cfg := overlay.Config{Sliding: overlay.SlideSimple, HapticsEnabled: true}

	o.SetConfigureMode(true)
	require.True(t, o.ConfigureMode())

	assert.Empty(t, o.Dispatch(down(0, 310, 10), cfg))
	assert.Empty(t, o.Dispatch(move(0, 320, 15), cfg))
	assert.Empty(t, o.Dispatch(move(0, 330, 30), cfg))
	assert.Empty(t, o.Dispatch(up(0, 330, 30), cfg))
	assert.Empty(t, o.Dispatch(move(0, 400, 400), cfg), "moves after up do not drag")

	c, ok := o.Button(3)
	require.True(t, ok)
	assert.Equal(t, image.Rect(320, 20, 420, 120), c.Bounds())
	assert.Equal(t, image.Pt(320, 20), o.ButtonPositions()[3])
	assert.False(t, c.Pressed())
	assert.Empty(t, h.kinds)

	a, _ := o.Button(1)
	assert.Equal(t, image.Rect(0, 0, 100, 100), a.Bounds(), "untargeted buttons stay put")
}

func TestConfigureModeOverlapDragsBoth(t *testing.T) {
	o := newTestOverlay(&hapticRecorder{})
	o.SetConfigureMode(true)

	o.Dispatch(down(0, 75, 75), overlay.Config{})
	o.Dispatch(move(0, 85, 70), overlay.Config{})

	a, _ := o.Button(1)
	b, _ := o.Button(2)
	assert.Equal(t, image.Rect(10, -5, 110, 95), a.Bounds())
	assert.Equal(t, image.Rect(60, 45, 160, 145), b.Bounds())
}

func TestConfigureModeKeepsPressState(t *testing.T) {
	o := newTestOverlay(&hapticRecorder{})
	cfg := overlay.Config{Sliding: overlay.SlideSimple}

	require.Len(t, o.Dispatch(down(0, 350, 50), cfg), 1)
	o.SetConfigureMode(true)
	o.Dispatch(down(1, 360, 60), cfg)
	o.Dispatch(move(1, 370, 60), cfg)
	o.Dispatch(up(0, 350, 50), cfg)

	c, _ := o.Button(3)
	assert.True(t, c.Pressed())
	assert.Equal(t, 0, c.TrackID())

	o.SetConfigureMode(false)
	assert.Equal(t, []overlay.Change{released(3)}, o.Dispatch(up(0, 350, 50), cfg))
}

func TestSnapshot(t *testing.T) {
	o := newTestOverlay(&hapticRecorder{})
	o.Dispatch(down(0, 10, 10), overlay.Config{})

	views := o.Snapshot()
	require.Len(t, views, 3)
	assert.Equal(t, overlay.ButtonView{ID: 1, Bounds: image.Rect(0, 0, 100, 100), Opacity: 255, Visual: overlay.VisualPressed}, views[0])
	assert.Equal(t, overlay.VisualReleased, views[1].Visual)
}

func TestSetLayout(t *testing.T) {
	o := newTestOverlay(&hapticRecorder{})
	o.SetLayout([]*overlay.Button{overlay.NewButton(9, image.Rect(0, 0, 5, 5), 255)})

	assert.Len(t, o.Buttons(), 1)
	_, ok := o.Button(1)
	assert.False(t, ok)
	assert.Equal(t, []overlay.Change{pressed(9)}, o.Dispatch(down(0, 1, 1), overlay.Config{}))
}
