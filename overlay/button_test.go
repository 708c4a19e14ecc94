package overlay_test

import (
	"image"
	"testing"

	"github.com/Alia5/vtouch/overlay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func down(p, x, y int) overlay.TouchEvent {
	return overlay.TouchEvent{Action: overlay.ActionDown, Pointer: p, X: x, Y: y}
}

func up(p, x, y int) overlay.TouchEvent {
	return overlay.TouchEvent{Action: overlay.ActionUp, Pointer: p, X: x, Y: y}
}

func move(p, x, y int) overlay.TouchEvent {
	return overlay.TouchEvent{Action: overlay.ActionMove, Pointer: p, X: x, Y: y}
}

func assertInvariant(t *testing.T, b *overlay.Button) {
	t.Helper()
	if b.Pressed() {
		assert.NotEqual(t, overlay.NoPointer, b.TrackID(), "pressed button must track a pointer")
	}
	if b.TrackID() == overlay.NoPointer {
		assert.False(t, b.Direct(), "untracked button must not be marked direct")
	}
}

func TestButtonUpdateStatus(t *testing.T) {
	type step struct {
		ev          overlay.TouchEvent
		wantChanged bool
		wantPressed bool
		wantDirect  bool
	}

	tests := []struct {
		name  string
		mode  overlay.SlidingMode
		steps []step
	}{
		{
			name: "down outside is ignored",
			mode: overlay.SlideSimple,
			steps: []step{
				{ev: down(0, 200, 200)},
			},
		},
		{
			name: "direct press and release",
			mode: overlay.SlideNone,
			steps: []step{
				{ev: down(3, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: up(3, 10, 10), wantChanged: true},
			},
		},
		{
			name: "up from foreign pointer is ignored",
			mode: overlay.SlideNone,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: up(2, 10, 10), wantPressed: true, wantDirect: true},
			},
		},
		{
			name: "up releases even outside bounds",
			mode: overlay.SlideKeepFirst,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: up(1, 500, 500), wantChanged: true},
			},
		},
		{
			name: "mode none ignores slide in",
			mode: overlay.SlideNone,
			steps: []step{
				{ev: move(1, 10, 10)},
			},
		},
		{
			name: "mode none ignores slide out",
			mode: overlay.SlideNone,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: move(1, 500, 500), wantPressed: true, wantDirect: true},
			},
		},
		{
			name: "simple slide in and out",
			mode: overlay.SlideSimple,
			steps: []step{
				{ev: move(4, 10, 10), wantChanged: true, wantPressed: true},
				{ev: move(4, 20, 20), wantPressed: true},
				{ev: move(4, 500, 10), wantChanged: true},
			},
		},
		{
			name: "simple slide out of direct press releases",
			mode: overlay.SlideSimple,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: move(1, 500, 10), wantChanged: true},
			},
		},
		{
			name: "keep first holds direct press",
			mode: overlay.SlideKeepFirst,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: move(1, 500, 10), wantPressed: true, wantDirect: true},
				{ev: up(1, 500, 10), wantChanged: true},
			},
		},
		{
			name: "keep first releases slide press",
			mode: overlay.SlideKeepFirst,
			steps: []step{
				{ev: move(2, 10, 10), wantChanged: true, wantPressed: true},
				{ev: move(2, 500, 10), wantChanged: true},
			},
		},
		{
			name: "foreign pointer movement does not release",
			mode: overlay.SlideSimple,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: move(2, 500, 10), wantPressed: true, wantDirect: true},
			},
		},
		{
			name: "cancel is ignored",
			mode: overlay.SlideSimple,
			steps: []step{
				{ev: down(1, 10, 10), wantChanged: true, wantPressed: true, wantDirect: true},
				{ev: overlay.TouchEvent{Action: overlay.ActionCancel, Pointer: 1}, wantPressed: true, wantDirect: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := overlay.NewButton(7, image.Rect(0, 0, 100, 100), 255)
			for i, s := range tt.steps {
				changed := b.UpdateStatus(s.ev, tt.mode)
				assert.Equal(t, s.wantChanged, changed, "step %d changed", i)
				assert.Equal(t, s.wantPressed, b.Pressed(), "step %d pressed", i)
				assert.Equal(t, s.wantDirect, b.Direct(), "step %d direct", i)
				if s.wantChanged && s.wantPressed {
					assert.Equal(t, s.ev.Pointer, b.TrackID(), "step %d track id", i)
				}
				assertInvariant(t, b)
			}
		})
	}
}

func TestButtonBoundsAreHalfOpen(t *testing.T) {
	b := overlay.NewButton(1, image.Rect(0, 0, 10, 10), 255)
	assert.False(t, b.UpdateStatus(down(0, 10, 5), overlay.SlideNone))
	assert.True(t, b.UpdateStatus(down(0, 0, 0), overlay.SlideNone))
}

func TestButtonBitmap(t *testing.T) {
	b := overlay.NewButton(1, image.Rect(0, 0, 10, 10), 128)
	assert.Equal(t, overlay.VisualReleased, b.Bitmap())
	assert.Equal(t, overlay.Released, b.Status())

	require.True(t, b.UpdateStatus(down(0, 5, 5), overlay.SlideNone))
	assert.Equal(t, overlay.VisualPressed, b.Bitmap())
	assert.Equal(t, overlay.Pressed, b.Status())
}

func TestButtonReposition(t *testing.T) {
	b := overlay.NewButton(1, image.Rect(10, 20, 60, 50), 255)
	require.True(t, b.UpdateStatus(down(0, 15, 25), overlay.SlideNone))

	b.Reposition(5, -10)
	assert.Equal(t, image.Rect(15, 10, 65, 40), b.Bounds())
	assert.Equal(t, image.Pt(15, 10), b.Position())
	assert.True(t, b.Pressed(), "repositioning must not touch press state")
	assert.Equal(t, 0, b.TrackID())

	b.SetPosition(0, 0)
	assert.Equal(t, image.Rect(0, 0, 50, 30), b.Bounds())
}

func TestButtonConfigureTouch(t *testing.T) {
	b := overlay.NewButton(1, image.Rect(0, 0, 20, 20), 255)

	b.OnConfigureTouch(down(0, 5, 5))
	b.OnConfigureTouch(move(0, 8, 9))
	assert.Equal(t, image.Rect(3, 4, 23, 24), b.Bounds())

	b.OnConfigureTouch(move(0, 10, 10))
	assert.Equal(t, image.Rect(5, 5, 25, 25), b.Bounds(), "deltas are frame to frame")

	b.OnConfigureTouch(up(0, 50, 50))
	assert.Equal(t, image.Rect(5, 5, 25, 25), b.Bounds(), "up does not move the button")
	assert.False(t, b.Pressed())
}
