package hotkeys_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/Alia5/vtouch/hotkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpeed struct {
	limit int
	sets  []int
	err   error
}

func (f *fakeSpeed) FrameLimit() int { return f.limit }

func (f *fakeSpeed) SetFrameLimit(p int) error {
	if f.err != nil {
		return f.err
	}
	f.limit = p
	f.sets = append(f.sets, p)
	return nil
}

func TestTurboToggle(t *testing.T) {
	s := &fakeSpeed{limit: 100}
	tb := hotkeys.NewTurbo(s, 300, slog.Default())

	require.NoError(t, tb.Toggle())
	assert.True(t, tb.Enabled())
	assert.Equal(t, 300, s.limit)

	require.NoError(t, tb.Toggle())
	assert.False(t, tb.Enabled())
	assert.Equal(t, 100, s.limit)
	assert.Equal(t, []int{300, 100}, s.sets)
}

func TestTurboRemembersChangedNormalSpeed(t *testing.T) {
	s := &fakeSpeed{limit: 100}
	tb := hotkeys.NewTurbo(s, 300, slog.Default())

	s.limit = 80
	require.NoError(t, tb.Set(true))
	require.NoError(t, tb.Set(false))
	assert.Equal(t, 80, s.limit)
}

func TestTurboReset(t *testing.T) {
	s := &fakeSpeed{limit: 100}
	tb := hotkeys.NewTurbo(s, 250, slog.Default())

	require.NoError(t, tb.Reset())
	assert.Empty(t, s.sets, "reset without turbo is a no-op")

	require.NoError(t, tb.Set(true))
	require.NoError(t, tb.Reset())
	assert.False(t, tb.Enabled())
	assert.Equal(t, 100, s.limit)
}

func TestTurboSpeedError(t *testing.T) {
	s := &fakeSpeed{limit: 100, err: errors.New("core busy")}
	tb := hotkeys.NewTurbo(s, 250, slog.Default())
	assert.EqualError(t, tb.Toggle(), "core busy")
}
