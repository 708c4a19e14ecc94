package overlay_test

import (
	"testing"

	"github.com/Alia5/vtouch/overlay"

	"github.com/stretchr/testify/assert"
)

func TestParseSlidingMode(t *testing.T) {
	tests := []struct {
		in      string
		want    overlay.SlidingMode
		wantErr bool
	}{
		{in: "none", want: overlay.SlideNone},
		{in: "", want: overlay.SlideNone},
		{in: "Simple", want: overlay.SlideSimple},
		{in: "1", want: overlay.SlideSimple},
		{in: "keep-first", want: overlay.SlideKeepFirst},
		{in: "keepfirst", want: overlay.SlideKeepFirst},
		{in: "2", want: overlay.SlideKeepFirst},
		{in: "sticky", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := overlay.ParseSlidingMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlidingModeText(t *testing.T) {
	var m overlay.SlidingMode
	assert.NoError(t, m.UnmarshalText([]byte("keep-first")))
	assert.Equal(t, overlay.SlideKeepFirst, m)

	b, err := m.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "keep-first", string(b))

	_, err = overlay.SlidingMode(7).MarshalText()
	assert.Error(t, err)
	assert.Error(t, m.UnmarshalText([]byte("bogus")))
	assert.Equal(t, overlay.SlideKeepFirst, m, "failed unmarshal leaves value untouched")
}

func TestParseAction(t *testing.T) {
	for _, a := range []overlay.Action{overlay.ActionDown, overlay.ActionUp, overlay.ActionMove, overlay.ActionCancel} {
		got, err := overlay.ParseAction(a.String())
		assert.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := overlay.ParseAction("tap")
	assert.EqualError(t, err, `unknown action "tap"`)
	assert.Equal(t, "action(9)", overlay.Action(9).String())
}
