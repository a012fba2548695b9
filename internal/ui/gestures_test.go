package ui

import (
	"testing"

	"RectBoard/internal/state"

	"github.com/stretchr/testify/assert"
)

type fakeHandle struct {
	x, y   float64
	w, h   float64
	sx, sy float64
}

func (f *fakeHandle) StagePosition() (float64, float64) { return f.x, f.y }
func (f *fakeHandle) BaseSize() (float64, float64)      { return f.w, f.h }
func (f *fakeHandle) Scale() (float64, float64)         { return f.sx, f.sy }
func (f *fakeHandle) SetScale(sx, sy float64)           { f.sx, f.sy = sx, sy }

// render mimics the scene picking up a committed record.
func (f *fakeHandle) render(r state.Rect) {
	f.x, f.y, f.w, f.h = r.X, r.Y, r.Width, r.Height
}

func TestApplyDragEndOnlyMoves(t *testing.T) {
	rec := state.Rect{ID: 4, X: 1, Y: 2, Width: 30, Height: 40, Fill: "green"}
	h := &fakeHandle{x: 55, y: 66, w: 999, h: 999, sx: 3, sy: 3}

	got := ApplyDragEnd(rec, h)

	assert.Equal(t, state.Rect{ID: 4, X: 55, Y: 66, Width: 30, Height: 40, Fill: "green"}, got)
	assert.Equal(t, 3.0, h.sx, "drag does not touch scale")
}

func TestApplyTransformEndResetsScale(t *testing.T) {
	rec := state.Rect{ID: 1, X: 0, Y: 0, Width: 10, Height: 10, Fill: "green"}
	h := &fakeHandle{x: 5, y: 6, w: 10, h: 10, sx: 2, sy: 3}

	rec = ApplyTransformEnd(rec, h)
	assert.Equal(t, 20.0, rec.Width)
	assert.Equal(t, 30.0, rec.Height)
	assert.Equal(t, 5.0, rec.X)
	assert.Equal(t, 6.0, rec.Y)
	assert.Equal(t, 1.0, h.sx)
	assert.Equal(t, 1.0, h.sy)

	h.render(rec)
	again := ApplyTransformEnd(rec, h)
	assert.Equal(t, rec, again, "a neutral resize must not compound the previous scale")
}

func TestApplyTransformEndClamps(t *testing.T) {
	tests := []struct {
		name       string
		sx, sy     float64
		wantWidth  float64
		wantHeight float64
	}{
		{"width floored at five", 0.2, 1, 5, 10},
		{"width at floor", 0.5, 1, 5, 10},
		{"height is not floored", 1, 0.1, 10, 1},
		{"height can reach zero", 1, 0, 10, 0},
		{"height can go negative", 1, -1, 10, -10},
		{"negative width floored", -1, 1, 5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := state.Rect{ID: 1, Width: 10, Height: 10, Fill: "green"}
			h := &fakeHandle{w: 10, h: 10, sx: tt.sx, sy: tt.sy}

			got := ApplyTransformEnd(rec, h)
			assert.InDelta(t, tt.wantWidth, got.Width, 1e-9)
			assert.InDelta(t, tt.wantHeight, got.Height, 1e-9)
		})
	}
}
