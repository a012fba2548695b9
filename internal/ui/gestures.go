package ui

import (
	"math"

	"RectBoard/internal/state"
)

// ShapeHandle is the live scene node behind a record. Gesture handlers read
// it once the gesture ends; the store never sees it.
type ShapeHandle interface {
	StagePosition() (x, y float64)
	BaseSize() (w, h float64)
	Scale() (sx, sy float64)
	SetScale(sx, sy float64)
}

// ApplyDragEnd copies the node's final position into rec. Size, fill and id
// are kept as they were.
func ApplyDragEnd(rec state.Rect, h ShapeHandle) state.Rect {
	x, y := h.StagePosition()
	return rec.Moved(x, y)
}

// ApplyTransformEnd bakes the node's scale into the record and resets the
// node to scale (1,1) so the next resize starts from the new size.
//
// Width is floored at state.MinWidth. Height has no floor.
func ApplyTransformEnd(rec state.Rect, h ShapeHandle) state.Rect {
	sx, sy := h.Scale()
	h.SetScale(1, 1)

	x, y := h.StagePosition()
	w, ht := h.BaseSize()

	rec.X, rec.Y = x, y
	rec.Width = math.Max(state.MinWidth, w*sx)
	rec.Height = ht * sy
	return rec
}
