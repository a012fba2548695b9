package ui

import (
	"image/color"

	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// rectNode is the scene node for one record. It keeps its own position and
// scale while a gesture is in flight; the record only changes when the
// gesture ends.
type rectNode struct {
	widget.BaseWidget
	board *BoardWidget
	index int
	rec   state.Rect

	x, y           float64
	scaleX, scaleY float64

	rect *canvas.Rectangle
}

var _ fyne.Tappable = (*rectNode)(nil)
var _ fyne.Draggable = (*rectNode)(nil)
var _ desktop.Cursorable = (*rectNode)(nil)
var _ ShapeHandle = (*rectNode)(nil)

func newRectNode(b *BoardWidget, index int) *rectNode {
	n := &rectNode{
		board:  b,
		index:  index,
		scaleX: 1,
		scaleY: 1,
		rect:   canvas.NewRectangle(color.Transparent),
	}
	n.ExtendBaseWidget(n)
	return n
}

func (n *rectNode) setRecord(r state.Rect) {
	n.rec = r
	n.x, n.y = r.X, r.Y
	n.rect.FillColor = fillColor(r.Fill)
	n.place()
}

// place moves the widget to the node's stage geometry.
func (n *rectNode) place() {
	w, h := n.displaySize()
	n.Move(fyne.NewPos(float32(n.x), float32(n.y)))
	n.Resize(fyne.NewSize(float32(w), float32(h)))
}

func (n *rectNode) displaySize() (w, h float64) {
	return n.rec.Width * n.scaleX, n.rec.Height * n.scaleY
}

// setDisplaySize turns a drawn size into scale factors. An axis with a zero
// base size cannot be scaled and is left alone.
func (n *rectNode) setDisplaySize(w, h float64) {
	if n.rec.Width > 0 {
		n.scaleX = w / n.rec.Width
	}
	if n.rec.Height > 0 {
		n.scaleY = h / n.rec.Height
	}
}

func (n *rectNode) StagePosition() (x, y float64) { return n.x, n.y }
func (n *rectNode) BaseSize() (w, h float64)      { return n.rec.Width, n.rec.Height }
func (n *rectNode) Scale() (sx, sy float64)       { return n.scaleX, n.scaleY }

func (n *rectNode) SetScale(sx, sy float64) {
	n.scaleX, n.scaleY = sx, sy
	n.place()
}

func (n *rectNode) Tapped(_ *fyne.PointEvent) {
	n.board.selectNode(n)
}

func (n *rectNode) Dragged(e *fyne.DragEvent) {
	n.x += float64(e.Dragged.DX)
	n.y += float64(e.Dragged.DY)
	n.place()
	n.board.nodeMoved(n)
}

func (n *rectNode) DragEnd() {
	n.board.dragEnd(n)
}

func (n *rectNode) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (n *rectNode) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(n.rect)
}

func (n *rectNode) Refresh() {
	n.rect.FillColor = fillColor(n.rec.Fill)
	n.BaseWidget.Refresh()
}

// fillColor maps the stored color names onto paint.
func fillColor(name string) color.Color {
	switch name {
	case "red":
		return color.NRGBA{R: 255, A: 255}
	case "blue":
		return color.NRGBA{B: 255, A: 255}
	case "green":
		return color.NRGBA{G: 128, A: 255}
	}
	return color.Black
}
