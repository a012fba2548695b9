package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	handleSize = 10
	// minDrawnSize keeps a handle drag from collapsing an axis to zero,
	// where no scale factor could grow it back.
	minDrawnSize = 1
)

type corner int

const (
	cornerTopLeft corner = iota
	cornerTopRight
	cornerBottomRight
	cornerBottomLeft
)

func (c corner) left() bool { return c == cornerTopLeft || c == cornerBottomLeft }
func (c corner) top() bool  { return c == cornerTopLeft || c == cornerTopRight }

// transformer is the selection overlay: a frame plus four corner handles.
// It is attached to at most one node at a time.
type transformer struct {
	board   *BoardWidget
	target  *rectNode
	frame   *canvas.Rectangle
	handles [4]*resizeHandle
}

func newTransformer(b *BoardWidget) *transformer {
	t := &transformer{board: b}
	t.frame = canvas.NewRectangle(color.Transparent)
	t.frame.StrokeColor = color.NRGBA{R: 0, G: 161, B: 255, A: 255}
	t.frame.StrokeWidth = 1
	for i := range t.handles {
		t.handles[i] = newResizeHandle(t, corner(i))
	}
	return t
}

func (t *transformer) attach(n *rectNode) {
	t.target = n
	t.layout()
}

func (t *transformer) objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{t.frame}
	for _, h := range t.handles {
		objs = append(objs, h)
	}
	return objs
}

// layout wraps the frame and handles around the target's drawn bounds.
func (t *transformer) layout() {
	if t.target == nil {
		return
	}
	pos := t.target.Position()
	size := t.target.Size()
	t.frame.Move(pos)
	t.frame.Resize(size)

	half := float32(handleSize) / 2
	for _, h := range t.handles {
		p := pos
		if !h.corner.left() {
			p.X += size.Width
		}
		if !h.corner.top() {
			p.Y += size.Height
		}
		h.Move(fyne.NewPos(p.X-half, p.Y-half))
		h.Resize(fyne.NewSize(handleSize, handleSize))
	}
}

// resize applies one drag step of a corner handle to the target's scale.
// The opposite corner stays put; drawn sizes stop at minDrawnSize. An axis
// whose base size is already zero cannot scale and does not move.
func (t *transformer) resize(c corner, d fyne.Delta) {
	n := t.target
	if n == nil {
		return
	}
	w, h := n.displaySize()
	dx, dy := float64(d.DX), float64(d.DY)

	newW, newH := w+dx, h+dy
	if c.left() {
		newW = w - dx
	}
	if c.top() {
		newH = h - dy
	}
	newW, newH = math.Max(minDrawnSize, newW), math.Max(minDrawnSize, newH)
	if n.rec.Width == 0 {
		newW = w
	}
	if n.rec.Height == 0 {
		newH = h
	}

	if c.left() {
		n.x += w - newW
	}
	if c.top() {
		n.y += h - newH
	}
	n.setDisplaySize(newW, newH)
	n.place()
	t.layout()
	t.board.Refresh()
}

func (t *transformer) resizeEnd() {
	if t.target == nil {
		return
	}
	t.board.transformEnd(t.target)
}

type resizeHandle struct {
	widget.BaseWidget
	owner  *transformer
	corner corner
	box    *canvas.Rectangle
}

var _ fyne.Draggable = (*resizeHandle)(nil)

func newResizeHandle(t *transformer, c corner) *resizeHandle {
	box := canvas.NewRectangle(color.White)
	box.StrokeColor = color.NRGBA{R: 0, G: 161, B: 255, A: 255}
	box.StrokeWidth = 1
	h := &resizeHandle{owner: t, corner: c, box: box}
	h.ExtendBaseWidget(h)
	return h
}

func (h *resizeHandle) Dragged(e *fyne.DragEvent) {
	h.owner.resize(h.corner, e.Dragged)
}

func (h *resizeHandle) DragEnd() {
	h.owner.resizeEnd()
}

// Tapped swallows taps so a click on a handle does not deselect.
func (h *resizeHandle) Tapped(_ *fyne.PointEvent) {}

func (h *resizeHandle) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

func (h *resizeHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.box)
}
