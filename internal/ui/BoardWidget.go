package ui

import (
	"image/color"
	"log"

	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget is the stage. It draws one rectNode per record, in store
// order, and attaches the transformer to the selected one.
type BoardWidget struct {
	widget.BaseWidget
	store   *state.Store
	nodes   []*rectNode
	overlay *transformer
	cancel  func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)

func NewBoardWidget(s *state.Store) *BoardWidget {
	b := &BoardWidget{
		store: s,
		nodes: make([]*rectNode, 0),
	}
	b.overlay = newTransformer(b)
	b.ExtendBaseWidget(b)
	b.sync()
	b.cancel = s.Subscribe(func(state.Change) {
		b.sync()
		b.Refresh()
	})
	return b
}

// AddRectangle is the toolbar action.
func (b *BoardWidget) AddRectangle() {
	b.store.AddRectangle()
}

// Tapped only fires for taps that miss every rectangle, since fyne hands a
// tap to the topmost tappable object.
func (b *BoardWidget) Tapped(_ *fyne.PointEvent) {
	b.store.Deselect()
}

// Close stops following the store.
func (b *BoardWidget) Close() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

// sync brings the node list in line with the store.
func (b *BoardWidget) sync() {
	rects := b.store.Rectangles()
	for len(b.nodes) < len(rects) {
		b.nodes = append(b.nodes, newRectNode(b, len(b.nodes)))
	}
	b.nodes = b.nodes[:len(rects)]
	for i, r := range rects {
		b.nodes[i].setRecord(r)
	}

	b.overlay.attach(b.selectedNode())
}

// selectedNode resolves the selection id against the live nodes.
func (b *BoardWidget) selectedNode() *rectNode {
	id, ok := b.store.Selected()
	if !ok {
		return nil
	}
	for _, n := range b.nodes {
		if n.rec.ID == id {
			return n
		}
	}
	return nil
}

func (b *BoardWidget) selectNode(n *rectNode) {
	b.store.SelectShape(n.rec.ID)
}

func (b *BoardWidget) nodeMoved(n *rectNode) {
	if b.overlay.target == n {
		b.overlay.layout()
	}
}

func (b *BoardWidget) dragEnd(n *rectNode) {
	b.commit(n.index, ApplyDragEnd(n.rec, n))
}

func (b *BoardWidget) transformEnd(n *rectNode) {
	b.commit(n.index, ApplyTransformEnd(n.rec, n))
}

// commit writes a gesture result back. The index always comes from the
// current node list, so a failure here is a bug.
func (b *BoardWidget) commit(index int, r state.Rect) {
	if err := b.store.UpdateRectangle(index, r); err != nil {
		log.Panicf("[UI] Gesture update failed: %v", err)
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	for _, n := range r.board.nodes {
		objects = append(objects, n)
		if r.board.overlay.target == n {
			objects = append(objects, r.board.overlay.objects()...)
		}
	}
	return objects
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	for _, n := range r.board.nodes {
		n.place()
	}
	r.board.overlay.layout()
}

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.Size())
	for _, n := range r.board.nodes {
		n.Refresh()
	}
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
