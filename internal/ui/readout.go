package ui

import (
	"fmt"
	"log"

	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Readout shows the live record of the selected rectangle as indented
// JSON. It is hidden while nothing (or a missing id) is selected.
type Readout struct {
	widget.BaseWidget
	store   *state.Store
	heading *widget.Label
	body    *widget.Label
	cancel  func()
}

func NewReadout(s *state.Store) *Readout {
	r := &Readout{
		store:   s,
		heading: widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		body:    widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}),
	}
	r.ExtendBaseWidget(r)
	r.update()
	r.cancel = s.Subscribe(func(state.Change) { r.update() })
	return r
}

// FormatReadout returns the heading and JSON body for snap's selection.
// ok is false when there is nothing to show.
func FormatReadout(snap state.Snapshot) (heading, body string, ok bool) {
	rec, found := snap.SelectedRect()
	if !found {
		return "", "", false
	}
	text, err := rec.IndentedJSON()
	if err != nil {
		log.Printf("[UI] Could not render rectangle %d: %v", rec.ID, err)
		return "", "", false
	}
	return fmt.Sprintf("Selected Rectangle ID: %d", rec.ID), text, true
}

func (r *Readout) update() {
	heading, body, ok := FormatReadout(r.store.Snapshot())
	r.heading.SetText(heading)
	r.body.SetText(body)
	if ok {
		r.Show()
	} else {
		r.Hide()
	}
}

func (r *Readout) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Readout) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVBox(r.heading, r.body))
}
