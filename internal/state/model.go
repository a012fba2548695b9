package state

import "encoding/json"

const (
	DefaultFill = "green"
	DefaultSize = 100.0
	SpawnRange  = 100.0
	MinWidth    = 5.0
)

// Rect is the only shape on the board. Geometry is in stage coordinates,
// X/Y being the top-left corner.
type Rect struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

// Moved returns a copy of r with a new position.
func (r Rect) Moved(x, y float64) Rect {
	r.X, r.Y = x, y
	return r
}

// IndentedJSON renders r the way the selection readout shows it.
func (r Rect) IndentedJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type ChangeKind string

const (
	ChangeAdd      ChangeKind = "add"
	ChangeUpdate   ChangeKind = "update"
	ChangeSelect   ChangeKind = "select"
	ChangeDeselect ChangeKind = "deselect"
)

// Change is published after every store mutation.
type Change struct {
	Kind     ChangeKind
	Revision uint64
	Session  string
	Index    int // position of the added/updated record, -1 otherwise
	Rect     Rect
	Selected *int
}

// Snapshot is a consistent read of the whole store.
type Snapshot struct {
	Revision   uint64
	Session    string
	Rectangles []Rect
	Selected   *int
}

// SelectedRect resolves the selection against the snapshot's records.
func (s Snapshot) SelectedRect() (Rect, bool) {
	if s.Selected == nil {
		return Rect{}, false
	}
	return findRect(s.Rectangles, *s.Selected)
}

func findRect(rects []Rect, id int) (Rect, bool) {
	for _, r := range rects {
		if r.ID == id {
			return r, true
		}
	}
	return Rect{}, false
}
