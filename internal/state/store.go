package state

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Store holds the rectangles in insertion order plus the selected id.
// Later rectangles draw on top of earlier ones.
type Store struct {
	rects    []Rect
	selected *int
	clock    *revisionClock
	random   func() float64

	subscribers []subscriber
	nextSub     int
	mu          sync.RWMutex
}

type subscriber struct {
	id int
	fn func(Change)
}

type Option func(*Store)

// WithRandom replaces the source used for spawn positions. f must return
// values in [0,1).
func WithRandom(f func() float64) Option {
	return func(s *Store) { s.random = f }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		rects:  make([]Rect, 0),
		clock:  newRevisionClock(),
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session identifies this store instance in published changes.
func (s *Store) Session() string {
	return s.clock.session
}

// Subscribe registers fn for every change. The returned func removes it.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// AddRectangle appends a new record at a random spot in [0,SpawnRange).
// The new record is not selected.
func (s *Store) AddRectangle() Rect {
	s.mu.Lock()
	r := Rect{
		ID:     len(s.rects) + 1,
		X:      s.random() * SpawnRange,
		Y:      s.random() * SpawnRange,
		Width:  DefaultSize,
		Height: DefaultSize,
		Fill:   DefaultFill,
	}
	s.rects = append(s.rects, r)
	ch := s.changeLocked(ChangeAdd, len(s.rects)-1, r)
	s.mu.Unlock()

	log.Printf("[STORE] Added rectangle %d at (%.1f, %.1f)", r.ID, r.X, r.Y)
	s.publish(ch)
	return r
}

// UpdateRectangle replaces the record at index in full. Other records are
// left untouched.
func (s *Store) UpdateRectangle(index int, r Rect) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.rects) {
		n := len(s.rects)
		s.mu.Unlock()
		return fmt.Errorf("update rectangle at %d of %d: %w", index, n, ErrIndexOutOfRange)
	}
	s.rects[index] = r
	ch := s.changeLocked(ChangeUpdate, index, r)
	s.mu.Unlock()

	log.Printf("[STORE] Updated rectangle %d at index %d", r.ID, index)
	s.publish(ch)
	return nil
}

// SelectShape sets the selected id. The id is not checked against the
// collection; readers resolve it with SelectedRect.
func (s *Store) SelectShape(id int) {
	s.mu.Lock()
	s.selected = &id
	ch := s.changeLocked(ChangeSelect, -1, Rect{})
	s.mu.Unlock()
	s.publish(ch)
}

func (s *Store) Deselect() {
	s.mu.Lock()
	s.selected = nil
	ch := s.changeLocked(ChangeDeselect, -1, Rect{})
	s.mu.Unlock()
	s.publish(ch)
}

// Rectangles returns a copy of all records in insertion order.
func (s *Store) Rectangles() []Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rects := make([]Rect, len(s.rects))
	copy(rects, s.rects)
	return rects
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rects)
}

// At returns the record at index.
func (s *Store) At(index int) (Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.rects) {
		return Rect{}, false
	}
	return s.rects[index], true
}

// Selected returns the raw selected id, which may be dangling.
func (s *Store) Selected() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// SelectedRect returns the live record for the selected id. It reports
// false when nothing is selected or the id no longer exists.
func (s *Store) SelectedRect() (Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return Rect{}, false
	}
	return findRect(s.rects, *s.selected)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rects := make([]Rect, len(s.rects))
	copy(rects, s.rects)
	return Snapshot{
		Revision:   s.clock.Current(),
		Session:    s.clock.session,
		Rectangles: rects,
		Selected:   copySelection(s.selected),
	}
}

func (s *Store) changeLocked(kind ChangeKind, index int, r Rect) Change {
	return Change{
		Kind:     kind,
		Revision: s.clock.Tick(),
		Session:  s.clock.session,
		Index:    index,
		Rect:     r,
		Selected: copySelection(s.selected),
	}
}

func (s *Store) publish(ch Change) {
	s.mu.RLock()
	subs := make([]func(Change), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub.fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(ch)
	}
}

func copySelection(sel *int) *int {
	if sel == nil {
		return nil
	}
	id := *sel
	return &id
}
