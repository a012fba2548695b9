package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"RectBoard/internal/state"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 5 * time.Second
	viewerBuffer = 16
)

// Frame is one message on the inspector stream: the state a viewer needs
// to reproduce the selection readout.
type Frame struct {
	Revision uint64      `json:"revision"`
	Session  string      `json:"session"`
	Kind     string      `json:"kind,omitempty"`
	Count    int         `json:"count"`
	Selected *state.Rect `json:"selected"`
}

// FrameFromSnapshot builds a frame; Selected is nil unless the selection
// resolves to a live record.
func FrameFromSnapshot(kind state.ChangeKind, snap state.Snapshot) Frame {
	f := Frame{
		Revision: snap.Revision,
		Session:  snap.Session,
		Kind:     string(kind),
		Count:    len(snap.Rectangles),
	}
	if rec, ok := snap.SelectedRect(); ok {
		f.Selected = &rec
	}
	return f
}

// Readout renders the frame the way the desktop readout does.
func (f Frame) Readout() string {
	if f.Selected == nil {
		return "(nothing selected)"
	}
	body, err := f.Selected.IndentedJSON()
	if err != nil {
		return fmt.Sprintf("Selected Rectangle ID: %d (unprintable: %v)", f.Selected.ID, err)
	}
	return fmt.Sprintf("Selected Rectangle ID: %d\n%s", f.Selected.ID, body)
}

type viewer struct {
	addr string
	conn *websocket.Conn
	send chan Frame
}

// Hub fans frames out to websocket viewers. Viewers can only listen;
// anything they send is discarded.
type Hub struct {
	upgrader websocket.Upgrader
	current  Frame
	viewers  map[*viewer]bool
	mu       sync.RWMutex
}

func NewHub(initial Frame) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		current: initial,
		viewers: make(map[*viewer]bool),
	}
}

// Handler serves /ws (stream) and /snapshot (current frame).
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/snapshot", h.serveSnapshot)
	return mux
}

// Publish records f as current and queues it for every viewer. A viewer
// whose queue is full is dropped.
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = f
	for v := range h.viewers {
		select {
		case v.send <- f:
		default:
			log.Printf("[INSPECT] Dropping slow viewer %s", v.addr)
			h.removeLocked(v)
		}
	}
}

func (h *Hub) Current() Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

// ListenAndServe runs the inspector on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INSPECT] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("inspector server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	h.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("inspector shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Current()); err != nil {
		log.Printf("[INSPECT] Snapshot write failed: %v", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[INSPECT] Upgrade failed: %v", err)
		return
	}

	v := &viewer{addr: conn.RemoteAddr().String(), conn: conn, send: make(chan Frame, viewerBuffer)}
	h.mu.Lock()
	h.viewers[v] = true
	v.send <- h.current
	h.mu.Unlock()
	log.Printf("[INSPECT] Viewer connected: %s", v.addr)

	go h.writeLoop(v)
	h.readLoop(v)
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.conn.Close()
	for f := range v.send {
		v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := v.conn.WriteJSON(f); err != nil {
			log.Printf("[INSPECT] Write to %s failed: %v", v.addr, err)
			h.remove(v)
			return
		}
	}
	v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}

// readLoop only watches for the viewer going away.
func (h *Hub) readLoop(v *viewer) {
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			log.Printf("[INSPECT] Viewer %s disconnected: %v", v.addr, err)
			h.remove(v)
			return
		}
	}
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(v)
}

func (h *Hub) removeLocked(v *viewer) {
	if h.viewers[v] {
		delete(h.viewers, v)
		close(v.send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		h.removeLocked(v)
	}
}

// Watch connects to an inspector at addr (host:port) and calls fn for
// every frame until ctx is done or the connection drops.
func Watch(ctx context.Context, addr string, fn func(Frame)) error {
	url := "ws://" + strings.TrimSuffix(addr, "/") + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}
		fn(f)
	}
}
