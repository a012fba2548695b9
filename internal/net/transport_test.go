package net

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"RectBoard/internal/state"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameFromSnapshot(t *testing.T) {
	s := state.NewStore()
	s.AddRectangle()
	s.AddRectangle()

	f := FrameFromSnapshot(state.ChangeAdd, s.Snapshot())
	assert.Equal(t, 2, f.Count)
	assert.Equal(t, "add", f.Kind)
	assert.Equal(t, s.Session(), f.Session)
	assert.Nil(t, f.Selected)
	assert.Equal(t, "(nothing selected)", f.Readout())

	s.SelectShape(2)
	f = FrameFromSnapshot(state.ChangeSelect, s.Snapshot())
	require.NotNil(t, f.Selected)
	assert.Equal(t, 2, f.Selected.ID)
	assert.True(t, strings.HasPrefix(f.Readout(), "Selected Rectangle ID: 2\n{"))

	s.SelectShape(9)
	f = FrameFromSnapshot(state.ChangeSelect, s.Snapshot())
	assert.Nil(t, f.Selected, "dangling selection is not shown")
}

func TestSnapshotEndpoint(t *testing.T) {
	hub := NewHub(Frame{Revision: 3, Count: 1})
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()

	var f Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	assert.Equal(t, uint64(3), f.Revision)
	assert.Equal(t, 1, f.Count)
}

func TestHubStreamsCurrentThenPublished(t *testing.T) {
	hub := NewHub(Frame{Revision: 1})
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first Frame
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, uint64(1), first.Revision)

	rec := state.Rect{ID: 1, X: 10, Y: 20, Width: 100, Height: 100, Fill: "green"}
	hub.Publish(Frame{Revision: 2, Count: 1, Selected: &rec})

	var second Frame
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, uint64(2), second.Revision)
	require.NotNil(t, second.Selected)
	assert.Equal(t, rec, *second.Selected)
	assert.Equal(t, uint64(2), hub.Current().Revision)
}

func TestWatchReceivesFrames(t *testing.T) {
	hub := NewHub(Frame{Revision: 7})
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	frames := make(chan Frame, 4)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Watch(ctx, strings.TrimPrefix(srv.URL, "http://"), func(f Frame) { frames <- f })
	}()

	select {
	case f := <-frames:
		assert.Equal(t, uint64(7), f.Revision)
	case <-ctx.Done():
		t.Fatal("no frame received")
	}

	require.Eventually(t, func() bool { return hub.ViewerCount() == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(Frame{Revision: 8})
	select {
	case f := <-frames:
		assert.Equal(t, uint64(8), f.Revision)
	case <-ctx.Done():
		t.Fatal("published frame not received")
	}

	cancel()
	assert.NoError(t, <-errCh)
}

func TestEntryAddr(t *testing.T) {
	_, ok := entryAddr(nil)
	assert.False(t, ok)

	_, ok = entryAddr(&mdns.ServiceEntry{Port: 8888})
	assert.False(t, ok)

	addr, ok := entryAddr(&mdns.ServiceEntry{AddrV4: []byte{192, 168, 1, 5}, Port: 8888})
	require.True(t, ok)
	assert.Equal(t, "192.168.1.5:8888", addr)
}

func TestPublishDropsSlowViewer(t *testing.T) {
	hub := NewHub(Frame{Revision: 1})
	slow := &viewer{addr: "slow", send: make(chan Frame, 1)}
	hub.viewers[slow] = true
	slow.send <- Frame{Revision: 1}
	require.Equal(t, 1, hub.ViewerCount())

	hub.Publish(Frame{Revision: 2})
	assert.Equal(t, 0, hub.ViewerCount(), "a viewer with a full queue is dropped")
	assert.Equal(t, uint64(2), hub.Current().Revision)

	queued, ok := <-slow.send
	require.True(t, ok)
	assert.Equal(t, uint64(1), queued.Revision)
	_, ok = <-slow.send
	assert.False(t, ok, "queue is closed so the write loop exits")

	hub.Publish(Frame{Revision: 3})
	assert.Equal(t, uint64(3), hub.Current().Revision)
}
