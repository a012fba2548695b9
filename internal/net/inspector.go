package net

import (
	"context"
	"fmt"
	"log"
	"sync"

	"RectBoard/internal/state"

	"github.com/hashicorp/mdns"
)

// Inspector ties a Hub to a store and owns everything started for it:
// the HTTP server, the store subscription and the mDNS advertisement.
type Inspector struct {
	Hub *Hub

	mdns        *mdns.Server
	unsubscribe func()
	cancel      context.CancelFunc
	done        chan struct{}
	stopOnce    sync.Once
}

// StartInspector serves s on port. When advertise is set the service is
// also announced over mDNS; a failed announcement is logged, not fatal.
func StartInspector(s *state.Store, port int, advertise bool) *Inspector {
	ctx, cancel := context.WithCancel(context.Background())
	in := &Inspector{
		Hub:    NewHub(FrameFromSnapshot("", s.Snapshot())),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	in.unsubscribe = s.Subscribe(func(ch state.Change) {
		in.Hub.Publish(FrameFromSnapshot(ch.Kind, s.Snapshot()))
	})

	go func() {
		defer close(in.done)
		if err := in.Hub.ListenAndServe(ctx, fmt.Sprintf(":%d", port)); err != nil {
			log.Printf("[INSPECT] %v", err)
		}
	}()

	if advertise {
		server, err := Advertise(port)
		if err != nil {
			log.Printf("[INSPECT] Not advertising: %v", err)
		} else {
			in.mdns = server
		}
	}
	return in
}

// Stop withdraws the advertisement, detaches from the store and waits for
// the server to shut down. Later calls do nothing.
func (in *Inspector) Stop() {
	in.stopOnce.Do(func() {
		if in.mdns != nil {
			if err := in.mdns.Shutdown(); err != nil {
				log.Printf("[INSPECT] mDNS shutdown: %v", err)
			}
		}
		in.unsubscribe()
		in.cancel()
		<-in.done
		log.Println("[INSPECT] Stopped")
	})
}
