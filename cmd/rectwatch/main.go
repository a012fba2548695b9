// Command rectwatch prints the selection readout of a running board.
//
//	rectwatch                          discover a board via mDNS
//	rectwatch rectboard://host:port    connect to a known board
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	inspect "RectBoard/internal/net"
)

const (
	CustomURLScheme = "rectboard://"
	browseTimeout   = 3 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	addr := ""
	if len(os.Args) > 1 {
		addr = strings.TrimSuffix(strings.TrimPrefix(os.Args[1], CustomURLScheme), "/")
	} else {
		var err error
		addr, err = discover(ctx)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
	}

	log.Printf("Watching %s", addr)
	err := inspect.Watch(ctx, addr, func(f inspect.Frame) {
		fmt.Printf("--- revision %d (%s, %d rectangles)\n%s\n", f.Revision, f.Kind, f.Count, f.Readout())
	})
	if err != nil {
		log.Fatalf("Disconnected: %v", err)
	}
}

func discover(ctx context.Context) (string, error) {
	found := make(chan string, 1)
	err := inspect.Browse(ctx, browseTimeout, func(addr string) {
		select {
		case found <- addr:
		default:
		}
	})
	if err != nil {
		return "", err
	}
	select {
	case addr := <-found:
		return addr, nil
	default:
		return "", fmt.Errorf("no board found within %s", browseTimeout)
	}
}
