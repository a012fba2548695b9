package main

import (
	"fmt"
	"log"

	"RectBoard/internal/config"
	inspect "RectBoard/internal/net"
	"RectBoard/internal/state"
	"RectBoard/internal/ui"
)

const CustomURLScheme = "rectboard://"

func main() {
	cfg := config.Load()
	store := state.NewStore()
	log.Printf("Starting board session %s", store.Session())

	status := ""
	var inspector *inspect.Inspector
	if cfg.InspectEnabled {
		inspector = inspect.StartInspector(store, cfg.InspectPort, cfg.Advertise)
		status = "inspector " + inspectorLink(cfg.InspectPort)
	}

	ui.RunApp(cfg, store, status)

	if inspector != nil {
		inspector.Stop()
	}
}

// inspectorLink is the address viewers pass to rectwatch.
func inspectorLink(port int) string {
	hostIP, err := inspect.LocalIP()
	if err != nil {
		log.Printf("[INSPECT] Could not resolve local IP: %v", err)
		hostIP = "127.0.0.1"
	}
	link := fmt.Sprintf("%s%s:%d", CustomURLScheme, hostIP, port)
	log.Printf("[INSPECT] Watch with: rectwatch %s", link)
	return link
}
