package net

import (
	"fmt"
	"log"
	"net"
)

// routeTarget only selects a route; dialing UDP sends nothing.
const routeTarget = "8.8.8.8:80"

// LocalIP picks the address an inspector link should carry: the source
// address of the default route, else the first LAN IPv4 on an up
// interface, else loopback.
func LocalIP() (string, error) {
	if ip := routeSource(routeTarget); ip != nil {
		return ip.String(), nil
	}

	addrs, err := interfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	if ip, ok := firstIPv4(addrs); ok {
		return ip.String(), nil
	}
	log.Println("[INSPECT] No LAN address found, link uses loopback")
	return "127.0.0.1", nil
}

// routeSource returns the local address the kernel would use to reach
// target, or nil when there is no route.
func routeSource(target string) net.IP {
	conn, err := net.Dial("udp4", target)
	if err != nil {
		return nil
	}
	defer conn.Close()

	udp, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || udp.IP.IsUnspecified() {
		return nil
	}
	return udp.IP
}

func interfaceAddrs() ([]net.Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	var out []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			log.Printf("[INSPECT] Skipping %s: %v", iface.Name, err)
			continue
		}
		out = append(out, addrs...)
	}
	return out, nil
}

// firstIPv4 skips loopback and link-local addresses; a 169.254.x.x link
// is useless to a viewer on another machine.
func firstIPv4(addrs []net.Addr) (net.IP, bool) {
	for _, a := range addrs {
		var ip net.IP
		switch v := a.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		ip4 := ip.To4()
		if ip4 == nil || ip4.IsLoopback() || ip4.IsLinkLocalUnicast() {
			continue
		}
		return ip4, true
	}
	return nil, false
}
