package net

import (
	"log"
	"net"
)

// OutgoingIP returns the address a share link should carry: the IP the OS
// would route an outbound packet from, determined without sending anything.
// With no route at all, the first non-loopback IPv4 interface wins, and a
// machine with nothing but loopback still gets a usable link.
func OutgoingIP() (string, error) {
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String(), nil
		}
	}
	log.Println("[net] no routable interface, share link will point at loopback")
	return "127.0.0.1", nil
}
