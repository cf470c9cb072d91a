package network

import (
	"fmt"
	"net"
)

// Determines the interface used to reach a given destination address
func getInterfaceForDestination(destination net.IP) (iface *net.Interface, err error) {
	// Quick dial to see what source interface the system would use
	conn, dialErr := net.DialUDP("udp", nil, &net.UDPAddr{IP: destination, Port: 9})
	if dialErr != nil {
		err = fmt.Errorf("failed to find interface for destination %s: %w", destination, dialErr)
		return
	}
	defer conn.Close()

	// Get the interface for the local half of the connection
	localAddr := conn.LocalAddr().(*net.UDPAddr)
	iface, err = getInterfaceForAddress(localAddr.IP)
	return
}
