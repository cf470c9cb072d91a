package network

import (
	"net"
)

// Headroom reserved for IP options/extension headers plus the UDP header
func transportOverhead(ip net.IP) (overhead int) {
	const ip4Overhead int = 60
	const ip6Overhead int = 80
	const udpOverhead int = 8

	if ip.To4() != nil {
		overhead = ip4Overhead + udpOverhead
	} else {
		overhead = ip6Overhead + udpOverhead
	}
	return
}

// Determines the largest UDP payload that fits a single packet towards destination
func FindSendingMaxUDPPayload(destination net.IP) (maxPayloadSize int, err error) {
	// Default to ethernet standard MTU if no other MTU is found
	const defaultMTU int = 1500

	overhead := transportOverhead(destination)

	ifaces, err := net.Interfaces()
	if err != nil {
		return
	}

	var mtu int
	if destination.IsLoopback() {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 {
				mtu = iface.MTU
				break
			}
		}
	} else {
		// Identify all identical MTUs
		var commonMTU int
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
				continue
			}
			if commonMTU == 0 {
				commonMTU = iface.MTU
			} else if commonMTU != iface.MTU {
				// MTUs are not the same across interfaces
				commonMTU = 0
				break
			}
		}
		mtu = commonMTU
	}

	// Determine MTU by route table if we couldn't find a common one
	if mtu == 0 {
		var iface *net.Interface
		iface, err = getInterfaceForDestination(destination)
		if err != nil {
			return
		}
		mtu = iface.MTU
	}

	// Safety check - assign default
	if mtu <= 0 {
		mtu = defaultMTU
	}

	maxPayloadSize = mtu - overhead
	return
}
