package network

import (
	"context"
	"fmt"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// Tunables applied to outbound sockets when they are created
type SocketOptions struct {
	SendBufferBytes int // 0 keeps the kernel default
	MulticastTTL    int // only applied to multicast destinations
}

// Resolves endpoint and opens an unconnected UDP socket of the matching family for sending to it.
// Unconnected sockets never report ICMP errors, so a refused datagram cannot fail a later send.
func OpenUDP(ctx context.Context, endpoint string, opts SocketOptions) (conn *net.UDPConn, destination *net.UDPAddr, err error) {
	destination, err = ResolveUDP(ctx, endpoint)
	if err != nil {
		return
	}

	multicast := destination.IP.IsMulticast()
	ipv6 := destination.IP.To4() == nil

	network, localAddr := "udp4", "0.0.0.0:0"
	if ipv6 {
		network, localAddr = "udp6", "[::]:0"
	}

	// Using x/sys/unix package for more up-to-date syscall numbers
	cfg := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var err error
			ctrlErr := c.Control(func(fd uintptr) {
				if opts.SendBufferBytes > 0 {
					err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, opts.SendBufferBytes)
					if err != nil {
						err = fmt.Errorf("failed setting send buffer size: %w", err)
						return
					}
				}

				if !multicast || opts.MulticastTTL <= 0 {
					return
				}
				if ipv6 {
					err = unix.SetsockoptInt(int(fd), unix.IPPROTO_IPV6, unix.IPV6_MULTICAST_HOPS, opts.MulticastTTL)
				} else {
					err = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_MULTICAST_TTL, opts.MulticastTTL)
				}
				if err != nil {
					err = fmt.Errorf("failed setting multicast ttl: %w", err)
				}
			})
			if ctrlErr != nil {
				return ctrlErr
			}
			return err
		},
	}

	packetConn, err := cfg.ListenPacket(ctx, network, localAddr)
	if err != nil {
		err = fmt.Errorf("failed to open udp socket for %s: %w", destination, err)
		return
	}
	conn = packetConn.(*net.UDPConn)
	return
}

// Creates new TCP listener that tolerates a lingering previous listener on the same address
func ReuseTCPPort(addr string) (conn net.Listener, err error) {
	cfg := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var err error
			c.Control(func(fd uintptr) {
				// Allow port reuse
				err = unix.SetsockoptInt(
					int(fd),
					unix.SOL_SOCKET,
					unix.SO_REUSEADDR,
					1,
				)
			})
			return err
		},
	}

	conn, err = cfg.Listen(context.Background(), "tcp", addr)
	if err != nil {
		err = fmt.Errorf("failed to listen on tcp address %s: %w", addr, err)
		return
	}
	return
}

// Resolves host:port into a single UDP address, preferring IPv4 answers
func ResolveUDP(ctx context.Context, endpoint string) (destination *net.UDPAddr, err error) {
	host, portText, err := net.SplitHostPort(endpoint)
	if err != nil {
		err = fmt.Errorf("invalid destination '%s': %w", endpoint, err)
		return
	}

	port, err := net.DefaultResolver.LookupPort(ctx, "udp", portText)
	if err != nil {
		err = fmt.Errorf("invalid destination port '%s': %w", portText, err)
		return
	}

	ip := net.ParseIP(host)
	if ip == nil {
		var addrs []net.IP
		addrs, err = net.DefaultResolver.LookupIP(ctx, "ip", host)
		if err != nil {
			err = fmt.Errorf("failed to resolve destination host '%s': %w", host, err)
			return
		}
		for _, addr := range addrs {
			if ip == nil || (ip.To4() == nil && addr.To4() != nil) {
				ip = addr
			}
		}
		if ip == nil {
			err = fmt.Errorf("no addresses found for destination host '%s'", host)
			return
		}
	}

	destination = &net.UDPAddr{IP: ip, Port: port}
	return
}
