// Sends encoded events as single UDP datagrams
package transport

import (
	"context"
	"csvcot/internal/atomics"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"csvcot/internal/network"
	"fmt"
	"net"
)

// Opens the outbound socket towards endpoint (host:port)
func NewUDPSender(ctx context.Context, namespace []string, endpoint string, opts network.SocketOptions) (sender *UDPSender, err error) {
	conn, destination, err := network.OpenUDP(ctx, endpoint, opts)
	if err != nil {
		return
	}

	sender = &UDPSender{
		Namespace:   append(append([]string(nil), namespace...), global.NSTransport),
		conn:        conn,
		destination: destination,
		Metrics:     &MetricStorage{},
	}

	sender.maxPayload, err = network.FindSendingMaxUDPPayload(destination.IP)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
			"Unable to determine maximum datagram size towards %s: %v\n", destination, err)
		sender.maxPayload = 0
		err = nil
	}
	return
}

// Writes payload as one datagram. Errors are logged and returned, never retried.
func (sender *UDPSender) Send(ctx context.Context, payload []byte) (err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	size := uint64(len(payload))
	if sender.maxPayload > 0 && len(payload) > sender.maxPayload {
		sender.Metrics.Oversized.Add(1)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
			"Event of %d bytes exceeds single packet payload of %d bytes, relying on IP fragmentation\n",
			len(payload), sender.maxPayload)
	}

	_, err = sender.conn.WriteToUDP(payload, sender.destination)
	if err != nil {
		sender.Metrics.Failures.Add(1)
		err = fmt.Errorf("failed to send datagram to %s: %w", sender.destination, err)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "%v\n", err)
		return
	}

	sender.Metrics.TotalDatagrams.Add(1)
	sender.Metrics.SumBytes.Add(size)
	atomics.StoreMax(&sender.Metrics.MaxBytes, size)

	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog,
		"Sent datagram (size %d) to %s\n", len(payload), sender.destination)
	logctx.LogEvent(ctx, global.VerbosityFullData, global.InfoLog,
		"Datagram body:\n%s\n", payload)
	return
}

// Address every datagram is sent to
func (sender *UDPSender) Destination() (addr *net.UDPAddr) {
	addr = sender.destination
	return
}

func (sender *UDPSender) Close() (err error) {
	err = sender.conn.Close()
	return
}
