package transport

import (
	"context"
	"net"
	"sync/atomic"
)

// Delivers one encoded event to the destination
type Sender interface {
	Send(ctx context.Context, payload []byte) (err error)
}

// Fire-and-forget datagram sender. The socket is unconnected, each event is addressed to destination.
type UDPSender struct {
	Namespace   []string
	conn        *net.UDPConn
	destination *net.UDPAddr
	maxPayload  int // 0 when unknown
	Metrics     *MetricStorage
}

type MetricStorage struct {
	TotalDatagrams atomic.Uint64
	SumBytes       atomic.Uint64
	MaxBytes       atomic.Uint64
	Failures       atomic.Uint64
	Oversized      atomic.Uint64
}
