package playback

import (
	"context"
	"csvcot/internal/config"
	"csvcot/internal/metrics"
	"csvcot/internal/tailer"
	"csvcot/internal/transport"
	"net/http"
	"sync"
	"time"
)

// Runtime values shared between the console, the driver loop and every tailer.
// mu also guards the progress of every tailer in the table.
type State struct {
	mu          sync.Mutex
	interval    time.Duration
	jumpPending bool // requested by the operator, cleared at the end of a cycle
	jumpLatched bool // set once any file executed a jump, never cleared
	tailers     map[string]*tailer.Tailer
}

type Daemon struct {
	cfg      config.Config
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  chan struct{} // closed once shutdown finished

	State   *State
	Sender  transport.Sender // set before Start to replace the UDP transport
	udp     *transport.UDPSender
	tailers []*tailer.Tailer

	Gatherer     *metrics.Gatherer
	MetricServer *http.Server
}
