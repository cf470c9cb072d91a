// Daemon replaying track files as CoT events on a fixed polling cadence
package playback

import (
	"context"
	"csvcot/internal/config"
	"csvcot/internal/cot"
	"csvcot/internal/global"
	"csvcot/internal/lifecycle"
	"csvcot/internal/logctx"
	"csvcot/internal/metrics"
	"csvcot/internal/metricserver"
	"csvcot/internal/network"
	"csvcot/internal/tailer"
	"csvcot/internal/transport"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Create new playback daemon instance
func NewDaemon(cfg config.Config) (new *Daemon) {
	cfg.SetDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	new = &Daemon{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		State:   NewState(cfg.PollingInterval),
	}
	return
}

// Opens the transport, creates one tailer per file and starts background workers
func (daemon *Daemon) Start(globalCtx context.Context) (err error) {
	// New context for the daemon
	daemon.ctx, daemon.cancel = context.WithCancel(context.Background())
	daemon.ctx = context.WithValue(daemon.ctx, global.LoggerKey, logctx.GetLogger(globalCtx))
	daemon.ctx = logctx.AppendCtxTag(daemon.ctx, global.NSPlayback)

	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Starting...\n")

	if len(daemon.cfg.Files) == 0 {
		err = fmt.Errorf("cannot start without any track files")
		return
	}

	namespace := []string{global.NSPlayback}

	if daemon.Sender == nil {
		daemon.udp, err = transport.NewUDPSender(daemon.ctx, namespace, daemon.cfg.TargetEndpoint(),
			network.SocketOptions{
				SendBufferBytes: daemon.cfg.SendBufferBytes,
				MulticastTTL:    daemon.cfg.MulticastTTL,
			})
		if err != nil {
			err = fmt.Errorf("failed to open udp socket: %w", err)
			return
		}
		daemon.Sender = daemon.udp
	}

	encoder := cot.NewEncoder(daemon.cfg.PositionType, daemon.cfg.RemovalType, daemon.cfg.StaleWindow)

	daemon.tailers = nil
	for index, path := range daemon.cfg.Files {
		tailerCfg := tailer.Config{
			Path:            path,
			DefaultCallsign: daemon.cfg.DefaultCallsign(index),
			Aliases:         daemon.cfg.Aliases,
			RemovalGap:      daemon.cfg.RemovalGap,
			MaxFileBytes:    daemon.cfg.MaxFileBytes,
		}
		fileTailer := daemon.State.Tailer(path, func() *tailer.Tailer {
			return tailer.New(namespace, tailerCfg, encoder, daemon.Sender, daemon.State)
		})
		daemon.tailers = append(daemon.tailers, fileTailer)
	}

	// Metrics Collector
	if daemon.cfg.MetricsEnabled {
		daemon.Gatherer = metrics.NewGatherer(daemon.cfg.MetricCollectionInterval, daemon.cfg.MetricMaxAge)
		if daemon.udp != nil {
			daemon.Gatherer.Register(daemon.udp)
		}
		for _, fileTailer := range daemon.tailers {
			daemon.Gatherer.Register(fileTailer)
		}

		workerCtx := daemon.ctx
		daemon.wg.Add(1)
		go func() {
			defer daemon.wg.Done()
			daemon.Gatherer.Run(workerCtx)
		}()
	}

	// Metric Server
	if daemon.cfg.MetricsEnabled && daemon.cfg.MetricQueryServerEnabled {
		serverCtx := logctx.AppendCtxTag(daemon.ctx, global.NSMetric, global.NSMetricSrv)

		daemon.MetricServer, err = metricserver.SetupListener(serverCtx,
			daemon.cfg.MetricQueryServerPort,
			daemon.Gatherer.Registry.Search,
			daemon.Gatherer.Registry.Discover,
			daemon.Gatherer.Registry.Aggregate)
		if err != nil {
			err = fmt.Errorf("failed to setup metric server: %w", err)
			daemon.Shutdown()
			return
		}
		daemon.wg.Add(1)
		go func() {
			defer daemon.wg.Done()
			metricserver.Start(serverCtx, daemon.MetricServer)
		}()
	}

	daemon.logBanner()

	// Driver loop
	daemon.wg.Add(1)
	go func() {
		defer daemon.wg.Done()
		daemon.loop(daemon.ctx)
	}()

	err = lifecycle.NotifyReady(daemon.ctx)
	if err != nil {
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"Systemd notify ready failed: %v\n", err)
		err = nil
	}

	logctx.LogEvent(daemon.ctx, global.VerbosityProgress, global.InfoLog, "Startup complete.\n")
	return
}

// Startup summary
func (daemon *Daemon) logBanner() {
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"--- GPS CSV to CoT started for %d file(s) ---\n", len(daemon.cfg.Files))
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Target: %s\n", daemon.cfg.TargetEndpoint())
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Polling interval: %s seconds.\n", FormatSeconds(daemon.State.Interval()))
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Default Callsign Base: %s\n", daemon.cfg.CallsignBase)
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Historical playback active. Use \"jump\" to switch to latest rows.\n")
}

// Blocking daemon waiter
func (daemon *Daemon) Run() {
	<-daemon.ctx.Done()
	<-daemon.stopped
}

// Repeats cycles until cancelled, sleeping the interval current at the end of each cycle
func (daemon *Daemon) loop(ctx context.Context) {
	for {
		daemon.Cycle(ctx)

		timer := time.NewTimer(daemon.State.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// Processes every file once, concurrently, and returns when all are done
func (daemon *Daemon) Cycle(ctx context.Context) {
	var cycle sync.WaitGroup
	for _, fileTailer := range daemon.tailers {
		cycle.Add(1)
		go func(fileTailer *tailer.Tailer) {
			defer cycle.Done()
			fileTailer.Process(ctx)
		}(fileTailer)
	}
	cycle.Wait()

	if daemon.State.ClearJump() {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
			"Command jump processed. Tracks in real-time mode.\n")
	}
}

// Requests a jump to the latest rows on the next cycle
func (daemon *Daemon) Jump() {
	daemon.State.RequestJump()
	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog, "jump received\n")
}

// Stops the driver loop and background workers. Later calls are no-ops.
func (daemon *Daemon) Shutdown() {
	daemon.stopOnce.Do(daemon.shutdown)
}

func (daemon *Daemon) shutdown() {
	defer close(daemon.stopped)

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Daemon shutdown started...\n")

	_ = lifecycle.NotifyStopping(daemon.ctx)

	// Stop metric server
	if daemon.MetricServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), global.ShutdownTimeout)
		err := daemon.MetricServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil && err != http.ErrServerClosed {
			logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
				"metric HTTP server did not shutdown gracefully: %v\n", err)
		}
	}

	// Aborts any removal gap in progress
	daemon.cancel()

	// Wait for all workers to finish (with timeout)
	done := make(chan struct{})
	go func() {
		daemon.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(global.ShutdownTimeout):
		logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
			"Timeout: playback daemon did not shutdown within %v seconds\n",
			global.ShutdownTimeout.Seconds())
	}

	if daemon.udp != nil {
		err := daemon.udp.Close()
		if err != nil {
			logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.WarnLog,
				"failed closing udp socket: %v\n", err)
		}
	}

	logctx.LogEvent(daemon.ctx, global.VerbosityStandard, global.InfoLog,
		"Daemon shutdown completed\n")
}
