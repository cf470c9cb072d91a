package lifecycle

import (
	"context"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"os"
	"os/signal"
	"syscall"
)

type DaemonLike interface {
	Shutdown()
	Jump()
}

// Handles all incoming signals from external sources.
// SIGUSR1 requests a jump, every other handled signal shuts the daemon down and returns.
func SignalHandler(ctx context.Context, daemon DaemonLike) {
	// Channel for handling interrupt signals
	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGUSR1)
	defer signal.Stop(sigChan)

	handleSignals(ctx, sigChan, daemon)
}

func handleSignals(ctx context.Context, sigChan <-chan os.Signal, daemon DaemonLike) {
	ctx = logctx.AppendCtxTag(ctx, global.NSLifecycle)

	for {
		var sig os.Signal
		select {
		case <-ctx.Done():
			return
		case sig = <-sigChan:
		}
		logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "Received signal: %v\n", sig)

		if sig == syscall.SIGUSR1 {
			daemon.Jump()
			continue
		}

		// Initiate daemon shutdown
		err := NotifyStatus(ctx, "Shutting down after "+sig.String())
		if err != nil {
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"Systemd notify status failed: %v\n", err)
		}
		daemon.Shutdown()

		logger := logctx.GetLogger(ctx)
		if logger != nil {
			logger.Wake()
		}
		return
	}
}
