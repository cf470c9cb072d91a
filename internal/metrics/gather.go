package metrics

import (
	"context"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"runtime/debug"
	"time"
)

func NewGatherer(interval time.Duration, retention time.Duration) (new *Gatherer) {
	if interval <= 0 {
		interval = global.DefaultMetricInterval
	}
	if retention <= 0 {
		retention = global.DefaultMetricRetention
	}
	new = &Gatherer{
		Registry:  New(),
		Interval:  interval,
		Retention: retention,
	}
	return
}

// Registers a source to read from on every interval
func (gatherer *Gatherer) Register(source Collector) {
	gatherer.mu.Lock()
	defer gatherer.mu.Unlock()
	gatherer.sources = append(gatherer.sources, source)
}

func (gatherer *Gatherer) Run(ctx context.Context) {
	ctx = logctx.AppendCtxTag(ctx, global.NSMetric)

	// Tracking last interval run time
	lastRun := time.Now()

	ticker := time.NewTicker(gatherer.Interval / 2) // Use polling interval half of desired record interval
	defer ticker.Stop()

	// Counter to track how many ticks have passed (for retention)
	var tickCount int

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if now.Sub(lastRun) >= gatherer.Interval {
				timeSlice := gatherer.Registry.NewTimeSlice(now, gatherer.Interval)
				lastRun = now
				gatherer.Collect(ctx, timeSlice)
			}

			tickCount++
			if tickCount >= 30 {
				removed := gatherer.Registry.Prune(now, gatherer.Retention)
				if removed > 0 {
					logctx.LogEvent(ctx, global.VerbosityDebug, global.InfoLog,
						"Pruned %d expired metric intervals\n", removed)
				}
				tickCount = 0
			}
		}
	}
}

// Reads every registered source into the given time slice
func (gatherer *Gatherer) Collect(ctx context.Context, timeSlice time.Time) {
	// Record panics and continue on next interval
	defer func() {
		if fatalError := recover(); fatalError != nil {
			stack := debug.Stack()
			logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
				"panic in metric collector thread: %v\n%s", fatalError, stack)
		}
	}()

	gatherer.mu.Lock()
	sources := append([]Collector(nil), gatherer.sources...)
	gatherer.mu.Unlock()

	for _, source := range sources {
		gatherer.Registry.Add(timeSlice, source.CollectMetrics(gatherer.Interval))
	}
}
