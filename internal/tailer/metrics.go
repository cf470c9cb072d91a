package tailer

import (
	"csvcot/internal/metrics"
	"time"
)

func (tailer *Tailer) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	// Read and clear
	lines := tailer.Metrics.LinesScanned.Swap(0)
	positions := tailer.Metrics.PositionsSent.Swap(0)
	removals := tailer.Metrics.RemovalsSent.Swap(0)
	skipped := tailer.Metrics.RowsSkipped.Swap(0)
	encodeFailures := tailer.Metrics.EncodeFailures.Swap(0)
	readFailures := tailer.Metrics.ReadFailures.Swap(0)
	sendFailures := tailer.Metrics.SendFailures.Swap(0)

	// Record read time
	recordTime := time.Now()

	counter := func(name, description string, raw uint64) metrics.Metric {
		return metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   tailer.Namespace,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     "count",
				Interval: interval,
			},
			Type:      metrics.Counter,
			Timestamp: recordTime,
		}
	}

	state := tailer.State()
	cursor := counter("cursor_line", "Index of the next line to emit", uint64(state.LastLine))
	cursor.Type = metrics.Gauge

	collection = []metrics.Metric{
		counter("lines_scanned", "Lines scanned by full-file reads in the interval, the whole file counts on every cycle", lines),
		counter("positions_sent", "Position events sent in the interval", positions),
		counter("removals_sent", "Removal events sent in the interval", removals),
		counter("rows_skipped", "Rows skipped for a column count mismatch", skipped),
		counter("encode_failures", "Rows that could not be turned into an event", encodeFailures),
		counter("read_failures", "Cycles where the file could not be read", readFailures),
		counter("send_failures", "Events dropped by the transport", sendFailures),
		cursor,
	}
	return
}
