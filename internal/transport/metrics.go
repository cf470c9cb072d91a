package transport

import (
	"csvcot/internal/metrics"
	"time"
)

func (sender *UDPSender) CollectMetrics(interval time.Duration) (collection []metrics.Metric) {
	// Read and clear
	totalDatagrams := sender.Metrics.TotalDatagrams.Swap(0)
	sumBytes := sender.Metrics.SumBytes.Swap(0)
	maxBytes := sender.Metrics.MaxBytes.Swap(0)
	failures := sender.Metrics.Failures.Swap(0)
	oversized := sender.Metrics.Oversized.Swap(0)

	// Record read time
	recordTime := time.Now()

	var avgBytes uint64
	if totalDatagrams > 0 {
		avgBytes = sumBytes / totalDatagrams
	}

	gauge := func(name, description, unit string, raw uint64) metrics.Metric {
		return metrics.Metric{
			Name:        name,
			Description: description,
			Namespace:   sender.Namespace,
			Value: metrics.MetricValue{
				Raw:      raw,
				Unit:     unit,
				Interval: interval,
			},
			Type:      metrics.Gauge,
			Timestamp: recordTime,
		}
	}

	collection = []metrics.Metric{
		gauge("datagrams_sent", "Total datagrams sent in the interval", "count", totalDatagrams),
		gauge("bytes_sent", "Total size of all datagrams sent in the interval", "bytes", sumBytes),
		gauge("maximum_datagram_size", "Largest datagram sent in the interval", "bytes", maxBytes),
		gauge("send_failures", "Datagrams dropped because the socket write failed", "count", failures),
		gauge("oversized_datagrams", "Datagrams larger than a single packet payload", "count", oversized),
	}
	avg := gauge("average_datagram_size", "Average size across all datagrams sent in the interval", "bytes", avgBytes)
	avg.Type = metrics.Summary
	collection = append(collection, avg)
	return
}
