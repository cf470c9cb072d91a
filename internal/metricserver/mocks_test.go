package metricserver

import (
	"csvcot/internal/metrics"
	"time"
)

type searchCall struct {
	name      string
	namespace []string
	start     time.Time
	end       time.Time
}

func mockDiscoverer(results []metrics.Metric) Discoverer {
	return func(name, desc string, ns []string, unit string, mt metrics.MetricType) []metrics.Metric {
		return results
	}
}

func mockDataSearcher(results []metrics.Metric, calls *[]searchCall) DataSearcher {
	return func(name string, ns []string, start, end time.Time) []metrics.Metric {
		if calls != nil {
			*calls = append(*calls, searchCall{name: name, namespace: ns, start: start, end: end})
		}
		return results
	}
}

func mockAggSearcher(result metrics.Metric, err error) AggSearcher {
	return func(agg, name string, ns []string, start, end time.Time) (metrics.Metric, error) {
		return result, err
	}
}
