package metrics

import (
	"sort"
	"strings"
	"time"
)

// Reports whether metricNS starts with queryNS. An empty query matches every namespace.
func matchesNamespace(metricNS, queryNS []string) (matches bool) {
	if len(metricNS) < len(queryNS) {
		return
	}
	for i := range queryNS {
		if metricNS[i] != queryNS[i] {
			return
		}
	}
	matches = true
	return
}

// Time slices inside the window, oldest first. Zero start or end leaves that side open.
func (registry *Registry) slicesInWindow(start, end time.Time) (timestamps []time.Time) {
	for ts := range registry.metrics {
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})
	return
}

// Map keys in lexical order
func sortedKeys[V any](m map[string]V) (keys []string) {
	keys = make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}

// Samples of the named metric under the namespace prefix within start/end.
// Empty name returns every metric. Results are ordered by time, then namespace, then name.
func (registry *Registry) Search(name string, namespacePrefix []string, start, end time.Time) (results []Metric) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, ts := range registry.slicesInWindow(start, end) {
		slice := registry.metrics[ts]
		for _, nsStr := range sortedKeys(slice) {
			if !matchesNamespace(strings.Split(nsStr, "/"), namespacePrefix) {
				continue
			}

			if name != "" {
				metric, ok := slice[nsStr][name]
				if ok {
					results = append(results, metric)
				}
				continue
			}
			for _, metricName := range sortedKeys(slice[nsStr]) {
				results = append(results, slice[nsStr][metricName])
			}
		}
	}
	return
}

// Distinct metrics (values and timestamps stripped) matching every non-empty filter.
// Name and description match on substrings; unit and type must be equal.
func (registry *Registry) Discover(name, description string, namespacePrefix []string, unit string, metricType MetricType) (results []Metric) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	seen := make(map[string]Metric)
	for _, slice := range registry.metrics {
		for nsStr, named := range slice {
			if !matchesNamespace(strings.Split(nsStr, "/"), namespacePrefix) {
				continue
			}

			for _, metric := range named {
				if name != "" && !strings.Contains(metric.Name, name) {
					continue
				}
				if description != "" && !strings.Contains(metric.Description, description) {
					continue
				}
				if unit != "" && metric.Value.Unit != unit {
					continue
				}
				if metricType != "" && metric.Type != metricType {
					continue
				}

				key := nsStr + "|" + metric.Name + "|" + string(metric.Type) + "|" + metric.Value.Unit
				if _, exists := seen[key]; exists {
					continue
				}
				seen[key] = Metric{
					Name:        metric.Name,
					Description: metric.Description,
					Namespace:   metric.Namespace,
					Type:        metric.Type,
					Value:       MetricValue{Unit: metric.Value.Unit},
				}
			}
		}
	}

	results = make([]Metric, 0, len(seen))
	for _, key := range sortedKeys(seen) {
		results = append(results, seen[key])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return
}
