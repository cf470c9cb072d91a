package metrics

import "time"

// Deletes time slices older than maxAge relative to currentTime, returning how many were dropped
func (registry *Registry) Prune(currentTime time.Time, maxAge time.Duration) (removed int) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for timeSlice := range registry.metrics {
		if currentTime.Sub(timeSlice) > maxAge {
			delete(registry.metrics, timeSlice)
			removed++
		}
	}
	return
}
