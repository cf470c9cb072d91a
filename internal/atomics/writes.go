// Helper functions for atomic counters shared between goroutines
package atomics

import "sync/atomic"

// Raises value to candidate when candidate is larger. Retries until no other writer interferes.
func StoreMax(value *atomic.Uint64, candidate uint64) (raised bool) {
	for {
		current := value.Load()
		if candidate <= current {
			return
		}
		// CAS will only succeed if the value has not changed since we last read it.
		if value.CompareAndSwap(current, candidate) {
			raised = true
			return
		}
	}
}
