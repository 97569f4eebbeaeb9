// Package memory samples process-wide memory counters for checkpoint capture.
package memory

import "runtime"

// Sample returns the current live heap usage and the peak amount of memory
// obtained from the OS, both in bytes. The counters are process-wide and may
// race with concurrent allocation in other goroutines; callers treat that as
// measurement noise.
func Sample() (usage, peak int64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc), int64(m.Sys)
}
