//go:build !linux && !darwin

package sysmon

// loadAverage is unavailable on this platform; admission gates on
// memory utilization only.
func loadAverage() (float64, bool) {
	return 0, false
}

// hostMemoryPercent is unavailable; the monitor falls back to heap
// usage against the configured budget.
func hostMemoryPercent() (float64, bool) {
	return 0, false
}
