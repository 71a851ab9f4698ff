//go:build darwin

package sysmon

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// loadAverage reads the 1-minute load average via the vm.loadavg sysctl.
// The kernel returns struct loadavg: three fixed-point uint32 samples,
// then padding, then the 8-byte scale factor at offset 16.
func loadAverage() (float64, bool) {
	raw, err := unix.SysctlRaw("vm.loadavg")
	if err != nil || len(raw) < 24 {
		return 0, false
	}
	sample := binary.LittleEndian.Uint32(raw[0:4])
	scale := binary.LittleEndian.Uint64(raw[16:24])
	if scale == 0 {
		return 0, false
	}
	return float64(sample) / float64(scale), true
}

// hostMemoryPercent has no reliable sysctl answer here (available
// memory needs host_statistics); the monitor falls back to heap usage
// against the configured budget.
func hostMemoryPercent() (float64, bool) {
	return 0, false
}
