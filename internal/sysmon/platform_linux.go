//go:build linux

package sysmon

import (
	"os"
	"strconv"
	"strings"
)

// loadAverage reads the 1-minute load average from /proc/loadavg.
func loadAverage() (float64, bool) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, false
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, false
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return load, true
}

// hostMemoryPercent reads /proc/meminfo and reports host-wide memory
// utilization, counting everything spawned commands and the browser
// consume, not just this process's heap.
func hostMemoryPercent() (float64, bool) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0, false
	}
	return parseMeminfo(string(data))
}

// parseMeminfo computes (MemTotal - MemAvailable) / MemTotal.
func parseMeminfo(data string) (float64, bool) {
	var totalKB, availKB float64
	for _, line := range strings.Split(data, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			totalKB = v
		case "MemAvailable:":
			availKB = v
		}
	}
	if totalKB <= 0 || availKB <= 0 || availKB > totalKB {
		return 0, false
	}
	return (totalKB - availKB) / totalKB * 100, true
}
