// Package sysmon implements the resource state monitor that gates
// admission. Sampling is a pure on-demand read: no caching, no internal
// timer — staleness is bounded by how often admission asks.
package sysmon

import (
	"runtime"
	"sync"
	"time"

	"desknerd/internal/config"
	"desknerd/internal/operation"
)

// Counter exposes the lifecycle tracker's in-flight counts.
type Counter interface {
	ActiveCount() int
	QueuedCount() int
}

// Monitor samples CPU and memory utilization and answers whether it is
// safe to admit more work.
type Monitor struct {
	mu      sync.RWMutex
	cfg     config.AdmissionConfig
	counter Counter
}

// NewMonitor creates a monitor over the given counter.
func NewMonitor(cfg config.AdmissionConfig, counter Counter) *Monitor {
	return &Monitor{cfg: cfg, counter: counter}
}

// UpdateConfig swaps admission thresholds (config hot-reload).
func (m *Monitor) UpdateConfig(cfg config.AdmissionConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// Sample recomputes the current system state. Never cached.
func (m *Monitor) Sample() operation.SystemState {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	state := operation.SystemState{
		Resources: operation.ResourceSnapshot{
			CPUPercent:    cpuUtilization(),
			MemoryPercent: memoryUtilization(cfg.MaxTotalMemoryMB),
		},
		LastCheckpoint: time.Now(),
	}
	if m.counter != nil {
		state.ActiveOperations = m.counter.ActiveCount()
		state.QueuedOperations = m.counter.QueuedCount()
	}
	return state
}

// Admit returns a RESOURCE_CONSTRAINT error when CPU or memory
// utilization exceeds the configured thresholds. The gate fails fast:
// operations are never queued waiting for resources.
func (m *Monitor) Admit() error {
	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()

	state := m.Sample()
	if state.Resources.CPUPercent > cfg.CPUThresholdPercent {
		return operation.NewError(operation.CodeResourceConstraint, nil,
			"cpu utilization %.1f%% exceeds %.0f%% threshold",
			state.Resources.CPUPercent, cfg.CPUThresholdPercent)
	}
	if state.Resources.MemoryPercent > cfg.MemoryThresholdPercent {
		return operation.NewError(operation.CodeResourceConstraint, nil,
			"memory utilization %.1f%% exceeds %.0f%% threshold",
			state.Resources.MemoryPercent, cfg.MemoryThresholdPercent)
	}
	return nil
}

// memoryUtilization gates on the stricter of two signals: host-wide
// utilization where the platform exposes it (spawned commands and the
// browser count against capacity), and this process's heap against the
// configured budget.
func memoryUtilization(budgetMB int) float64 {
	heap := heapUtilization(budgetMB)
	if host, ok := hostMemoryPercent(); ok && host > heap {
		return host
	}
	return heap
}

// heapUtilization reports heap usage as a percentage of the configured
// budget.
func heapUtilization(budgetMB int) float64 {
	if budgetMB <= 0 {
		return 0
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	usedMB := float64(ms.Alloc) / 1024 / 1024
	return usedMB / float64(budgetMB) * 100
}

// cpuUtilization estimates instantaneous CPU utilization as
// loadavg / NumCPU * 100 where the platform exposes a load average.
func cpuUtilization() float64 {
	load, ok := loadAverage()
	if !ok {
		return 0
	}
	pct := load / float64(runtime.NumCPU()) * 100
	if pct < 0 {
		return 0
	}
	return pct
}
