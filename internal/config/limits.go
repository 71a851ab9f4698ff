package config

import "fmt"

// AdmissionConfig enforces the resource gate consulted before any
// operation is admitted.
type AdmissionConfig struct {
	// CPUThresholdPercent refuses admission when instantaneous CPU
	// utilization exceeds this value.
	CPUThresholdPercent float64 `yaml:"cpu_threshold_percent"`

	// MemoryThresholdPercent refuses admission when memory utilization
	// exceeds this value.
	MemoryThresholdPercent float64 `yaml:"memory_threshold_percent"`

	// MaxTotalMemoryMB is the memory budget utilization is computed
	// against.
	MaxTotalMemoryMB int `yaml:"max_total_memory_mb"`

	// Settings whitelist for SYSTEM_SETTINGS operations. Empty means
	// use the built-in whitelist.
	AllowedSettings []string `yaml:"allowed_settings,omitempty"`
}

// DefaultAdmissionConfig returns the 90% hard-gate defaults.
func DefaultAdmissionConfig() AdmissionConfig {
	return AdmissionConfig{
		CPUThresholdPercent:    90,
		MemoryThresholdPercent: 90,
		MaxTotalMemoryMB:       4096,
	}
}

// Validate checks admission parameters are within acceptable ranges.
func (a AdmissionConfig) Validate() error {
	if a.CPUThresholdPercent <= 0 || a.CPUThresholdPercent > 100 {
		return fmt.Errorf("admission.cpu_threshold_percent must be in (0,100]")
	}
	if a.MemoryThresholdPercent <= 0 || a.MemoryThresholdPercent > 100 {
		return fmt.Errorf("admission.memory_threshold_percent must be in (0,100]")
	}
	if a.MaxTotalMemoryMB < 256 {
		return fmt.Errorf("admission.max_total_memory_mb must be >= 256")
	}
	return nil
}
