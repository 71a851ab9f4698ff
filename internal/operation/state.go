package operation

import "time"

// ValidationError is a single structural validation failure.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ValidationResult is the pure, side-effect-free output of the admission
// validator. It never mutates the operation it describes. A result is
// fully valid or carries at least one error.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Invalidate appends an error and marks the result invalid.
func (r *ValidationResult) Invalidate(code ErrorCode, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message})
}

// First returns the first validation error, or nil when valid.
func (r *ValidationResult) First() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ResourceSnapshot holds instantaneous utilization percentages (0-100).
type ResourceSnapshot struct {
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	DiskPercent    float64 `json:"disk_percent"`
	NetworkPercent float64 `json:"network_percent"`
}

// SystemState is the on-demand resource snapshot consumed by admission.
// It is recomputed each time admission is evaluated and never persisted;
// staleness is bounded by call frequency.
type SystemState struct {
	Resources        ResourceSnapshot `json:"resources"`
	ActiveOperations int              `json:"active_operations"`
	QueuedOperations int              `json:"queued_operations"`
	LastCheckpoint   time.Time        `json:"last_checkpoint"`
}
