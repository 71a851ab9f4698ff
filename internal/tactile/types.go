// Package tactile is the host-interaction layer: it physically executes
// shell commands, reads and writes files, launches and kills
// applications, and queries platform settings. It carries no policy —
// admission decisions happen upstream in the pipeline.
package tactile

import (
	"io"
	"time"
)

// Command is the input specification for shell execution.
type Command struct {
	// Line is the shell command line, run through the platform shell.
	Line string `json:"line"`

	// WorkingDirectory is the directory to execute in. Empty means the
	// runner's default.
	WorkingDirectory string `json:"working_directory,omitempty"`

	// Environment variables to set, merged with the runner's allowed
	// pass-through environment.
	Environment map[string]string `json:"environment,omitempty"`

	// TimeoutMs bounds wall time. Zero means the runner's default.
	TimeoutMs int64 `json:"timeout_ms,omitempty"`
}

// ExecutionResult is the comprehensive output of a command run.
type ExecutionResult struct {
	// Success indicates the execution infrastructure worked. A command
	// that ran and returned non-zero still has Success=true.
	Success bool `json:"success"`

	// ExitCode is the command's exit code (-1 when unavailable).
	ExitCode int `json:"exit_code"`

	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	Duration   time.Duration `json:"duration"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`

	// Killed indicates the command was terminated by timeout or
	// cancellation.
	Killed     bool   `json:"killed"`
	KillReason string `json:"kill_reason,omitempty"`

	// Truncated indicates output exceeded the capture cap.
	Truncated      bool  `json:"truncated"`
	TruncatedBytes int64 `json:"truncated_bytes,omitempty"`

	// Error holds the infrastructure-level failure message.
	Error string `json:"error,omitempty"`
}

// limitedWriter caps total bytes written, discarding the excess while
// reporting full writes so the child process never sees a short write.
type limitedWriter struct {
	w         io.Writer
	max       int64
	written   int64
	truncated bool
	discarded int64
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)

	if lw.written >= lw.max {
		lw.truncated = true
		lw.discarded += int64(n)
		return n, nil
	}

	remaining := lw.max - lw.written
	if int64(n) > remaining {
		lw.truncated = true
		lw.discarded += int64(n) - remaining
		written, err := lw.w.Write(p[:remaining])
		lw.written += int64(written)
		return n, err
	}

	written, err := lw.w.Write(p)
	lw.written += int64(written)
	return written, err
}
