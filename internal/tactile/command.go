package tactile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	"go.uber.org/zap"

	"desknerd/internal/config"
	"desknerd/internal/logging"
)

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (*ExecutionResult, error)
}

// ShellRunner runs commands through the platform shell with a bounded
// timeout, an environment allowlist, and capped output capture.
type ShellRunner struct {
	cfg config.ExecutionConfig
}

// NewShellRunner creates a runner with the given execution config.
func NewShellRunner(cfg config.ExecutionConfig) *ShellRunner {
	return &ShellRunner{cfg: cfg}
}

// Run executes the command. Infrastructure failures (shell missing,
// spawn error) are reported in the result, not as a returned error;
// a returned error means the request itself was unusable.
func (r *ShellRunner) Run(ctx context.Context, cmd Command) (*ExecutionResult, error) {
	if cmd.Line == "" {
		return nil, errors.New("command line is required")
	}

	log := logging.Get(logging.CategoryTactile)

	timeout := r.timeout(cmd)
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	shell, flag := platformShell()
	execCmd := exec.CommandContext(execCtx, shell, flag, cmd.Line)
	// Orphaned descendants inherit the output pipes and can hold them
	// open long after the shell is killed; bound the post-deadline wait
	// instead of trusting them to exit.
	execCmd.WaitDelay = time.Second
	execCmd.Dir = cmd.WorkingDirectory
	if execCmd.Dir == "" {
		execCmd.Dir = r.cfg.WorkingDirectory
	}
	execCmd.Env = r.buildEnvironment(cmd.Environment)

	maxOutput := r.cfg.MaxOutputBytes
	if maxOutput <= 0 {
		maxOutput = 10 * 1024 * 1024
	}
	var stdoutBuf, stderrBuf bytes.Buffer
	stdoutLimited := &limitedWriter{w: &stdoutBuf, max: maxOutput}
	stderrLimited := &limitedWriter{w: &stderrBuf, max: maxOutput}
	execCmd.Stdout = stdoutLimited
	execCmd.Stderr = stderrLimited

	result := &ExecutionResult{ExitCode: -1}
	result.StartedAt = time.Now()

	log.Debug("executing command",
		zap.String("line", cmd.Line),
		zap.String("dir", execCmd.Dir),
		zap.Duration("timeout", timeout))

	err := execCmd.Run()

	result.FinishedAt = time.Now()
	result.Duration = result.FinishedAt.Sub(result.StartedAt)
	result.Stdout = stdoutBuf.String()
	result.Stderr = stderrBuf.String()

	if stdoutLimited.truncated || stderrLimited.truncated {
		result.Truncated = true
		result.TruncatedBytes = stdoutLimited.discarded + stderrLimited.discarded
		log.Warn("command output truncated", zap.Int64("discarded_bytes", result.TruncatedBytes))
	}

	switch {
	case err == nil:
		result.Success = true
		result.ExitCode = 0
	case execCtx.Err() == context.DeadlineExceeded:
		result.Killed = true
		result.KillReason = fmt.Sprintf("timeout after %s", timeout)
		result.Error = result.KillReason
		log.Warn("command killed", zap.String("reason", result.KillReason))
	case execCtx.Err() == context.Canceled:
		result.Killed = true
		result.KillReason = "context canceled"
		result.Error = result.KillReason
	case errors.Is(err, exec.ErrWaitDelay):
		// The command itself exited cleanly; a descendant kept the
		// pipes open until the grace period closed them.
		result.Success = true
		result.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The command ran; a non-zero exit is not an infrastructure
			// failure.
			result.Success = true
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.Error = err.Error()
			log.Error("command failed to run", zap.Error(err))
		}
	}

	log.Debug("command finished",
		zap.Int("exit_code", result.ExitCode),
		zap.Bool("killed", result.Killed),
		zap.Duration("duration", result.Duration))

	return result, nil
}

func (r *ShellRunner) timeout(cmd Command) time.Duration {
	ms := cmd.TimeoutMs
	if ms <= 0 {
		ms = r.cfg.DefaultTimeoutMs
	}
	if r.cfg.MaxTimeoutMs > 0 && ms > r.cfg.MaxTimeoutMs {
		ms = r.cfg.MaxTimeoutMs
	}
	if ms <= 0 {
		ms = 30000
	}
	return time.Duration(ms) * time.Millisecond
}

// buildEnvironment assembles allowed pass-through variables plus the
// command's own overrides, sorted for deterministic spawns.
func (r *ShellRunner) buildEnvironment(overrides map[string]string) []string {
	env := make([]string, 0, len(r.cfg.AllowedEnvVars)+len(overrides))
	for _, key := range r.cfg.AllowedEnvVars {
		if _, overridden := overrides[key]; overridden {
			continue
		}
		if val := os.Getenv(key); val != "" {
			env = append(env, key+"="+val)
		}
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}
