//go:build !windows

package tactile

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"desknerd/internal/config"
)

func testExecConfig() config.ExecutionConfig {
	cfg := config.DefaultExecutionConfig()
	cfg.DefaultTimeoutMs = 5000
	return cfg
}

func TestRunCapturesStdout(t *testing.T) {
	r := NewShellRunner(testExecConfig())
	res, err := r.Run(context.Background(), Command{Line: "echo hello"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", res.ExitCode)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Fatalf("stdout = %q, want hello", res.Stdout)
	}
}

func TestRunNonZeroExitIsNotFailure(t *testing.T) {
	r := NewShellRunner(testExecConfig())
	res, err := r.Run(context.Background(), Command{Line: "exit 3"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Success {
		t.Fatal("command ran to completion, Success must be true")
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", res.ExitCode)
	}
}

func TestRunTimeoutKills(t *testing.T) {
	r := NewShellRunner(testExecConfig())
	start := time.Now()
	res, err := r.Run(context.Background(), Command{Line: "sleep 10", TimeoutMs: 100})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 100ms deadline plus the 1s pipe-close grace; anything near the
	// sleep's natural lifetime means the wait was unbounded.
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("timeout did not bound execution, took %s", elapsed)
	}
	if !res.Killed {
		t.Fatal("expected Killed=true")
	}
	if res.Success {
		t.Fatal("killed command must not be Success")
	}
	if !strings.Contains(res.KillReason, "timeout") {
		t.Fatalf("kill reason = %q, want timeout", res.KillReason)
	}
}

func TestRunOrphanedChildDoesNotBlock(t *testing.T) {
	r := NewShellRunner(testExecConfig())
	start := time.Now()

	// The backgrounded sleep outlives the shell and keeps the output
	// pipes open; Run must not wait for it.
	res, err := r.Run(context.Background(), Command{Line: "sleep 30 & echo bg"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("orphaned child held Run for %s", elapsed)
	}
	if !res.Success {
		t.Fatalf("shell exited cleanly, got error %q", res.Error)
	}
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(res.Stdout, "bg") {
		t.Fatalf("stdout = %q, want output captured before the pipes closed", res.Stdout)
	}
}

func TestRunRequiresCommandLine(t *testing.T) {
	r := NewShellRunner(testExecConfig())
	if _, err := r.Run(context.Background(), Command{}); err == nil {
		t.Fatal("empty command line must be rejected")
	}
}

func TestRunEnvironmentAllowlist(t *testing.T) {
	t.Setenv("SECRET_TOKEN", "hunter2")

	r := NewShellRunner(testExecConfig())
	res, err := r.Run(context.Background(), Command{Line: "env"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(res.Stdout, "SECRET_TOKEN") {
		t.Fatal("non-allowlisted variable leaked into the command environment")
	}
}

func TestRunEnvironmentOverrides(t *testing.T) {
	r := NewShellRunner(testExecConfig())
	res, err := r.Run(context.Background(), Command{
		Line:        "echo $DESKNERD_TEST_VAR",
		Environment: map[string]string{"DESKNERD_TEST_VAR": "wired"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "wired" {
		t.Fatalf("stdout = %q, want wired", res.Stdout)
	}
}

func TestRunOutputTruncation(t *testing.T) {
	cfg := testExecConfig()
	cfg.MaxOutputBytes = 64
	r := NewShellRunner(cfg)

	res, err := r.Run(context.Background(), Command{Line: "yes x | head -c 4096"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Truncated {
		t.Fatal("expected output truncation")
	}
	if int64(len(res.Stdout)) > 64 {
		t.Fatalf("captured %d bytes, cap is 64", len(res.Stdout))
	}
	if res.TruncatedBytes <= 0 {
		t.Fatal("expected discarded byte count")
	}
}

func TestLimitedWriterReportsFullWrites(t *testing.T) {
	var buf bytes.Buffer
	lw := &limitedWriter{w: &buf, max: 5}

	n, err := lw.Write([]byte("abcdefgh"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 8 {
		t.Fatalf("reported %d bytes, want 8 (full write)", n)
	}
	if buf.String() != "abcde" {
		t.Fatalf("captured %q, want abcde", buf.String())
	}
	if !lw.truncated || lw.discarded != 3 {
		t.Fatalf("truncated=%v discarded=%d, want true/3", lw.truncated, lw.discarded)
	}

	n, _ = lw.Write([]byte("more"))
	if n != 4 {
		t.Fatalf("post-cap write reported %d, want 4", n)
	}
	if buf.String() != "abcde" {
		t.Fatal("post-cap write must not reach the buffer")
	}
}
