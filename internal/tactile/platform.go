package tactile

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// probeTimeout bounds platform query commands (settings reads,
// process kills). These are short-lived host utilities.
const probeTimeout = 10 * time.Second

// runProbe executes a short platform utility and returns trimmed stdout.
func runProbe(ctx context.Context, name string, args ...string) (string, error) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(probeCtx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// resolutionPattern matches "<width> x <height>" with optional spacing,
// covering xdpyinfo ("1920x1080"), system_profiler ("2560 x 1440"),
// and similar probe output.
var resolutionPattern = regexp.MustCompile(`(\d{3,5})\s*x\s*(\d{3,5})`)

// parseResolution extracts the first WxH pair from probe output.
func parseResolution(out string) (int, int, error) {
	m := resolutionPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, 0, fmt.Errorf("no resolution in probe output %q", truncate(out, 120))
	}
	width, _ := strconv.Atoi(m[1])
	height, _ := strconv.Atoi(m[2])
	return width, height, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
