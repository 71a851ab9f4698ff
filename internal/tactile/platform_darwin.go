//go:build darwin

package tactile

import (
	"context"
	"fmt"
)

// platformShell returns the shell binary and its command flag.
func platformShell() (string, string) {
	return "/bin/sh", "-c"
}

// launchApp starts the named application via Launch Services, which
// detaches it from this process.
func launchApp(ctx context.Context, appName string) error {
	if _, err := runProbe(ctx, "open", "-a", appName); err != nil {
		return fmt.Errorf("launch %s: %w", appName, err)
	}
	return nil
}

// closeApp force-kills processes matching the name.
func closeApp(ctx context.Context, appName string) error {
	if _, err := runProbe(ctx, "pkill", "-9", "-f", appName); err != nil {
		return fmt.Errorf("close %s: %w", appName, err)
	}
	return nil
}

// screenResolution queries the display inventory.
func screenResolution(ctx context.Context) (int, int, error) {
	out, err := runProbe(ctx, "system_profiler", "SPDisplaysDataType")
	if err != nil {
		return 0, 0, err
	}
	return parseResolution(out)
}

// osVersion reports the product version.
func osVersion(ctx context.Context) (string, error) {
	return runProbe(ctx, "sw_vers", "-productVersion")
}
