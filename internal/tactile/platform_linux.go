//go:build linux

package tactile

import (
	"context"
	"fmt"
	"os/exec"
)

// platformShell returns the shell binary and its command flag.
func platformShell() (string, string) {
	return "/bin/sh", "-c"
}

// launchApp starts the named application detached from this process.
func launchApp(ctx context.Context, appName string) error {
	cmd := exec.Command(appName)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", appName, err)
	}
	// Detach: the application must outlive the pipeline process.
	return cmd.Process.Release()
}

// closeApp force-kills processes matching the name.
func closeApp(ctx context.Context, appName string) error {
	if _, err := runProbe(ctx, "pkill", "-9", "-f", appName); err != nil {
		return fmt.Errorf("close %s: %w", appName, err)
	}
	return nil
}

// screenResolution queries the X display geometry.
func screenResolution(ctx context.Context) (int, int, error) {
	out, err := runProbe(ctx, "xdpyinfo")
	if err != nil {
		// Wayland or headless hosts often only have xrandr.
		out, err = runProbe(ctx, "xrandr", "--current")
		if err != nil {
			return 0, 0, err
		}
	}
	return parseResolution(out)
}

// osVersion reports kernel name and release.
func osVersion(ctx context.Context) (string, error) {
	return runProbe(ctx, "uname", "-sr")
}
