//go:build windows

package tactile

import (
	"context"
	"fmt"
	"os/exec"
)

// platformShell returns the shell binary and its command flag.
func platformShell() (string, string) {
	return "cmd", "/C"
}

// launchApp starts the named application detached via the shell's
// start builtin.
func launchApp(ctx context.Context, appName string) error {
	cmd := exec.Command("cmd", "/C", "start", "", appName)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", appName, err)
	}
	return cmd.Process.Release()
}

// closeApp force-kills the image by name.
func closeApp(ctx context.Context, appName string) error {
	if _, err := runProbe(ctx, "taskkill", "/F", "/IM", appName); err != nil {
		return fmt.Errorf("close %s: %w", appName, err)
	}
	return nil
}

// screenResolution queries the primary video controller.
func screenResolution(ctx context.Context) (int, int, error) {
	out, err := runProbe(ctx, "powershell", "-NoProfile", "-Command",
		"(Get-CimInstance Win32_VideoController | Select-Object -First 1 | ForEach-Object { \"$($_.CurrentHorizontalResolution) x $($_.CurrentVerticalResolution)\" })")
	if err != nil {
		return 0, 0, err
	}
	return parseResolution(out)
}

// osVersion reports the Windows version string.
func osVersion(ctx context.Context) (string, error) {
	return runProbe(ctx, "cmd", "/C", "ver")
}
