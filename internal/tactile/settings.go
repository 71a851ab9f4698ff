package tactile

import (
	"context"
	"fmt"

	"desknerd/internal/operation"
)

// Setting names the host can answer queries for. Admission rejects
// anything outside this set before a driver call ever happens.
const (
	SettingScreenResolution = "screen_resolution"
	SettingOSVersion        = "os_version"
)

// KnownSettings is the fixed whitelist of recognized setting names.
func KnownSettings() []string {
	return []string{SettingScreenResolution, SettingOSVersion}
}

// SettingsDriver queries and mutates host settings.
type SettingsDriver interface {
	// Get reads a whitelisted setting and returns structured values.
	Get(ctx context.Context, setting string) (map[string]string, error)
	// Set writes a setting. Currently unsupported for every setting;
	// it always returns operation.ErrNotSupported.
	Set(ctx context.Context, setting, value string) error
}

// PlatformSettingsDriver answers setting queries via platform probes.
type PlatformSettingsDriver struct{}

// NewPlatformSettingsDriver creates a host settings driver.
func NewPlatformSettingsDriver() *PlatformSettingsDriver {
	return &PlatformSettingsDriver{}
}

// Get reads the named setting.
func (d *PlatformSettingsDriver) Get(ctx context.Context, setting string) (map[string]string, error) {
	switch setting {
	case SettingScreenResolution:
		width, height, err := screenResolution(ctx)
		if err != nil {
			return nil, fmt.Errorf("query screen resolution: %w", err)
		}
		return map[string]string{
			"width":  fmt.Sprintf("%d", width),
			"height": fmt.Sprintf("%d", height),
		}, nil
	case SettingOSVersion:
		version, err := osVersion(ctx)
		if err != nil {
			return nil, fmt.Errorf("query os version: %w", err)
		}
		return map[string]string{"version": version}, nil
	default:
		return nil, fmt.Errorf("unrecognized setting %q", setting)
	}
}

// Set is deliberately unimplemented: mutating host settings is a
// capability gap, not a bug. Callers distinguish this from runtime
// failures via errors.Is(err, operation.ErrNotSupported).
func (d *PlatformSettingsDriver) Set(ctx context.Context, setting, value string) error {
	return fmt.Errorf("set %s: %w", setting, operation.ErrNotSupported)
}
