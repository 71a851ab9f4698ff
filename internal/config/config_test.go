package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "desknerd", cfg.Name)
	assert.Equal(t, 90.0, cfg.Admission.CPUThresholdPercent)
	assert.Equal(t, 90.0, cfg.Admission.MemoryThresholdPercent)
	assert.Equal(t, int64(30000), cfg.Execution.DefaultTimeoutMs)
	assert.True(t, cfg.Browser.Headless)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
admission:
  cpu_threshold_percent: 75
  allowed_settings: [os_version]
execution:
  default_timeout_ms: 1000
browser:
  headless: false
logging:
  debug: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75.0, cfg.Admission.CPUThresholdPercent)
	// Untouched keys keep their defaults.
	assert.Equal(t, 90.0, cfg.Admission.MemoryThresholdPercent)
	assert.Equal(t, []string{"os_version"}, cfg.Admission.AllowedSettings)
	assert.Equal(t, int64(1000), cfg.Execution.DefaultTimeoutMs)
	assert.False(t, cfg.Browser.Headless)
	assert.True(t, cfg.Logging.Debug)
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
admission:
  cpu_threshold_percent: 250
`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admission: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DESKNERD_DEBUG", "true")
	t.Setenv("DESKNERD_AUDIT_DB", "/var/lib/desknerd/audit.db")
	t.Setenv("DESKNERD_BROWSER_BIN", "/usr/bin/chromium")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "/var/lib/desknerd/audit.db", cfg.Audit.DatabasePath)
	assert.Equal(t, "/usr/bin/chromium", cfg.Browser.Bin)
}

func TestValidateExecutionTimeout(t *testing.T) {
	cfg := Default()
	cfg.Execution.DefaultTimeoutMs = 0
	assert.Error(t, cfg.Validate())
}
