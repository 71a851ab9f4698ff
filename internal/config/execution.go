package config

// ExecutionConfig configures the command driver.
type ExecutionConfig struct {
	// DefaultTimeoutMs bounds command execution when the operation
	// itself does not carry a timeout.
	DefaultTimeoutMs int64 `yaml:"default_timeout_ms"`

	// MaxTimeoutMs caps any requested timeout.
	MaxTimeoutMs int64 `yaml:"max_timeout_ms"`

	// MaxOutputBytes caps captured stdout+stderr per stream.
	MaxOutputBytes int64 `yaml:"max_output_bytes"`

	// AllowedEnvVars lists environment variables passed through to
	// spawned commands.
	AllowedEnvVars []string `yaml:"allowed_env_vars"`

	// WorkingDirectory is the default working directory.
	WorkingDirectory string `yaml:"working_directory"`
}

// DefaultExecutionConfig returns sensible defaults.
func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		DefaultTimeoutMs: 30000,
		MaxTimeoutMs:     600000,
		MaxOutputBytes:   10 * 1024 * 1024,
		AllowedEnvVars:   []string{"PATH", "HOME", "USER", "LANG", "LC_ALL", "TMPDIR"},
		WorkingDirectory: ".",
	}
}
