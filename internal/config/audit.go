package config

// AuditConfig configures the audit/telemetry sink.
type AuditConfig struct {
	// DatabasePath is the SQLite file audit records persist to.
	// Empty disables the persistent sink (log-only).
	DatabasePath string `yaml:"database_path,omitempty"`
}

// DefaultAuditConfig returns defaults (log-only sink).
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{}
}
