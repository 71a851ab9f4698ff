package config

import "time"

// BrowserConfig configures the shared browser session.
type BrowserConfig struct {
	// Bin is the browser binary to launch. Empty means let the
	// launcher find one.
	Bin string `yaml:"bin,omitempty"`

	// DebuggerURL attaches to an already-running browser instead of
	// launching one.
	DebuggerURL string `yaml:"debugger_url,omitempty"`

	Headless            bool `yaml:"headless"`
	ViewportWidth       int  `yaml:"viewport_width"`
	ViewportHeight      int  `yaml:"viewport_height"`
	NavigationTimeoutMs int  `yaml:"navigation_timeout_ms"`
}

// DefaultBrowserConfig returns sensible defaults.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:            true,
		ViewportWidth:       1920,
		ViewportHeight:      1080,
		NavigationTimeoutMs: 30000,
	}
}

// NavigationTimeout returns the navigation timeout as a duration.
func (c BrowserConfig) NavigationTimeout() time.Duration {
	if c.NavigationTimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}
