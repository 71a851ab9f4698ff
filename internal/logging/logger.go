// Package logging provides categorized structured logging for deskNERD.
// Every subsystem logs through a named zap logger so log output can be
// filtered per category.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem. Loggers are zap.Named with the category.
type Category string

const (
	CategoryPipeline  Category = "pipeline"  // operation lifecycle, dispatch
	CategoryAdmission Category = "admission" // validation decisions
	CategorySysmon    Category = "sysmon"    // resource snapshots
	CategoryTactile   Category = "tactile"   // command/file/app/settings drivers
	CategoryBrowser   Category = "browser"   // browser session and navigation
	CategoryAudit     Category = "audit"     // audit sink
	CategoryConfig    Category = "config"    // config load/reload
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	loggers = make(map[Category]*zap.Logger)
)

// Initialize installs the root logger. debug enables development
// encoding and debug-level output; otherwise production JSON at info.
func Initialize(debug bool) error {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	SetRoot(logger)
	return nil
}

// SetRoot replaces the root logger. Tests use this to install observers.
func SetRoot(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = logger
	loggers = make(map[Category]*zap.Logger)
}

// Get returns the logger for a category.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[cat]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[cat]; ok {
		return l
	}
	l := root.Named(string(cat))
	loggers[cat] = l
	return l
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}
