package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"desknerd/internal/admission"
	"desknerd/internal/audit"
	"desknerd/internal/browser"
	"desknerd/internal/config"
	"desknerd/internal/logging"
	"desknerd/internal/pipeline"
	"desknerd/internal/sysmon"
	"desknerd/internal/tactile"
)

var (
	flagConfig string
	flagDebug  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "desknerd",
		Short:         "Execute typed operations against the local machine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: .desknerd/config.yaml)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(newSubmitCmd())
	root.AddCommand(newStateCmd())
	return root
}

// loadConfig resolves and loads configuration, honoring the --config
// and --debug flags.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if flagDebug {
		cfg.Logging.Debug = true
	}
	return cfg, nil
}

// runtime bundles everything a command needs, plus its teardown.
type runtime struct {
	cfg      config.Config
	pipeline *pipeline.Pipeline
	monitor  *sysmon.Monitor
	session  *browser.SessionManager
	sink     audit.Sink
	watcher  *config.Watcher
}

// buildRuntime wires the full pipeline from configuration and starts
// the config hot-reload watcher.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(cfg.Logging.Debug); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	tracker := pipeline.NewTracker()
	monitor := sysmon.NewMonitor(cfg.Admission, tracker)

	files := tactile.NewOSFileDriver()
	session := browser.NewSessionManager(cfg.Browser)

	executor := &pipeline.Executor{
		Files:    files,
		Apps:     tactile.NewProcessAppDriver(),
		Settings: tactile.NewPlatformSettingsDriver(),
		Commands: tactile.NewShellRunner(cfg.Execution),
		Web:      session,
	}

	validator := admission.NewValidator(monitor, files, cfg.Admission)

	sink, err := audit.NewSink(cfg.Audit.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open audit sink: %w", err)
	}

	rt := &runtime{
		cfg:      cfg,
		pipeline: pipeline.New(pipeline.AllowAll{}, validator, tracker, executor, monitor, sink),
		monitor:  monitor,
		session:  session,
		sink:     sink,
	}

	if flagConfig != "" {
		watcher, err := config.NewWatcher(flagConfig, func(updated config.Config) {
			monitor.UpdateConfig(updated.Admission)
		})
		if err == nil && watcher.Start(ctx) == nil {
			rt.watcher = watcher
		}
	}
	return rt, nil
}

// close tears the runtime down in reverse dependency order.
func (rt *runtime) close() {
	if rt.watcher != nil {
		rt.watcher.Stop()
	}
	_ = rt.session.Shutdown()
	_ = rt.sink.Close()
	logging.Sync()
}
