package tactile

import (
	"context"

	"go.uber.org/zap"

	"desknerd/internal/logging"
)

// AppDriver launches and terminates applications by name.
type AppDriver interface {
	// Launch starts the named application as a detached process.
	Launch(ctx context.Context, appName string) error
	// Close forcibly terminates all processes matching the name.
	Close(ctx context.Context, appName string) error
}

// ProcessAppDriver is the host implementation of AppDriver.
type ProcessAppDriver struct{}

// NewProcessAppDriver creates a host app driver.
func NewProcessAppDriver() *ProcessAppDriver { return &ProcessAppDriver{} }

// Launch starts the application detached from this process; the
// application outlives the pipeline.
func (d *ProcessAppDriver) Launch(ctx context.Context, appName string) error {
	log := logging.Get(logging.CategoryTactile)
	if err := launchApp(ctx, appName); err != nil {
		log.Error("app launch failed", zap.String("app", appName), zap.Error(err))
		return err
	}
	log.Info("app launched", zap.String("app", appName))
	return nil
}

// Close kills matching processes by name.
func (d *ProcessAppDriver) Close(ctx context.Context, appName string) error {
	log := logging.Get(logging.CategoryTactile)
	if err := closeApp(ctx, appName); err != nil {
		log.Error("app close failed", zap.String("app", appName), zap.Error(err))
		return err
	}
	log.Info("app closed", zap.String("app", appName))
	return nil
}
