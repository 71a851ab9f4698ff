package tactile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"desknerd/internal/logging"
)

// FileDriver performs file-system reads, writes, and deletes.
type FileDriver interface {
	Read(path string) (string, error)
	Write(path, content string) error
	Delete(path string) error
	// EnsureParent creates the target's parent directory if missing.
	// Idempotent.
	EnsureParent(path string) error
}

// OSFileDriver is the host file-system implementation.
type OSFileDriver struct{}

// NewOSFileDriver creates a host file driver.
func NewOSFileDriver() *OSFileDriver { return &OSFileDriver{} }

// Read loads the file's full content.
func (d *OSFileDriver) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Get(logging.CategoryTactile).Debug("file read failed",
			zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Write ensures the parent directory exists, then writes the content,
// overwriting any existing file.
func (d *OSFileDriver) Write(path, content string) error {
	if err := d.EnsureParent(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logging.Get(logging.CategoryTactile).Debug("file written",
		zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

// Delete removes the path.
func (d *OSFileDriver) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	logging.Get(logging.CategoryTactile).Debug("file deleted", zap.String("path", path))
	return nil
}

// EnsureParent creates missing parent directories for path.
func (d *OSFileDriver) EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create parent %s: %w", dir, err)
	}
	return nil
}
