package tactile

import (
	"context"
	"errors"
	"testing"

	"desknerd/internal/operation"
)

func TestSettingsSetIsNotSupported(t *testing.T) {
	d := NewPlatformSettingsDriver()
	err := d.Set(context.Background(), SettingScreenResolution, "1280x720")
	if err == nil {
		t.Fatal("Set must be unsupported")
	}
	if !errors.Is(err, operation.ErrNotSupported) {
		t.Fatalf("Set error = %v, want ErrNotSupported in chain", err)
	}
}

func TestSettingsGetUnknownSetting(t *testing.T) {
	d := NewPlatformSettingsDriver()
	if _, err := d.Get(context.Background(), "wallpaper"); err == nil {
		t.Fatal("unknown setting must error")
	}
}

func TestKnownSettingsStable(t *testing.T) {
	known := KnownSettings()
	if len(known) != 2 {
		t.Fatalf("known settings = %v", known)
	}
	seen := map[string]bool{}
	for _, s := range known {
		seen[s] = true
	}
	if !seen[SettingScreenResolution] || !seen[SettingOSVersion] {
		t.Fatalf("known settings = %v", known)
	}
}
