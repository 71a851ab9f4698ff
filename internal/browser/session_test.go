package browser

import (
	"context"
	"testing"

	"desknerd/internal/config"
	"desknerd/internal/operation"
)

func TestClickRequiresSelectorXorCoordinates(t *testing.T) {
	m := NewSessionManager(config.DefaultBrowserConfig())
	ctx := context.Background()
	coords := &operation.Coordinates{X: 5, Y: 5}

	if err := m.Click(ctx, "", nil); err == nil {
		t.Fatal("click with neither target must fail")
	}
	if err := m.Click(ctx, "#btn", coords); err == nil {
		t.Fatal("click with both targets must fail")
	}
}

func TestClickWithoutSessionFails(t *testing.T) {
	m := NewSessionManager(config.DefaultBrowserConfig())
	if err := m.Click(context.Background(), "#btn", nil); err == nil {
		t.Fatal("click before any navigation must fail")
	}
}

func TestShutdownWithoutSession(t *testing.T) {
	m := NewSessionManager(config.DefaultBrowserConfig())
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown on idle manager: %v", err)
	}
}
