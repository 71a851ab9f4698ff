// Package browser owns the shared browser session used by
// web-navigation operations. At most one live session exists at a time:
// it is created lazily on first use, reused by every subsequent
// operation, and torn down explicitly. Concurrent web operations
// serialize on the session mutex.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"desknerd/internal/config"
	"desknerd/internal/logging"
	"desknerd/internal/operation"
)

// Navigator is the narrow driver interface the web handler depends on.
type Navigator interface {
	// Navigate loads a URL in the shared session and returns page
	// metadata (final url, title).
	Navigate(ctx context.Context, url string) (map[string]string, error)

	// Click clicks by element selector or by viewport coordinates.
	// Exactly one of the two must be provided.
	Click(ctx context.Context, selector string, coords *operation.Coordinates) error
}

// SessionManager owns the single browser instance and its page.
type SessionManager struct {
	cfg config.BrowserConfig

	mu      sync.Mutex
	browser *rod.Browser
	page    *rod.Page
}

// NewSessionManager creates a manager; nothing is launched until the
// first navigation needs it.
func NewSessionManager(cfg config.BrowserConfig) *SessionManager {
	return &SessionManager{cfg: cfg}
}

// ensureSessionLocked connects to or launches the browser and opens the
// shared page. Caller holds mu.
func (m *SessionManager) ensureSessionLocked(ctx context.Context) error {
	if m.page != nil {
		return nil
	}

	log := logging.Get(logging.CategoryBrowser)

	controlURL := m.cfg.DebuggerURL
	if controlURL == "" {
		launch := launcher.New().Headless(m.cfg.Headless)
		if m.cfg.Bin != "" {
			launch = launch.Bin(m.cfg.Bin)
		}
		url, err := launch.Launch()
		if err != nil {
			return fmt.Errorf("launch browser: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             m.cfg.ViewportWidth,
		Height:            m.cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
	}); err != nil {
		log.Warn("set viewport failed", zap.Error(err))
	}

	m.browser = browser
	m.page = page
	log.Info("browser session created",
		zap.Bool("headless", m.cfg.Headless),
		zap.String("control_url", controlURL))
	return nil
}

// Navigate loads the URL with a bounded timeout and waits for the load
// event.
func (m *SessionManager) Navigate(ctx context.Context, url string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureSessionLocked(ctx); err != nil {
		return nil, err
	}

	page := m.page.Context(ctx).Timeout(m.cfg.NavigationTimeout())
	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load %s: %w", url, err)
	}

	values := map[string]string{"url": url}
	if info, err := page.Info(); err == nil {
		values["url"] = info.URL
		values["title"] = info.Title
	}
	logging.Get(logging.CategoryBrowser).Info("navigated", zap.String("url", values["url"]))
	return values, nil
}

// Click clicks by selector or coordinates, mutually exclusive.
func (m *SessionManager) Click(ctx context.Context, selector string, coords *operation.Coordinates) error {
	if (selector == "") == (coords == nil) {
		return errors.New("click requires exactly one of selector or coordinates")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.page == nil {
		return errors.New("no browser session: navigate first")
	}

	page := m.page.Context(ctx).Timeout(m.cfg.NavigationTimeout())

	if selector != "" {
		el, err := page.Element(selector)
		if err != nil {
			return fmt.Errorf("locate %q: %w", selector, err)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("click %q: %w", selector, err)
		}
		logging.Get(logging.CategoryBrowser).Debug("clicked element", zap.String("selector", selector))
		return nil
	}

	if err := page.Mouse.MoveTo(proto.Point{X: coords.X, Y: coords.Y}); err != nil {
		return fmt.Errorf("move to (%.0f,%.0f): %w", coords.X, coords.Y, err)
	}
	if err := page.Mouse.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click at (%.0f,%.0f): %w", coords.X, coords.Y, err)
	}
	logging.Get(logging.CategoryBrowser).Debug("clicked coordinates",
		zap.Float64("x", coords.X), zap.Float64("y", coords.Y))
	return nil
}

// Shutdown tears down the page and browser. Safe to call when no
// session was ever created.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if m.page != nil {
		_ = m.page.Close()
		m.page = nil
	}
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	return err
}
