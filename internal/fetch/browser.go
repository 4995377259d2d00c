// Package fetch acquires raw price-table rows from the remote sources,
// either through a live headless browser or from saved page snapshots.
package fetch

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"mandi/internal/config"
	"mandi/internal/logger"
)

// Browser manages the Chrome lifecycle for a scrape run: launch (or
// connect to a remote instance), hand out stealth pages, and clean up.
type Browser struct {
	cfg     config.BrowserConfig
	log     *logger.Logger
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewBrowser creates a browser wrapper. Call Start before requesting pages.
func NewBrowser(cfg config.BrowserConfig, log *logger.Logger) *Browser {
	return &Browser{cfg: cfg, log: log}
}

// Start launches Chrome or connects to the configured remote instance.
func (b *Browser) Start() error {
	var wsURL string

	if b.cfg.RemoteURL != "" {
		wsURL = b.cfg.RemoteURL
		b.log.Info("connecting to remote browser", "url", wsURL)
	} else {
		l := launcher.New().Headless(b.cfg.Headless)

		// Anti-detection flags.
		l = l.Set("disable-blink-features", "AutomationControlled")

		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}

		wsURL = u
		b.lnch = l
		b.log.Info("launched local browser", "headless", b.cfg.Headless)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	b.browser = browser

	return nil
}

// NewPage opens a fresh tab with stealth applied and navigates to the URL.
func (b *Browser) NewPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	if b.browser == nil {
		return nil, fmt.Errorf("browser not started")
	}

	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.GetNavTimeout())
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()

		return nil, fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}

	if err := page.Context(navCtx).WaitLoad(); err != nil {
		b.log.Warn("page load wait timed out", "url", pageURL, "error", err)
	}

	return page, nil
}

// PageHTML serialises the full DOM of the page as outer HTML.
func PageHTML(ctx context.Context, page *rod.Page) (string, error) {
	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("failed to read page DOM: %w", err)
	}

	return res.Value.Str(), nil
}

// Close shuts down Chrome and the launcher.
func (b *Browser) Close() {
	if b.browser != nil {
		b.browser.Close()
		b.browser = nil
	}

	if b.lnch != nil {
		b.lnch.Cleanup()
		b.lnch = nil
	}
}
