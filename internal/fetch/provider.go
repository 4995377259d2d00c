package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"mandi/internal/config"
	"mandi/internal/logger"
	"mandi/internal/models"
	"mandi/internal/parser"
)

// JS selectors on the MSAMB price page. The commodity dropdown drives an
// AJAX reload of the price table behind a loading overlay.
const (
	msambDropdown = "#drpCommodities"
	msambOverlay  = "#OdivCommodity"
)

const overlayPollInterval = 250 * time.Millisecond

// LiveProvider fetches rows from the real sources through a browser.
// The MSAMB page is opened once and reused across crops, matching how
// the dropdown-driven page is meant to be used. The listing site gets a
// fresh tab per crop.
type LiveProvider struct {
	browser     *Browser
	sources     config.SourcesConfig
	snapshotDir string
	log         *logger.Logger

	msambPage *rod.Page
}

// NewLiveProvider creates a provider on a started browser. When
// snapshotDir is non-empty every fetched page is also saved there so the
// run can be replayed offline.
func NewLiveProvider(browser *Browser, sources config.SourcesConfig, snapshotDir string, log *logger.Logger) *LiveProvider {
	return &LiveProvider{
		browser:     browser,
		sources:     sources,
		snapshotDir: snapshotDir,
		log:         log,
	}
}

// PrimaryRows selects the crop in the MSAMB commodity dropdown, waits for
// the table to reload, and returns its rows.
func (p *LiveProvider) PrimaryRows(ctx context.Context, crop models.Crop) ([]models.RawRow, error) {
	src := p.sources.MSAMB
	if !src.Enabled || !crop.HasMSAMB() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, src.GetTimeout())
	defer cancel()

	page, err := p.ensureMSAMBPage(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	if err := p.selectCommodity(ctx, page, crop.MSAMBValue); err != nil {
		return nil, err
	}

	if err := p.waitOverlayGone(ctx, page); err != nil {
		return nil, err
	}

	// Extra buffer so the dynamic table finishes rendering.
	if err := sleepCtx(ctx, src.GetSettleDelay()); err != nil {
		return nil, err
	}

	pageHTML, err := PageHTML(ctx, page)
	if err != nil {
		return nil, err
	}

	p.saveSnapshot("msamb", crop.ID, pageHTML)

	rows, err := parser.MSAMBRows(pageHTML)
	if errors.Is(err, parser.ErrNoPriceTable) {
		p.log.Debug("no price table on msamb page", "crop", crop.ID)

		return nil, nil
	}

	return rows, err
}

// SecondaryRows loads the crop's listing page and returns its table rows.
func (p *LiveProvider) SecondaryRows(ctx context.Context, crop models.Crop) ([]models.RawRow, error) {
	src := p.sources.CommodityOnline
	if !src.Enabled {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, src.GetTimeout())
	defer cancel()

	pageURL := strings.TrimRight(src.URL, "/") + "/mandiprices/" + crop.ListingID()

	page, err := p.browser.NewPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := sleepCtx(ctx, src.GetSettleDelay()); err != nil {
		return nil, err
	}

	pageHTML, err := PageHTML(ctx, page)
	if err != nil {
		return nil, err
	}

	p.saveSnapshot("commodityonline", crop.ID, pageHTML)

	rows, err := parser.ListingRows(pageHTML)
	if errors.Is(err, parser.ErrNoPriceTable) {
		p.log.Debug("no price table on listing page", "crop", crop.ID, "url", pageURL)

		return nil, nil
	}

	return rows, err
}

// Close releases the shared MSAMB tab. The browser itself is owned by the
// caller.
func (p *LiveProvider) Close() {
	if p.msambPage != nil {
		p.msambPage.Close()
		p.msambPage = nil
	}
}

// ensureMSAMBPage opens the MSAMB price page on first use and waits for
// the commodity dropdown to become interactive.
func (p *LiveProvider) ensureMSAMBPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	if p.msambPage != nil {
		return p.msambPage, nil
	}

	page, err := p.browser.NewPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if _, err := page.Context(ctx).Element(msambDropdown); err != nil {
		page.Close()

		return nil, fmt.Errorf("commodity dropdown did not appear: %w", err)
	}

	p.msambPage = page

	return page, nil
}

// selectCommodity sets the dropdown value and fires the change event that
// triggers the table reload.
func (p *LiveProvider) selectCommodity(ctx context.Context, page *rod.Page, value string) error {
	_, err := page.Context(ctx).Eval(`(val) => {
		const sel = document.querySelector('`+msambDropdown+`');
		sel.value = val;
		sel.dispatchEvent(new Event('change', { bubbles: true }));
	}`, value)
	if err != nil {
		return fmt.Errorf("failed to select commodity %q: %w", value, err)
	}

	return nil
}

// waitOverlayGone polls until the loading overlay is hidden or removed.
func (p *LiveProvider) waitOverlayGone(ctx context.Context, page *rod.Page) error {
	for {
		res, err := page.Context(ctx).Eval(`() => {
			const el = document.querySelector('` + msambOverlay + `');
			return !el || el.offsetParent === null;
		}`)
		if err != nil {
			return fmt.Errorf("failed to check loading overlay: %w", err)
		}

		if res.Value.Bool() {
			return nil
		}

		if err := sleepCtx(ctx, overlayPollInterval); err != nil {
			return fmt.Errorf("loading overlay never cleared: %w", err)
		}
	}
}

// saveSnapshot writes the raw page HTML for offline replay. Failures are
// logged and ignored so snapshotting never breaks a live run.
func (p *LiveProvider) saveSnapshot(source, cropID, pageHTML string) {
	if p.snapshotDir == "" {
		return
	}

	if err := os.MkdirAll(p.snapshotDir, 0755); err != nil {
		p.log.Warn("failed to create snapshot directory", "error", err)

		return
	}

	path := filepath.Join(p.snapshotDir, fmt.Sprintf("%s_%s.html", source, cropID))
	if err := os.WriteFile(path, []byte(pageHTML), 0644); err != nil {
		p.log.Warn("failed to save snapshot", "path", path, "error", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
