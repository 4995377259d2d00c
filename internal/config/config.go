// Package config provides configuration management for the mandi price worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"mandi/internal/models"
)

// Configuration validation errors.
var (
	ErrNoCrops            = errors.New("at least one crop is required")
	ErrCropMissingID      = errors.New("crop id is required")
	ErrDuplicateCropID    = errors.New("duplicate crop id")
	ErrCropWithoutSource  = errors.New("crop has neither msamb_val nor commodityonline_id")
	ErrNoLocalMarkets     = errors.New("markets.local must list at least one market")
	ErrDuplicateMarket    = errors.New("duplicate market in markets.local")
	ErrNoRegionNames      = errors.New("markets.region_names must list at least one spelling")
	ErrAliasMissingTarget = errors.New("alias maps to an empty market name")
	ErrMissingSourceURL   = errors.New("source url is required when the source is enabled")
	ErrNoEnabledSources   = errors.New("at least one source must be enabled")
	ErrInvalidTimeout     = errors.New("timeout_sec must be at least 1")
	ErrInvalidSettleDelay = errors.New("settle_sec must be non-negative")
	ErrMissingOutputPath  = errors.New("output.base_path is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingHistoryPath = errors.New("history.path is required when history is enabled")
	ErrInvalidNavTimeout  = errors.New("browser.nav_timeout_sec must be at least 1")
)

// Config is the complete worker configuration: scrape settings plus the
// reference data (crops, canonical markets, aliases) loaded once per run.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Markets MarketsConfig `yaml:"markets"`
	Crops   []models.Crop `yaml:"crops"`
}

// ScraperConfig contains scrape-run settings.
type ScraperConfig struct {
	Sources SourcesConfig `yaml:"sources"`
	Browser BrowserConfig `yaml:"browser"`
	Output  OutputConfig  `yaml:"output"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourcesConfig holds the two page sources.
type SourcesConfig struct {
	MSAMB           SourceConfig `yaml:"msamb"`
	CommodityOnline SourceConfig `yaml:"commodityonline"`
}

// SourceConfig describes one remote price source.
type SourceConfig struct {
	URL        string  `yaml:"url"`
	SettleSec  float64 `yaml:"settle_sec"`
	TimeoutSec int     `yaml:"timeout_sec"`
	Enabled    bool    `yaml:"enabled"`
}

// GetSettleDelay returns the post-navigation settle delay.
func (s *SourceConfig) GetSettleDelay() time.Duration {
	return time.Duration(s.SettleSec * float64(time.Second))
}

// GetTimeout returns the per-page timeout.
func (s *SourceConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// BrowserConfig defines headless browser behavior.
type BrowserConfig struct {
	Headless      bool   `yaml:"headless"`
	RemoteURL     string `yaml:"remote_url"`
	NavTimeoutSec int    `yaml:"nav_timeout_sec"`
}

// GetNavTimeout returns the navigation timeout.
func (b *BrowserConfig) GetNavTimeout() time.Duration {
	return time.Duration(b.NavTimeoutSec) * time.Second
}

// OutputConfig defines dataset persistence behavior.
type OutputConfig struct {
	BasePath     string `yaml:"base_path"`
	SnapshotDir  string `yaml:"snapshot_dir"`
	PrettyPrint  bool   `yaml:"pretty_print"`
	CreateBackup bool   `yaml:"create_backup"`
}

// DatasetPath follows the layout {base_path}/YYYY/MM/crop_prices_YYYY-MM-DD.json.
func (o *OutputConfig) DatasetPath(now time.Time) string {
	name := fmt.Sprintf("crop_prices_%s.json", now.Format("2006-01-02"))

	return filepath.Join(o.BasePath, now.Format("2006"), now.Format("01"), name)
}

// HistoryConfig defines the run history store.
type HistoryConfig struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// MarketsConfig holds the canonical market list, the cross-locale alias
// table, and the accepted in-scope-region spellings.
type MarketsConfig struct {
	// Local is the ordered canonical Marathi market list; containment
	// matching stops at the first hit in this order.
	Local []string `yaml:"local"`
	// Aliases maps normalized English tokens to canonical Marathi names.
	Aliases map[string]string `yaml:"aliases"`
	// RegionNames are accepted spellings of the in-scope state.
	RegionNames []string `yaml:"region_names"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Crops) == 0 {
		return ErrNoCrops
	}

	seen := make(map[string]bool, len(c.Crops))

	for i, crop := range c.Crops {
		if crop.ID == "" {
			return fmt.Errorf("%w: crops[%d]", ErrCropMissingID, i)
		}

		if seen[crop.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateCropID, crop.ID)
		}

		seen[crop.ID] = true

		if crop.MSAMBValue == "" && crop.CommodityOnlineID == "" {
			return fmt.Errorf("%w: %s", ErrCropWithoutSource, crop.ID)
		}
	}

	if len(c.Markets.Local) == 0 {
		return ErrNoLocalMarkets
	}

	seenMarkets := make(map[string]bool, len(c.Markets.Local))

	for _, m := range c.Markets.Local {
		if seenMarkets[m] {
			return fmt.Errorf("%w: %s", ErrDuplicateMarket, m)
		}

		seenMarkets[m] = true
	}

	if len(c.Markets.RegionNames) == 0 {
		return ErrNoRegionNames
	}

	for token, target := range c.Markets.Aliases {
		if target == "" {
			return fmt.Errorf("%w: %s", ErrAliasMissingTarget, token)
		}
	}

	enabled := 0

	for name, src := range map[string]SourceConfig{
		"msamb":           c.Scraper.Sources.MSAMB,
		"commodityonline": c.Scraper.Sources.CommodityOnline,
	} {
		if !src.Enabled {
			continue
		}

		enabled++

		if src.URL == "" {
			return fmt.Errorf("%w: %s", ErrMissingSourceURL, name)
		}

		if src.TimeoutSec < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidTimeout, name)
		}

		if src.SettleSec < 0 {
			return fmt.Errorf("%w: %s", ErrInvalidSettleDelay, name)
		}
	}

	if enabled == 0 {
		return ErrNoEnabledSources
	}

	if c.Scraper.Browser.NavTimeoutSec < 1 {
		return ErrInvalidNavTimeout
	}

	if c.Scraper.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	if c.Scraper.History.Enabled && c.Scraper.History.Path == "" {
		return ErrMissingHistoryPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scraper.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// CropByID returns the configured crop with the given id.
func (c *Config) CropByID(id string) (models.Crop, bool) {
	for _, crop := range c.Crops {
		if crop.ID == id {
			return crop, true
		}
	}

	return models.Crop{}, false
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Crops: %d, LocalMarkets: %d, Aliases: %d, Output: %s}",
		len(c.Crops),
		len(c.Markets.Local),
		len(c.Markets.Aliases),
		c.Scraper.Output.BasePath,
	)
}
