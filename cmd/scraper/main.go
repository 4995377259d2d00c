// Package main provides the live scraper command: fetch both price
// sources in a headless browser, reconcile them per crop, and write the
// daily dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"mandi/internal/config"
	"mandi/internal/fetch"
	"mandi/internal/logger"
	"mandi/internal/models"
	"mandi/internal/persist"
	"mandi/internal/reconcile"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (built-in defaults when empty)")
	outputPath := flag.String("output", "", "Dataset output path (dated default path when empty)")
	snapshotDir := flag.String("snapshots", "", "Directory to save raw page snapshots (overrides config)")
	headful := flag.Bool("headful", false, "Run the browser with a visible window")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
		os.Exit(1)
	}

	if *snapshotDir != "" {
		cfg.Scraper.Output.SnapshotDir = *snapshotDir
	}

	if *headful {
		cfg.Scraper.Browser.Headless = false
	}

	log := logger.NewLogger(cfg.Scraper.Logging.Level)
	if cfg.Scraper.Logging.ShowProgress {
		log.EnableProgress()
	}

	log.Progressf("🚀 Starting Mandi Price Scraper")
	log.Progressf("📍 Crops: %d, local markets: %d", len(cfg.Crops), len(cfg.Markets.Local))

	startTime := time.Now()
	ctx := context.Background()

	// Phase 1: browser and source setup.
	log.Progressf("Phase 1: Launching browser...")

	browser := fetch.NewBrowser(cfg.Scraper.Browser, log)
	if err := browser.Start(); err != nil {
		log.Error(fmt.Sprintf("❌ Browser start failed: %v", err))
		os.Exit(1)
	}
	defer browser.Close()

	provider := fetch.NewLiveProvider(browser, cfg.Scraper.Sources, cfg.Scraper.Output.SnapshotDir, log)
	defer provider.Close()

	// Phase 2: fetch and reconcile every crop.
	log.Progressf("Phase 2: Fetching and reconciling...")

	matcher := reconcile.NewMatcher(cfg.Markets.Local, cfg.Markets.Aliases, cfg.Markets.RegionNames)
	assembler := reconcile.NewAssembler(cfg.Crops, matcher, provider, log)

	dataset := assembler.Assemble(ctx)

	validation := reconcile.ValidateDataset(dataset, cfg.Crops)
	validation.PrintWarnings()

	if !validation.IsValid {
		validation.PrintErrors()
		log.Error("❌ Dataset failed validation")
		os.Exit(1)
	}

	// Phase 3: persist.
	log.Progressf("Phase 3: Writing dataset...")

	writer := persist.NewWriter(cfg.Scraper.Output)

	written, err := writer.Write(dataset, *outputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Write failed: %v", err))
		os.Exit(1)
	}

	if cfg.Scraper.History.Enabled {
		if err := recordHistory(ctx, cfg.Scraper.History.Path, dataset, written); err != nil {
			log.Warn(fmt.Sprintf("⚠️  History not recorded: %v", err))
		}
	}

	log.Progressf("✨ Scrape Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Summary Report\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Crops with data: %d/%d\n", dataset.CropsWithData(), len(dataset.Crops))
	fmt.Printf("Local entries: %d\n", dataset.LocalEntries())
	fmt.Printf("Outstate entries: %d\n", dataset.OutstateEntries())
	fmt.Printf("Output: %s\n", written)
	fmt.Printf("Total Duration: %v\n", time.Since(startTime).Round(time.Second))
	fmt.Println("------------------------------------------------")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadConfig(path)
}

func recordHistory(ctx context.Context, dbPath string, dataset *models.Dataset, written string) error {
	store, err := persist.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(ctx, dataset, written)
}
