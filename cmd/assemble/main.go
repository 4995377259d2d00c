// Package main provides the offline assemble command: rebuild a dataset
// from page snapshots saved by a previous scrape, with no browser.
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
	"mandi/internal/persist"
	"mandi/internal/reconcile"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (built-in defaults when empty)")
	snapshotDir := flag.String("snapshots", "", "Directory of saved page snapshots")
	outputPath := flag.String("output", "", "Dataset output path (dated default path when empty)")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)

	if *configPath == "" {
		cfg = config.Default()
	} else if cfg, err = config.LoadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
		os.Exit(1)
	}

	if *snapshotDir == "" {
		*snapshotDir = cfg.Scraper.Output.SnapshotDir
	}

	if *snapshotDir == "" {
		fmt.Fprintln(os.Stderr, "❌ Please provide a snapshot directory with -snapshots")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Scraper.Logging.Level)
	if cfg.Scraper.Logging.ShowProgress {
		log.EnableProgress()
	}

	log.Progressf("🚀 Assembling dataset from snapshots")
	log.Progressf("📍 Snapshots: %s", *snapshotDir)

	startTime := time.Now()

	matcher := reconcile.NewMatcher(cfg.Markets.Local, cfg.Markets.Aliases, cfg.Markets.RegionNames)
	provider := fetch.NewSnapshotProvider(*snapshotDir)
	assembler := reconcile.NewAssembler(cfg.Crops, matcher, provider, log)

	dataset := assembler.Assemble(context.Background())

	validation := reconcile.ValidateDataset(dataset, cfg.Crops)
	validation.PrintWarnings()

	if !validation.IsValid {
		validation.PrintErrors()
		log.Error("❌ Dataset failed validation")
		os.Exit(1)
	}

	writer := persist.NewWriter(cfg.Scraper.Output)

	written, err := writer.Write(dataset, *outputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Write failed: %v", err))
		os.Exit(1)
	}

	log.Progressf("✨ Assembly Complete!")
	fmt.Printf("Crops with data: %d/%d\n", dataset.CropsWithData(), len(dataset.Crops))
	fmt.Printf("Local entries: %d, outstate entries: %d\n", dataset.LocalEntries(), dataset.OutstateEntries())
	fmt.Printf("Output: %s\n", written)
	fmt.Printf("Duration: %v\n", time.Since(startTime).Round(time.Millisecond))
}
