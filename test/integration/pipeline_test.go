package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"mandi/internal/config"
	"mandi/internal/fetch"
	"mandi/internal/logger"
	"mandi/internal/models"
	"mandi/internal/persist"
	"mandi/internal/reconcile"
	"mandi/internal/report"
)

// pipelineCrops narrows the default crop set to the two fixture crops:
// onion (both sources) and cocoon (listing site only).
func pipelineCrops(t *testing.T) (*config.Config, []models.Crop) {
	t.Helper()

	cfg := config.Default()

	var crops []models.Crop

	for _, id := range []string{"onion", "silk-cocoonbh-double-hybr"} {
		crop, ok := cfg.CropByID(id)
		if !ok {
			t.Fatalf("crop %s missing from defaults", id)
		}

		crops = append(crops, crop)
	}

	return cfg, crops
}

func assembleFixtures(t *testing.T) (*config.Config, []models.Crop, *models.Dataset) {
	t.Helper()

	cfg, crops := pipelineCrops(t)

	matcher := reconcile.NewMatcher(cfg.Markets.Local, cfg.Markets.Aliases, cfg.Markets.RegionNames)
	provider := fetch.NewSnapshotProvider(filepath.Join("..", "fixtures"))
	assembler := reconcile.NewAssembler(crops, matcher, provider, logger.NewLogger("error"))

	return cfg, crops, assembler.Assemble(context.Background())
}

func TestPipeline_SnapshotsToDataset(t *testing.T) {
	_, crops, dataset := assembleFixtures(t)

	onion := dataset.Crops["onion"]
	if onion == nil {
		t.Fatal("onion missing from dataset")
	}

	if onion.Status != models.StatusFull {
		t.Errorf("onion status = %s, want full", onion.Status)
	}

	// Rich entry straight from the primary table.
	pune := onion.Local["पुणे"]
	if pune.ModalPrice != 1800 || pune.MinPrice != 1500 || pune.Arrival != 120 {
		t.Errorf("पुणे entry = %+v", pune)
	}

	if pune.TradeDate != "Trade Date: 15-01-2024" {
		t.Errorf("पुणे trade date = %q", pune.TradeDate)
	}

	// सातारा was absent from the primary table and filled from the
	// listing site with price and variety only.
	satara := onion.Local["सातारा"]
	if satara.ModalPrice != 2200 || satara.Variety != "Lokwan" {
		t.Errorf("सातारा entry = %+v", satara)
	}

	if satara.MinPrice != 0 || satara.TradeDate != "" {
		t.Errorf("fallback entry gained primary-only fields: %+v", satara)
	}

	// The in-region Pune listing row must not overwrite the primary entry.
	if pune.ModalPrice == 1750 {
		t.Error("listing row overwrote the primary पुणे entry")
	}

	if got := onion.Outstate["Indore"]; got.ModalPrice != 1950 {
		t.Errorf("Indore entry = %+v", got)
	}

	// Cocoon has no primary source; its in-region market lands in the
	// local map under the canonical Marathi name.
	cocoon := dataset.Crops["silk-cocoonbh-double-hybr"]
	if cocoon == nil {
		t.Fatal("cocoon missing from dataset")
	}

	if got := cocoon.Local["नाशिक"]; got.ModalPrice != 42000 {
		t.Errorf("नाशिक entry = %+v", got)
	}

	if got := cocoon.Outstate["Ramanagara"]; got.ModalPrice != 44500 {
		t.Errorf("Ramanagara entry = %+v", got)
	}

	if dataset.LocalEntries() != 4 || dataset.OutstateEntries() != 2 {
		t.Errorf("entries = %d local / %d outstate, want 4/2",
			dataset.LocalEntries(), dataset.OutstateEntries())
	}

	validation := reconcile.ValidateDataset(dataset, crops)
	if !validation.IsValid {
		t.Errorf("dataset failed validation: %v", validation.Errors)
	}
}

func TestPipeline_WriteReadRender(t *testing.T) {
	cfg, _, dataset := assembleFixtures(t)

	output := cfg.Scraper.Output
	output.BasePath = t.TempDir()

	written, err := persist.NewWriter(output).Write(dataset, "")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := persist.ReadDataset(written)
	if err != nil {
		t.Fatalf("ReadDataset failed: %v", err)
	}

	if file.Crops["onion"].Local["पुणे"].ModalPrice != 1800 {
		t.Error("पुणे price lost in the write/read round trip")
	}

	rendered := report.RenderDataset(file)
	for _, want := range []string{"पुणे", "सातारा", "Indore *", "42000"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestPipeline_HistoryRecordsRun(t *testing.T) {
	_, _, dataset := assembleFixtures(t)

	output := config.OutputConfig{BasePath: t.TempDir()}

	written, err := persist.NewWriter(output).Write(dataset, "")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	store, err := persist.OpenStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	if err := store.RecordRun(ctx, dataset, written); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}

	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	if runs[0].LocalEntries != 4 || runs[0].OutstateEntries != 2 {
		t.Errorf("recorded entries = %d/%d, want 4/2",
			runs[0].LocalEntries, runs[0].OutstateEntries)
	}

	if runs[0].DatasetHash == "" {
		t.Error("recorded run has no dataset hash")
	}
}
