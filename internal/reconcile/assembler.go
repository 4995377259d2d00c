package reconcile

import (
	"context"
	"time"

	"mandi/internal/logger"
	"mandi/internal/models"
	"mandi/internal/parser"
	"mandi/pkg/runmeta"
)

// RowProvider supplies raw table rows per crop per source. Implementations
// must deliver a crop's rows completely before returning: the missing-set
// fallback computation requires the full primary row stream, and the
// sources list their most recent quotes first, which the first-occurrence
// -wins policy relies on.
//
// A provider reports a failed source with an error; the assembler treats
// that as an empty row set and degrades the crop to a partial result.
type RowProvider interface {
	PrimaryRows(ctx context.Context, crop models.Crop) ([]models.RawRow, error)
	SecondaryRows(ctx context.Context, crop models.Crop) ([]models.RawRow, error)
}

// Assembler runs the reconciliation for every configured crop and produces
// the complete dataset. It holds no state across crops; each result is
// independent.
type Assembler struct {
	crops      []models.Crop
	reconciler *Reconciler
	provider   RowProvider
	log        *logger.Logger
}

// NewAssembler creates an assembler over the configured crops.
func NewAssembler(crops []models.Crop, matcher *Matcher, provider RowProvider, log *logger.Logger) *Assembler {
	return &Assembler{
		crops:      crops,
		reconciler: NewReconciler(matcher),
		provider:   provider,
		log:        log,
	}
}

// Assemble processes every crop through both sources and returns the
// dataset with run metadata. Source failures never abort the run; they
// degrade the affected crop and are visible in its status and stats.
func (a *Assembler) Assemble(ctx context.Context) *models.Dataset {
	start := time.Now()

	dataset := &models.Dataset{
		Crops: make(map[string]*models.CropResult, len(a.crops)),
	}

	for _, crop := range a.crops {
		dataset.Crops[crop.ID] = a.assembleCrop(ctx, crop)
	}

	dataset.Meta = runmeta.New(start)

	return dataset
}

func (a *Assembler) assembleCrop(ctx context.Context, crop models.Crop) *models.CropResult {
	log := a.log.With("crop", crop.ID)

	primaryOK := true

	var primary []parser.MSAMBRecord

	if crop.HasMSAMB() {
		rows, err := a.provider.PrimaryRows(ctx, crop)
		if err != nil {
			log.Warn("primary source unavailable", "error", err)

			primaryOK = false
		}

		var discarded int

		primary, discarded = parser.ExtractMSAMB(rows)

		log.Debug("primary rows extracted", "records", len(primary), "discarded", discarded)
	}

	secondaryOK := true

	rows, err := a.provider.SecondaryRows(ctx, crop)
	if err != nil {
		log.Warn("secondary source unavailable", "error", err)

		secondaryOK = false
	}

	secondary, discarded := parser.ExtractListings(rows)

	log.Debug("secondary rows extracted", "records", len(secondary), "discarded", discarded)

	result := a.reconciler.Reconcile(crop, primary, secondary)
	result.Status = cropStatus(crop, result, primaryOK, secondaryOK)

	log.Info("crop reconciled",
		"status", result.Status,
		"local", len(result.Local),
		"outstate", len(result.Outstate),
		"fallback", result.Stats.LocalFallback,
	)

	return result
}

// cropStatus derives the completion status: full when every applicable
// source delivered, partial when at least one did, empty when the result
// holds no entries at all.
func cropStatus(crop models.Crop, result *models.CropResult, primaryOK, secondaryOK bool) models.CropStatus {
	if result.Entries() == 0 {
		return models.StatusEmpty
	}

	if secondaryOK && (primaryOK || !crop.HasMSAMB()) {
		return models.StatusFull
	}

	return models.StatusPartial
}
