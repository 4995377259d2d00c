package reconcile

import (
	"mandi/internal/models"
	"mandi/internal/parser"
)

// Reconciler merges one crop's MSAMB and CommodityOnline records under the
// priority/fallback policy: MSAMB populates local markets first with rich
// fields, CommodityOnline fills whatever canonical markets are still
// missing (price and variety only) and collects outstate benchmarks.
type Reconciler struct {
	matcher *Matcher
}

// NewReconciler creates a reconciler using the given market matcher.
func NewReconciler(matcher *Matcher) *Reconciler {
	return &Reconciler{matcher: matcher}
}

// Reconcile builds the crop's final result from both sources' extracted
// records. Both row streams must be complete before calling: the missing
// set is computed after all MSAMB records are applied, and first-occurrence
// -wins relies on the sources listing the most recent quotes first.
func (r *Reconciler) Reconcile(crop models.Crop, primary []parser.MSAMBRecord, secondary []parser.ListingRecord) *models.CropResult {
	result := models.NewCropResult(crop)
	result.Stats.PrimaryRows = len(primary)
	result.Stats.SecondaryRows = len(secondary)

	if crop.HasMSAMB() {
		r.applyPrimary(result, primary)
	}

	missing := r.missingMarkets(result)
	r.applySecondary(crop, result, secondary, missing)

	return result
}

// applyPrimary writes MSAMB records into the local map, first match wins
// per canonical market.
func (r *Reconciler) applyPrimary(result *models.CropResult, records []parser.MSAMBRecord) {
	for _, rec := range records {
		if rec.ModalPrice <= 0 {
			result.Stats.RowsDiscarded++

			continue
		}

		target, ok := r.matcher.MatchLocal(rec.Market)
		if !ok {
			result.Stats.UnmatchedMarkets++

			continue
		}

		if _, exists := result.Local[target]; exists {
			continue
		}

		result.Local[target] = models.PriceRecord{
			ModalPrice: rec.ModalPrice,
			MinPrice:   rec.MinPrice,
			MaxPrice:   rec.MaxPrice,
			Arrival:    rec.Arrival,
			Variety:    rec.Variety,
			TradeDate:  rec.TradeDate,
		}
		result.Stats.LocalFromPrimary++
	}
}

// missingMarkets returns the canonical markets not yet present in the
// local map, preserving canonical order.
func (r *Reconciler) missingMarkets(result *models.CropResult) []string {
	var missing []string

	for _, m := range r.matcher.canonical {
		if _, ok := result.Local[m]; !ok {
			missing = append(missing, m)
		}
	}

	return missing
}

// applySecondary processes CommodityOnline records. For crops MSAMB does
// not track, every in-region record lands in local under its translated
// name. For the rest, in-region records may only fill markets from the
// missing set; everything out of region becomes an outstate benchmark.
func (r *Reconciler) applySecondary(crop models.Crop, result *models.CropResult, records []parser.ListingRecord, missing []string) {
	processed := make(map[string]bool, len(records))

	for _, rec := range records {
		if rec.ModalPrice <= 0 {
			result.Stats.RowsDiscarded++

			continue
		}

		// A repeated market name is a stale quote further down the
		// listing, not an invalid row; count it apart from discards.
		if processed[rec.Market] {
			result.Stats.DuplicateMarkets++

			continue
		}

		inRegion := r.matcher.InRegion(rec.State)

		if !crop.HasMSAMB() {
			processed[rec.Market] = true

			record := models.PriceRecord{ModalPrice: rec.ModalPrice, Variety: rec.Variety}

			if inRegion {
				name := r.matcher.Translate(rec.Market)
				if _, exists := result.Local[name]; !exists {
					result.Local[name] = record
					result.Stats.LocalFallback++
				}
			} else if _, exists := result.Outstate[rec.Market]; !exists {
				result.Outstate[rec.Market] = record
				result.Stats.OutstateMarkets++
			}

			continue
		}

		if inRegion {
			// In-region records never become outstate benchmarks; they
			// either fill a missing canonical market or are dropped.
			name, ok := r.matcher.MatchMissing(rec.Market, missing)
			if !ok {
				continue
			}

			result.Local[name] = models.PriceRecord{ModalPrice: rec.ModalPrice, Variety: rec.Variety}
			result.Stats.LocalFallback++
			processed[rec.Market] = true
			missing = removeMarket(missing, name)

			continue
		}

		if _, exists := result.Outstate[rec.Market]; !exists {
			result.Outstate[rec.Market] = models.PriceRecord{ModalPrice: rec.ModalPrice, Variety: rec.Variety}
			result.Stats.OutstateMarkets++
			processed[rec.Market] = true
		}
	}
}

// removeMarket drops one market from the missing set, keeping order.
func removeMarket(missing []string, name string) []string {
	for i, m := range missing {
		if m == name {
			return append(missing[:i:i], missing[i+1:]...)
		}
	}

	return missing
}
