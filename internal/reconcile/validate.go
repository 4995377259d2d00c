package reconcile

import (
	"fmt"
	"strings"

	"mandi/internal/models"
)

// ValidationResult holds the outcome of post-assembly invariant checks.
type ValidationResult struct {
	Errors   []string
	Warnings []string
	IsValid  bool
}

// ValidateDataset checks the assembled dataset against the engine's output
// contract: every configured crop present, no zero-price entries, and
// fallback records carrying only price and variety. Degraded crops produce
// warnings, contract violations produce errors.
func ValidateDataset(dataset *models.Dataset, crops []models.Crop) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	for _, crop := range crops {
		cropResult, ok := dataset.Crops[crop.ID]
		if !ok {
			result.addError(fmt.Sprintf("crop %s missing from dataset", crop.ID))

			continue
		}

		switch cropResult.Status {
		case models.StatusEmpty:
			result.Warnings = append(result.Warnings, fmt.Sprintf("crop %s collected no entries", crop.ID))
		case models.StatusPartial:
			result.Warnings = append(result.Warnings, fmt.Sprintf("crop %s degraded to a single source", crop.ID))
		case models.StatusFull:
		}

		for market, rec := range cropResult.Local {
			if rec.ModalPrice <= 0 {
				result.addError(fmt.Sprintf("crop %s local market %s has no modal price", crop.ID, market))
			}
		}

		for market, rec := range cropResult.Outstate {
			if rec.ModalPrice <= 0 {
				result.addError(fmt.Sprintf("crop %s outstate market %s has no modal price", crop.ID, market))
			}

			if rec.MinPrice != 0 || rec.MaxPrice != 0 || rec.Arrival != 0 || rec.TradeDate != "" {
				result.addError(fmt.Sprintf("crop %s outstate market %s carries primary-only fields", crop.ID, market))
			}
		}
	}

	return result
}

func (r *ValidationResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// PrintWarnings prints all warnings to stdout.
func (r *ValidationResult) PrintWarnings() {
	for _, w := range r.Warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
}

// PrintErrors prints all errors to stdout.
func (r *ValidationResult) PrintErrors() {
	for _, e := range r.Errors {
		fmt.Printf("❌ %s\n", e)
	}
}

// String summarizes the validation outcome.
func (r *ValidationResult) String() string {
	status := "VALID"
	if !r.IsValid {
		status = "INVALID"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Validation: %s (%d errors, %d warnings)", status, len(r.Errors), len(r.Warnings))

	return sb.String()
}
