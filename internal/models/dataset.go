package models

import (
	"mandi/pkg/runmeta"
)

// CropStatus describes how completely a crop's sources were collected.
type CropStatus string

// Per-crop completion states.
const (
	StatusFull    CropStatus = "full"
	StatusPartial CropStatus = "partial"
	StatusEmpty   CropStatus = "empty"
)

// PriceRecord is one market's quote for one crop from one source.
// Zero is the "absent" sentinel for every numeric field; fallback records
// filled from CommodityOnline carry only ModalPrice and Variety.
type PriceRecord struct {
	ModalPrice int    `json:"modal_price"`
	MinPrice   int    `json:"min_price,omitempty"`
	MaxPrice   int    `json:"max_price,omitempty"`
	Arrival    int    `json:"arrival,omitempty"`
	Variety    string `json:"variety"`
	TradeDate  string `json:"trade_date,omitempty"`
}

// CropStats counts what happened while reconciling one crop. The engine
// never fails a run; these counts are how degradation surfaces.
type CropStats struct {
	PrimaryRows      int `json:"primaryRows"`
	SecondaryRows    int `json:"secondaryRows"`
	RowsDiscarded    int `json:"rowsDiscarded"`
	DuplicateMarkets int `json:"duplicateMarkets"`
	LocalFromPrimary int `json:"localFromPrimary"`
	LocalFallback    int `json:"localFallback"`
	OutstateMarkets  int `json:"outstateMarkets"`
	UnmatchedMarkets int `json:"unmatchedMarkets"`
}

// CropResult is the reconciled record for one crop. Local maps canonical
// Marathi market names to quotes; Outstate maps literal out-of-state
// market names. Within each map a key is written at most once per run.
type CropResult struct {
	Marathi  string                 `json:"marathi"`
	English  string                 `json:"english"`
	Local    map[string]PriceRecord `json:"local"`
	Outstate map[string]PriceRecord `json:"outstate"`

	// Run bookkeeping, not part of the persisted dataset schema.
	Status CropStatus `json:"-"`
	Stats  CropStats  `json:"-"`
}

// NewCropResult creates an empty result for a crop.
func NewCropResult(crop Crop) *CropResult {
	return &CropResult{
		Marathi:  crop.Marathi,
		English:  crop.Name,
		Local:    make(map[string]PriceRecord),
		Outstate: make(map[string]PriceRecord),
		Status:   StatusEmpty,
	}
}

// Entries returns the total number of market entries in the result.
func (r *CropResult) Entries() int {
	return len(r.Local) + len(r.Outstate)
}

// Dataset is the terminal artifact of one run: every configured crop's
// result plus run metadata for the persistence step.
type Dataset struct {
	Meta  *runmeta.Metadata
	Crops map[string]*CropResult
}

// LocalEntries returns the dataset-wide count of local market entries.
func (d *Dataset) LocalEntries() int {
	total := 0
	for _, c := range d.Crops {
		total += len(c.Local)
	}

	return total
}

// OutstateEntries returns the dataset-wide count of outstate market entries.
func (d *Dataset) OutstateEntries() int {
	total := 0
	for _, c := range d.Crops {
		total += len(c.Outstate)
	}

	return total
}

// CropsWithData returns how many crops collected at least one entry.
func (d *Dataset) CropsWithData() int {
	n := 0

	for _, c := range d.Crops {
		if c.Entries() > 0 {
			n++
		}
	}

	return n
}
