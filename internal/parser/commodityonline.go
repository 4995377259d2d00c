package parser

import (
	"strings"

	"mandi/internal/models"
)

// CommodityOnline rows of interest carry at least nine cells:
// commodity, arrival date, variety, state, district, market, min, max, modal.
const listingMinCells = 9

// CommodityOnline column positions.
const (
	listingColVariety = 2
	listingColState   = 3
	listingColMarket  = 5
	listingColModal   = 8
)

// ListingRecord is one extracted CommodityOnline quote. The market name is
// in English; the modal price cell may carry currency symbols and units.
// CommodityOnline has no trade-date marker concept.
type ListingRecord struct {
	State      string
	Market     string
	Variety    string
	ModalPrice int
}

// ExtractListings classifies CommodityOnline table rows and extracts data
// records. Rows with fewer than nine cells are skipped and counted as
// discarded.
func ExtractListings(rows []models.RawRow) ([]ListingRecord, int) {
	var records []ListingRecord

	discarded := 0

	for _, row := range rows {
		if len(row.Cells) < listingMinCells {
			discarded++

			continue
		}

		records = append(records, ListingRecord{
			State:      strings.TrimSpace(row.Cells[listingColState]),
			Market:     strings.TrimSpace(row.Cells[listingColMarket]),
			Variety:    strings.TrimSpace(row.Cells[listingColVariety]),
			ModalPrice: ExtractListedPrice(row.Cells[listingColModal]),
		})
	}

	return records, discarded
}
