package parser

import (
	"strings"

	"mandi/internal/models"
)

// MSAMB data rows carry exactly seven cells:
// market, variety, grade, arrival, min, max, modal.
const msambDataCells = 7

// MSAMB column positions.
const (
	msambColMarket  = 0
	msambColVariety = 1
	msambColArrival = 3
	msambColMin     = 4
	msambColMax     = 5
	msambColModal   = 6
)

// noTradeDate is the active trade date before the first marker row.
const noTradeDate = "N/A"

// MSAMBRecord is one extracted MSAMB quote. TradeDate is the text of the
// most recent date-marker row above the data row.
type MSAMBRecord struct {
	Market     string
	Variety    string
	TradeDate  string
	Arrival    int
	MinPrice   int
	MaxPrice   int
	ModalPrice int
}

// ExtractMSAMB classifies MSAMB table rows and extracts data records.
// A single-cell colspan row is a trade-date marker that applies to all
// rows until the next marker; a seven-cell row is a data record; any
// other shape is skipped and counted as discarded.
func ExtractMSAMB(rows []models.RawRow) ([]MSAMBRecord, int) {
	var records []MSAMBRecord

	discarded := 0
	tradeDate := noTradeDate

	for _, row := range rows {
		if row.Colspan && len(row.Cells) == 1 {
			tradeDate = strings.TrimSpace(row.Cells[0])

			continue
		}

		if len(row.Cells) != msambDataCells {
			discarded++

			continue
		}

		records = append(records, MSAMBRecord{
			Market:     strings.TrimSpace(row.Cells[msambColMarket]),
			Variety:    strings.TrimSpace(row.Cells[msambColVariety]),
			TradeDate:  tradeDate,
			Arrival:    CleanPrice(row.Cells[msambColArrival]),
			MinPrice:   CleanPrice(row.Cells[msambColMin]),
			MaxPrice:   CleanPrice(row.Cells[msambColMax]),
			ModalPrice: CleanPrice(row.Cells[msambColModal]),
		})
	}

	return records, discarded
}
