// Package report renders datasets and run history as aligned text tables.
// Market names are Devanagari, so column widths must use display width
// rather than rune count.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"mandi/internal/models"
	"mandi/internal/persist"
)

var datasetHeader = []string{"Market", "Modal", "Min", "Max", "Arrival", "Variety", "Trade Date"}

// RenderDataset formats a dataset file as one table per crop, local
// markets first, then outstate. Crops and markets are sorted so repeated
// renders of the same file are identical.
func RenderDataset(file *persist.FileDataset) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Dataset from %s (%s)\n", file.Timestamp, file.ExecutionTimeFormatted)

	for _, id := range sortedKeys(file.Crops) {
		crop := file.Crops[id]

		fmt.Fprintf(&sb, "\n%s (%s) [%s]\n", crop.English, crop.Marathi, id)

		if len(crop.Local) == 0 && len(crop.Outstate) == 0 {
			sb.WriteString("  no data\n")

			continue
		}

		var rows [][]string

		for _, market := range sortedKeys(crop.Local) {
			rows = append(rows, recordRow(market, crop.Local[market]))
		}

		for _, market := range sortedKeys(crop.Outstate) {
			rows = append(rows, recordRow(market+" *", crop.Outstate[market]))
		}

		writeTable(&sb, datasetHeader, rows)
	}

	sb.WriteString("\n* outstate market\n")

	return sb.String()
}

// RenderHistory formats recorded runs, newest first, flagging runs whose
// dataset hash matches the previous run.
func RenderHistory(runs []persist.RunSummary) string {
	if len(runs) == 0 {
		return "no recorded runs\n"
	}

	var sb strings.Builder

	header := []string{"Started", "Duration", "Crops", "Local", "Outstate", "Output"}

	var rows [][]string

	for i, run := range runs {
		note := ""
		if i+1 < len(runs) && run.Unchanged(&runs[i+1]) {
			note = " (unchanged)"
		}

		rows = append(rows, []string{
			run.StartedAt.Format(time.DateTime),
			run.Duration.Round(time.Second).String(),
			fmt.Sprintf("%d/%d", run.CropsWithData, run.CropsTotal),
			fmt.Sprintf("%d", run.LocalEntries),
			fmt.Sprintf("%d", run.OutstateEntries),
			run.OutputPath + note,
		})
	}

	writeTable(&sb, header, rows)

	return sb.String()
}

func recordRow(market string, rec models.PriceRecord) []string {
	return []string{
		market,
		fmt.Sprintf("%d", rec.ModalPrice),
		blankIfZero(rec.MinPrice),
		blankIfZero(rec.MaxPrice),
		blankIfZero(rec.Arrival),
		rec.Variety,
		rec.TradeDate,
	}
}

func blankIfZero(v int) string {
	if v == 0 {
		return ""
	}

	return fmt.Sprintf("%d", v)
}

// writeTable pads every cell to the column's display width.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))

	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}

			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow(sb, header, widths)

	sep := make([]string, len(header))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	writeRow(sb, sep, widths)

	for _, row := range rows {
		writeRow(sb, row, widths)
	}
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString("  |")

	for i, w := range widths {
		content := ""
		if i < len(cells) {
			content = cells[i]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		if pad := w - runewidth.StringWidth(content); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}

		sb.WriteString(" |")
	}

	sb.WriteString("\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
