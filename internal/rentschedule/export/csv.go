package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
)

// WriteScheduleCSV serialises a rent schedule document to CSV: one row per
// line item grouped under section headers, followed by the totals block.
func WriteScheduleCSV(w io.Writer, doc rentschedule.Document) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Section", "Item", "Category", "Weekly Amount"}); err != nil {
		return err
	}
	for _, section := range doc.Sections.All() {
		for _, item := range section.Items {
			record := []string{section.Title, item.Label, string(item.Category), formatFloat(item.Amount)}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{section.Title, "Subtotal", "", formatFloat(section.Subtotal)}); err != nil {
			return err
		}
	}

	totals := rentschedule.ComputeTotals(doc)
	records := [][]string{
		{"Totals", "Gross weekly rent", "", formatFloat(totals.GrossWeeklyRent)},
		{"Totals", "Eligible for Housing Benefit", "", formatFloat(totals.EligibleForHB)},
		{"Totals", "Ineligible for Housing Benefit", "", formatFloat(totals.IneligibleForHB)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
