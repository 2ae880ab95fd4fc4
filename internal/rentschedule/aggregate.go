package rentschedule

import (
	"fmt"
	"math"
)

// round2 rounds a weekly amount to whole pence.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SectionSubtotal sums the weekly amounts of a section's items, rounded to two
// decimal places. An empty slice yields zero. Amounts are summed as given; this
// is a display engine, validation is a separate pass.
func SectionSubtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Amount
	}
	return round2(sum)
}

// BuildTotals derives the weekly totals and the Housing Benefit split from the
// three section subtotals. Pure arithmetic, recomputed on every use so the
// displayed totals can never drift from the displayed subtotals.
func BuildTotals(coreRent, eligibleCharges, ineligible float64) Totals {
	return Totals{
		CoreRentWeekly:       round2(coreRent),
		ServiceChargesWeekly: round2(eligibleCharges),
		IneligibleWeekly:     round2(ineligible),
		GrossWeeklyRent:      round2(coreRent + eligibleCharges + ineligible),
		EligibleForHB:        round2(coreRent + eligibleCharges),
		IneligibleForHB:      round2(ineligible),
	}
}

// ComputeTotals recomputes the totals from a document's line items, ignoring
// the subtotals and totals stored on the document.
func ComputeTotals(doc Document) Totals {
	return BuildTotals(
		SectionSubtotal(doc.Sections.CoreRent.Items),
		SectionSubtotal(doc.Sections.EligibleCharges.Items),
		SectionSubtotal(doc.Sections.Ineligible.Items),
	)
}

// InvalidLineItemError marks a line item carrying a negative or non-finite
// weekly amount.
type InvalidLineItemError struct {
	SectionID SectionType
	ItemID    string
	Amount    float64
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("rentschedule: item %s in section %s has invalid amount %v", e.ItemID, e.SectionID, e.Amount)
}

// DataIntegrityError marks a stored subtotal or total that disagrees with the
// value recomputed from the line items.
type DataIntegrityError struct {
	SectionID SectionType
	Field     string
	Stored    float64
	Computed  float64
}

func (e *DataIntegrityError) Error() string {
	if e.SectionID != "" {
		return fmt.Sprintf("rentschedule: section %s subtotal stored %.2f but computed %.2f", e.SectionID, e.Stored, e.Computed)
	}
	return fmt.Sprintf("rentschedule: %s stored %.2f but computed %.2f", e.Field, e.Stored, e.Computed)
}

const penceTolerance = 0.005

func amountsDiffer(a, b float64) bool {
	return math.Abs(a-b) > penceTolerance
}

// ValidateDocument checks a document before it is cached or displayed: every
// amount must be finite and non-negative, every stored subtotal must match the
// computed sum, and the stored totals must match the recomputed breakdown.
func ValidateDocument(doc Document) error {
	for _, section := range doc.Sections.All() {
		for _, item := range section.Items {
			if item.Amount < 0 || math.IsNaN(item.Amount) || math.IsInf(item.Amount, 0) {
				return &InvalidLineItemError{SectionID: section.Type, ItemID: item.ID, Amount: item.Amount}
			}
		}
		if computed := SectionSubtotal(section.Items); amountsDiffer(section.Subtotal, computed) {
			return &DataIntegrityError{SectionID: section.Type, Field: "subtotal", Stored: section.Subtotal, Computed: computed}
		}
	}

	computed := ComputeTotals(doc)
	stored := doc.Totals
	checks := []struct {
		field    string
		stored   float64
		computed float64
	}{
		{"coreRentWeekly", stored.CoreRentWeekly, computed.CoreRentWeekly},
		{"serviceChargesWeekly", stored.ServiceChargesWeekly, computed.ServiceChargesWeekly},
		{"ineligibleWeekly", stored.IneligibleWeekly, computed.IneligibleWeekly},
		{"grossWeeklyRent", stored.GrossWeeklyRent, computed.GrossWeeklyRent},
		{"eligibleForHB", stored.EligibleForHB, computed.EligibleForHB},
		{"ineligibleForHB", stored.IneligibleForHB, computed.IneligibleForHB},
	}
	for _, check := range checks {
		if amountsDiffer(check.stored, check.computed) {
			return &DataIntegrityError{Field: check.field, Stored: check.stored, Computed: check.computed}
		}
	}
	return nil
}
