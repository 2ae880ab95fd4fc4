package rentschedule

import (
	"errors"
	"math"
	"testing"

	_ "github.com/shelterdesk/shelterdesk/testing"
)

func TestSectionSubtotal(t *testing.T) {
	items := []LineItem{
		{ID: "a", Amount: 10.10},
		{ID: "b", Amount: 0.20},
		{ID: "c", Amount: 5.17},
	}
	if got := SectionSubtotal(items); got != 15.47 {
		t.Fatalf("expected 15.47 got %v", got)
	}
	if got := SectionSubtotal(nil); got != 0 {
		t.Fatalf("expected 0 for empty section, got %v", got)
	}
}

func TestSectionSubtotalStableUnderReordering(t *testing.T) {
	items := []LineItem{
		{ID: "a", Amount: 245.50},
		{ID: "b", Amount: 32.18},
		{ID: "c", Amount: 21.84},
		{ID: "d", Amount: 17.50},
	}
	reversed := []LineItem{items[3], items[2], items[1], items[0]}
	if SectionSubtotal(items) != SectionSubtotal(reversed) {
		t.Fatalf("subtotal changed under reordering")
	}
}

func TestBuildTotalsWoodhurstScenario(t *testing.T) {
	totals := BuildTotals(317.02, 86.42, 130.39)
	if totals.GrossWeeklyRent != 533.83 {
		t.Fatalf("expected gross 533.83 got %v", totals.GrossWeeklyRent)
	}
	if totals.EligibleForHB != 403.44 {
		t.Fatalf("expected eligible 403.44 got %v", totals.EligibleForHB)
	}
	if totals.IneligibleForHB != 130.39 {
		t.Fatalf("expected ineligible 130.39 got %v", totals.IneligibleForHB)
	}
}

func TestTotalsConsistency(t *testing.T) {
	doc := WoodhurstFixture()
	totals := ComputeTotals(doc)
	if math.Abs(totals.GrossWeeklyRent-(totals.CoreRentWeekly+totals.ServiceChargesWeekly+totals.IneligibleWeekly)) > 0.005 {
		t.Fatalf("gross does not equal sum of sections: %+v", totals)
	}
	if math.Abs((totals.EligibleForHB+totals.IneligibleForHB)-totals.GrossWeeklyRent) > 0.005 {
		t.Fatalf("HB split does not cover gross: %+v", totals)
	}
}

func TestWoodhurstFixtureTotals(t *testing.T) {
	doc := WoodhurstFixture()
	if doc.Totals.CoreRentWeekly != 317.02 {
		t.Fatalf("expected core 317.02 got %v", doc.Totals.CoreRentWeekly)
	}
	if doc.Totals.ServiceChargesWeekly != 86.42 {
		t.Fatalf("expected services 86.42 got %v", doc.Totals.ServiceChargesWeekly)
	}
	if doc.Totals.IneligibleWeekly != 130.39 {
		t.Fatalf("expected ineligible 130.39 got %v", doc.Totals.IneligibleWeekly)
	}
	if doc.Totals.GrossWeeklyRent != 533.83 {
		t.Fatalf("expected gross 533.83 got %v", doc.Totals.GrossWeeklyRent)
	}
	if err := ValidateDocument(doc); err != nil {
		t.Fatalf("fixture should validate: %v", err)
	}
}

func TestValidateDocumentSubtotalDrift(t *testing.T) {
	doc := WoodhurstFixture()
	doc.Sections.CoreRent.Subtotal += 1

	err := ValidateDocument(doc)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError got %v", err)
	}
	if integrity.SectionID != SectionCoreRent {
		t.Fatalf("expected drift reported on coreRent, got %s", integrity.SectionID)
	}
}

func TestValidateDocumentStoredTotalsDrift(t *testing.T) {
	doc := WoodhurstFixture()
	doc.Totals.EligibleForHB = 999

	err := ValidateDocument(doc)
	var integrity *DataIntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected DataIntegrityError got %v", err)
	}
	if integrity.Field != "eligibleForHB" {
		t.Fatalf("expected eligibleForHB drift, got %s", integrity.Field)
	}
}

func TestValidateDocumentRejectsBadAmounts(t *testing.T) {
	for _, amount := range []float64{-1, math.NaN(), math.Inf(1)} {
		doc := WoodhurstFixture()
		doc.Sections.Ineligible.Items[0].Amount = amount

		err := ValidateDocument(doc)
		var invalid *InvalidLineItemError
		if !errors.As(err, &invalid) {
			t.Fatalf("amount %v: expected InvalidLineItemError got %v", amount, err)
		}
		if invalid.ItemID != doc.Sections.Ineligible.Items[0].ID {
			t.Fatalf("wrong item flagged: %s", invalid.ItemID)
		}
	}
}
