package rentschedule

import (
	"math"
	"reflect"
	"testing"

	_ "github.com/shelterdesk/shelterdesk/testing"
)

func safetyScenarioItems() []LineItem {
	return []LineItem{
		{ID: "fire-alarm", Label: "Fire alarm", Amount: 4.25, Category: CategoryFireSafety},
		{ID: "fire-ext", Label: "Fire extinguishers", Amount: 1.50, Category: CategoryFireSafety},
		{ID: "pest", Label: "Pest control", Amount: 1.25, Category: CategoryPestControl},
	}
}

func TestGroupItemsSafetyScenario(t *testing.T) {
	out := GroupItems(safetyScenarioItems(), DefaultGroupRules, false)
	if len(out) != 2 {
		t.Fatalf("expected 2 display items got %d: %+v", len(out), out)
	}

	grouped := out[0]
	if !grouped.IsGrouped {
		t.Fatalf("expected first entry grouped, got %+v", grouped)
	}
	if grouped.Label != "Safety & Compliance" {
		t.Fatalf("unexpected group label %q", grouped.Label)
	}
	if grouped.Amount != 5.75 {
		t.Fatalf("expected grouped amount 5.75 got %v", grouped.Amount)
	}
	if grouped.Description != "Includes: Fire alarm, Fire extinguishers" {
		t.Fatalf("unexpected description %q", grouped.Description)
	}

	straggler := out[1]
	if straggler.IsGrouped {
		t.Fatalf("pest control must not be grouped alone")
	}
	if straggler.ID != "pest" || straggler.Amount != 1.25 {
		t.Fatalf("pest control should pass through unchanged: %+v", straggler)
	}
}

func TestGroupItemsConservesAmounts(t *testing.T) {
	doc := WoodhurstFixture()
	for _, section := range doc.Sections.All() {
		var raw float64
		for _, item := range section.Items {
			raw += item.Amount
		}
		var grouped float64
		for _, item := range GroupItems(section.Items, DefaultGroupRules, true) {
			grouped += item.Amount
		}
		if math.Abs(raw-grouped) > 0.005 {
			t.Fatalf("section %s: grouping changed total from %v to %v", section.Type, raw, grouped)
		}
	}
}

func TestGroupItemsDeterministic(t *testing.T) {
	items := WoodhurstFixture().Sections.EligibleCharges.Items
	first := GroupItems(items, DefaultGroupRules, true)
	second := GroupItems(items, DefaultGroupRules, true)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grouping not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestGroupItemsOrdering(t *testing.T) {
	// Grouped entries appear in rule order, then stragglers in original order.
	items := WoodhurstFixture().Sections.EligibleCharges.Items
	out := GroupItems(items, DefaultGroupRules, false)

	var got []string
	for _, item := range out {
		got = append(got, item.ID)
	}
	want := []string{
		"grouped_cleaning",
		"grouped_grounds",
		"grouped_safety_compliance",
		"grouped_shared_utilities",
		"svc-pest-control",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected ordering: got %v want %v", got, want)
	}
}

func TestGroupItemsEasyReadLabels(t *testing.T) {
	items := []LineItem{
		{ID: "a", Label: "Communal cleaning", Amount: 24.75, Category: CategoryCleaning},
		{ID: "b", Label: "Window cleaning", Amount: 6.50, Category: CategoryCleaning},
	}
	out := GroupItems(items, DefaultGroupRules, true)
	if len(out) != 1 || out[0].Label != "Keeping things clean" {
		t.Fatalf("expected easy-read label, got %+v", out)
	}
}

func TestGroupItemsSingleMatchPassesThrough(t *testing.T) {
	items := []LineItem{
		{ID: "only", Label: "Communal cleaning", Amount: 24.75, Category: CategoryCleaning},
		{ID: "other", Label: "Meals service", Amount: 24.50, Category: CategoryCatering},
	}
	out := GroupItems(items, DefaultGroupRules, false)
	if len(out) != 2 {
		t.Fatalf("expected pass-through, got %+v", out)
	}
	for _, item := range out {
		if item.IsGrouped {
			t.Fatalf("no entry should be grouped: %+v", out)
		}
	}
	if out[0].ID != "only" || out[1].ID != "other" {
		t.Fatalf("original order must be preserved: %+v", out)
	}
}

func TestGroupItemsEmptyInput(t *testing.T) {
	if out := GroupItems(nil, DefaultGroupRules, false); len(out) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}

func TestValidateRules(t *testing.T) {
	if err := ValidateRules(DefaultGroupRules); err != nil {
		t.Fatalf("default rules must validate: %v", err)
	}

	bad := []GroupRule{{ID: "typo", DisplayLabel: "Typo", MatchCategories: []Category{"fire-saftey"}}}
	if err := ValidateRules(bad); err == nil {
		t.Fatal("expected error for unknown category")
	}

	dup := []GroupRule{
		{ID: "x", DisplayLabel: "X", MatchCategories: []Category{CategoryCleaning}},
		{ID: "x", DisplayLabel: "X", MatchCategories: []Category{CategoryGardening}},
	}
	if err := ValidateRules(dup); err == nil {
		t.Fatal("expected error for duplicate rule id")
	}
}
