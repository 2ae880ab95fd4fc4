package rentschedule

import (
	"fmt"
	"strings"
)

// GroupRule merges line items sharing one of its categories into a single
// display entry when simple view is active.
type GroupRule struct {
	ID              string
	DisplayLabel    string
	EasyReadLabel   string
	MatchCategories []Category
}

// DefaultGroupRules is the rule table applied in simple view. Rules are
// evaluated in declaration order; that order is part of the rendered output
// contract.
var DefaultGroupRules = []GroupRule{
	{
		ID:              "cleaning",
		DisplayLabel:    "Cleaning Services",
		EasyReadLabel:   "Keeping things clean",
		MatchCategories: []Category{CategoryCleaning},
	},
	{
		ID:              "grounds",
		DisplayLabel:    "Gardens & Grounds",
		EasyReadLabel:   "Looking after the garden",
		MatchCategories: []Category{CategoryGardening},
	},
	{
		ID:              "safety_compliance",
		DisplayLabel:    "Safety & Compliance",
		EasyReadLabel:   "Keeping the building safe",
		MatchCategories: []Category{CategoryFireSafety, CategorySecurity},
	},
	{
		ID:              "pest_control",
		DisplayLabel:    "Pest Control",
		EasyReadLabel:   "Dealing with pests",
		MatchCategories: []Category{CategoryPestControl},
	},
	{
		ID:              "shared_utilities",
		DisplayLabel:    "Shared Utilities",
		EasyReadLabel:   "Power and water for shared areas",
		MatchCategories: []Category{CategoryCommunalUtility, CategoryLaundry},
	},
	{
		ID:              "personal_utilities",
		DisplayLabel:    "Your Heating & Power",
		EasyReadLabel:   "Heating and power in your home",
		MatchCategories: []Category{CategoryHeating, CategoryWater, CategoryElectricity},
	},
}

// ValidateRules rejects rule tables referencing categories outside the closed
// set, which would otherwise fail silently by never matching.
func ValidateRules(rules []GroupRule) error {
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if rule.ID == "" {
			return fmt.Errorf("rentschedule: group rule with empty id")
		}
		if _, dup := seen[rule.ID]; dup {
			return fmt.Errorf("rentschedule: duplicate group rule %q", rule.ID)
		}
		seen[rule.ID] = struct{}{}
		if len(rule.MatchCategories) == 0 {
			return fmt.Errorf("rentschedule: group rule %q matches no categories", rule.ID)
		}
		for _, cat := range rule.MatchCategories {
			if !KnownCategory(cat) {
				return fmt.Errorf("rentschedule: group rule %q references unknown category %q", rule.ID, cat)
			}
		}
	}
	return nil
}

// GroupItems applies the simple-view transform: rules run in declaration
// order, each consuming every not-yet-consumed item whose category it matches,
// but only when two or more items match. A lone match never becomes a group of
// one; it falls through to the ungrouped pass. Grouped entries come first, then
// the remaining items in their original order. The input is never mutated and
// the transform is always applied to the raw list, never to its own output.
func GroupItems(items []LineItem, rules []GroupRule, easyRead bool) []DisplayItem {
	if len(items) == 0 {
		return []DisplayItem{}
	}

	consumed := make([]bool, len(items))
	out := make([]DisplayItem, 0, len(items))

	for _, rule := range rules {
		matchSet := make(map[Category]struct{}, len(rule.MatchCategories))
		for _, cat := range rule.MatchCategories {
			matchSet[cat] = struct{}{}
		}

		var matched []int
		for i, item := range items {
			if consumed[i] {
				continue
			}
			if _, ok := matchSet[item.Category]; ok {
				matched = append(matched, i)
			}
		}
		if len(matched) < 2 {
			continue
		}

		var amount float64
		labels := make([]string, 0, len(matched))
		for _, i := range matched {
			amount += items[i].Amount
			labels = append(labels, items[i].Label)
			consumed[i] = true
		}

		label := rule.DisplayLabel
		if easyRead && rule.EasyReadLabel != "" {
			label = rule.EasyReadLabel
		}
		out = append(out, DisplayItem{
			ID:          "grouped_" + rule.ID,
			Label:       label,
			Amount:      round2(amount),
			Description: "Includes: " + strings.Join(labels, ", "),
			IsGrouped:   true,
			GroupedFrom: labels,
		})
	}

	for i, item := range items {
		if consumed[i] {
			continue
		}
		out = append(out, displayItem(item))
	}
	return out
}

// DisplayItems converts raw line items without grouping, for normal view.
func DisplayItems(items []LineItem) []DisplayItem {
	out := make([]DisplayItem, 0, len(items))
	for _, item := range items {
		out = append(out, displayItem(item))
	}
	return out
}

func displayItem(item LineItem) DisplayItem {
	return DisplayItem{
		ID:                  item.ID,
		Label:               item.Label,
		Amount:              item.Amount,
		Description:         item.Description,
		EasyReadDescription: item.EasyReadDescription,
		Calculation:         item.Calculation,
	}
}
