package schedulehttp

import (
	"fmt"

	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
)

// ItemView is a display item plus its expansion state.
type ItemView struct {
	rentschedule.DisplayItem
	Expanded bool
}

// SectionViewModel holds one rendered section for the SSR template.
type SectionViewModel struct {
	ID       string
	Title    string
	Subtotal float64
	Expanded bool
	Items    []ItemView
}

// FilterOption is a toolbar filter choice.
type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

// ViewModel is the schedule page payload.
type ViewModel struct {
	PropertyName  string
	BasePath      string
	EasyRead      bool
	OtherMode     string
	FilterOptions []FilterOption
	Sections      []SectionViewModel
	Totals        rentschedule.Totals
}

var filterLabels = []struct {
	value rentschedule.SectionFilter
	label string
}{
	{rentschedule.FilterAll, "Everything"},
	{rentschedule.FilterCore, "Core rent only"},
	{rentschedule.FilterBills, "Bills you pay"},
}

func buildViewModel(doc rentschedule.Document, state *rentschedule.ViewState, views []rentschedule.SectionView, totals rentschedule.Totals) ViewModel {
	easyRead := state.ViewMode == rentschedule.ViewModeEasyRead
	vm := ViewModel{
		PropertyName: doc.PropertyName,
		BasePath:     fmt.Sprintf("/properties/%d/schedule", doc.PropertyID),
		EasyRead:     easyRead,
		OtherMode:    string(rentschedule.ViewModeEasyRead),
		Totals:       totals,
	}
	if easyRead {
		vm.OtherMode = string(rentschedule.ViewModeNormal)
	}

	for _, option := range filterLabels {
		vm.FilterOptions = append(vm.FilterOptions, FilterOption{
			Value:    string(option.value),
			Label:    option.label,
			Selected: state.ShowFilter == option.value,
		})
	}

	for _, view := range views {
		title := view.Section.Title
		if easyRead && view.Section.EasyReadTitle != "" {
			title = view.Section.EasyReadTitle
		}
		section := SectionViewModel{
			ID:       string(view.Section.Type),
			Title:    title,
			Subtotal: view.Section.Subtotal,
			Expanded: view.Expanded,
		}
		for _, item := range view.Items {
			section.Items = append(section.Items, ItemView{
				DisplayItem: item,
				Expanded:    state.ItemExpanded(item.ID),
			})
		}
		vm.Sections = append(vm.Sections, section)
	}
	return vm
}
