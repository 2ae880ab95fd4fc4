package rentschedule

// ViewMode selects the rendering pipeline for a schedule viewer.
type ViewMode string

const (
	ViewModeNormal   ViewMode = "normal"
	ViewModeEasyRead ViewMode = "easyRead"
)

// SectionFilter narrows which sections a viewer renders. There is no value
// isolating the eligible service charges section alone; the three values mirror
// the toolbar exactly.
type SectionFilter string

const (
	FilterAll   SectionFilter = "all"
	FilterCore  SectionFilter = "core"
	FilterBills SectionFilter = "bills"
)

// ViewState holds the per-viewer display state. One instance exists per open
// viewer; it never outlives the viewer and never touches the document itself.
type ViewState struct {
	ViewMode         ViewMode             `json:"view_mode"`
	ShowFilter       SectionFilter        `json:"show_filter"`
	ExpandedSections map[SectionType]bool `json:"expanded_sections"`
	ExpandedItems    map[string]bool      `json:"expanded_items"`
	ActiveTooltip    string               `json:"active_tooltip,omitempty"`
}

// NewViewState returns the initial state: normal mode, every section expanded,
// no expanded items, no tooltip, no filter.
func NewViewState() *ViewState {
	expanded := make(map[SectionType]bool, len(SectionTypes))
	for _, t := range SectionTypes {
		expanded[t] = true
	}
	return &ViewState{
		ViewMode:         ViewModeNormal,
		ShowFilter:       FilterAll,
		ExpandedSections: expanded,
		ExpandedItems:    make(map[string]bool),
	}
}

// SetViewMode overwrites the view mode. Expansion state survives mode changes.
func (v *ViewState) SetViewMode(mode ViewMode) {
	switch mode {
	case ViewModeNormal, ViewModeEasyRead:
		v.ViewMode = mode
	}
}

// SetShowFilter overwrites the section filter.
func (v *ViewState) SetShowFilter(filter SectionFilter) {
	switch filter {
	case FilterAll, FilterCore, FilterBills:
		v.ShowFilter = filter
	}
}

// ToggleSection flips a section's expansion: present becomes absent and back.
// Toggling twice restores the original state.
func (v *ViewState) ToggleSection(id SectionType) {
	if v.ExpandedSections == nil {
		v.ExpandedSections = make(map[SectionType]bool)
	}
	if v.ExpandedSections[id] {
		delete(v.ExpandedSections, id)
		return
	}
	v.ExpandedSections[id] = true
}

// ToggleItem flips a line item's expansion.
func (v *ViewState) ToggleItem(id string) {
	if v.ExpandedItems == nil {
		v.ExpandedItems = make(map[string]bool)
	}
	if v.ExpandedItems[id] {
		delete(v.ExpandedItems, id)
		return
	}
	v.ExpandedItems[id] = true
}

// SectionExpanded reports whether a section is expanded.
func (v *ViewState) SectionExpanded(id SectionType) bool {
	return v.ExpandedSections != nil && v.ExpandedSections[id]
}

// ItemExpanded reports whether a line item is expanded.
func (v *ViewState) ItemExpanded(id string) bool {
	return v.ExpandedItems != nil && v.ExpandedItems[id]
}

// SetTooltip activates the tooltip for an item, replacing any active one.
func (v *ViewState) SetTooltip(itemID string) {
	v.ActiveTooltip = itemID
}

// ClearTooltip dismisses the active tooltip.
func (v *ViewState) ClearTooltip() {
	v.ActiveTooltip = ""
}

// VisibleSections resolves the filter to the section types to render, in
// canonical order.
func (v *ViewState) VisibleSections() []SectionType {
	switch v.ShowFilter {
	case FilterCore:
		return []SectionType{SectionCoreRent}
	case FilterBills:
		return []SectionType{SectionIneligible}
	default:
		return SectionTypes
	}
}
