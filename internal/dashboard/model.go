package dashboard

// WidgetKind identifies a dashboard widget. The set is closed; layouts
// referencing unknown kinds are rejected.
type WidgetKind string

const (
	WidgetOccupancy   WidgetKind = "occupancy"
	WidgetArrears     WidgetKind = "arrears"
	WidgetMaintenance WidgetKind = "maintenance"
	WidgetCompliance  WidgetKind = "compliance"
	WidgetRentSummary WidgetKind = "rent-summary"
	WidgetNotes       WidgetKind = "notes"
)

// WidgetDefinition is the registry entry for one widget kind.
type WidgetDefinition struct {
	Kind    WidgetKind
	Title   string
	Summary string
}

// registry lists every widget in default display order.
var registry = []WidgetDefinition{
	{WidgetOccupancy, "Occupancy", "Current occupancy across all schemes."},
	{WidgetArrears, "Arrears", "Residents behind on weekly charges."},
	{WidgetMaintenance, "Maintenance", "Open repair jobs by priority."},
	{WidgetCompliance, "Compliance", "Fire safety and inspection status."},
	{WidgetRentSummary, "Rent summary", "Weekly rent roll and Housing Benefit split."},
	{WidgetNotes, "Notes", "Handover notes for the next shift."},
}

// KnownKind reports whether k belongs to the widget registry.
func KnownKind(k WidgetKind) bool {
	for _, def := range registry {
		if def.Kind == k {
			return true
		}
	}
	return false
}

// Definition returns the registry entry for k.
func Definition(k WidgetKind) (WidgetDefinition, bool) {
	for _, def := range registry {
		if def.Kind == k {
			return def, true
		}
	}
	return WidgetDefinition{}, false
}

// Placement positions one widget in a user's layout.
type Placement struct {
	Kind     WidgetKind `json:"kind"`
	Position int        `json:"position"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Docked   bool       `json:"docked"`
}

// Layout is a user's ordered widget arrangement.
type Layout struct {
	Placements []Placement `json:"placements"`
}

const (
	minSpan = 1
	maxSpan = 4
)

// DefaultLayout returns the registry order with every widget at standard size.
func DefaultLayout() Layout {
	placements := make([]Placement, 0, len(registry))
	for i, def := range registry {
		placements = append(placements, Placement{
			Kind:     def.Kind,
			Position: i,
			Width:    2,
			Height:   1,
		})
	}
	return Layout{Placements: placements}
}

// Validate rejects layouts with unknown kinds, duplicates or out-of-range
// sizes.
func (l Layout) Validate() error {
	seen := make(map[WidgetKind]struct{}, len(l.Placements))
	for _, p := range l.Placements {
		if !KnownKind(p.Kind) {
			return &LayoutError{Kind: p.Kind, Reason: "unknown widget kind"}
		}
		if _, dup := seen[p.Kind]; dup {
			return &LayoutError{Kind: p.Kind, Reason: "duplicate widget"}
		}
		seen[p.Kind] = struct{}{}
		if p.Width < minSpan || p.Width > maxSpan || p.Height < minSpan || p.Height > maxSpan {
			return &LayoutError{Kind: p.Kind, Reason: "size out of range"}
		}
	}
	return nil
}

// LayoutError describes an invalid widget placement.
type LayoutError struct {
	Kind   WidgetKind
	Reason string
}

func (e *LayoutError) Error() string {
	return "dashboard: widget " + string(e.Kind) + ": " + e.Reason
}
