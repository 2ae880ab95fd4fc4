package rentschedule

// SectionType identifies one of the three fixed schedule sections.
type SectionType string

const (
	SectionCoreRent        SectionType = "coreRent"
	SectionEligibleCharges SectionType = "eligibleServiceCharges"
	SectionIneligible      SectionType = "ineligibleServices"
)

// SectionTypes lists the sections in canonical display order.
var SectionTypes = []SectionType{SectionCoreRent, SectionEligibleCharges, SectionIneligible}

// Category tags a line item with the kind of charge it represents. The set is
// closed so grouping rules can be checked against it at construction time.
type Category string

const (
	CategoryRent             Category = "rent"
	CategoryManagement       Category = "management"
	CategoryMaintenance      Category = "maintenance"
	CategoryVoidCover        Category = "void-cover"
	CategoryCleaning         Category = "cleaning"
	CategoryGardening        Category = "gardening"
	CategoryFireSafety       Category = "fire-safety"
	CategorySecurity         Category = "security"
	CategoryPestControl      Category = "pest-control"
	CategoryLaundry          Category = "laundry"
	CategoryCommunalUtility  Category = "communal-utilities"
	CategoryHeating          Category = "heating"
	CategoryWater            Category = "water"
	CategoryElectricity      Category = "electricity"
	CategoryWaterRates       Category = "water-rates"
	CategoryCatering         Category = "catering"
)

var knownCategories = map[Category]struct{}{
	CategoryRent:            {},
	CategoryManagement:      {},
	CategoryMaintenance:     {},
	CategoryVoidCover:       {},
	CategoryCleaning:        {},
	CategoryGardening:       {},
	CategoryFireSafety:      {},
	CategorySecurity:        {},
	CategoryPestControl:     {},
	CategoryLaundry:         {},
	CategoryCommunalUtility: {},
	CategoryHeating:         {},
	CategoryWater:           {},
	CategoryElectricity:     {},
	CategoryWaterRates:      {},
	CategoryCatering:        {},
}

// KnownCategory reports whether c belongs to the closed category set.
func KnownCategory(c Category) bool {
	_, ok := knownCategories[c]
	return ok
}

// LineItem is a single weekly charge within a section. Items are immutable
// display data once a document has been built.
type LineItem struct {
	ID                  string   `json:"id"`
	Label               string   `json:"label"`
	Amount              float64  `json:"amount"`
	Description         string   `json:"description"`
	EasyReadDescription string   `json:"easy_read_description"`
	Category            Category `json:"category"`
	Calculation         string   `json:"calculation,omitempty"`
	IsVoidCover         bool     `json:"is_void_cover,omitempty"`
	VoidPercentage      float64  `json:"void_percentage,omitempty"`
}

// Section groups the line items of one charge class.
type Section struct {
	ID            SectionType `json:"id"`
	Type          SectionType `json:"type"`
	Title         string      `json:"title"`
	EasyReadTitle string      `json:"easy_read_title"`
	Items         []LineItem  `json:"items"`
	Subtotal      float64     `json:"subtotal"`
}

// Totals holds the weekly rent breakdown and the Housing Benefit split.
type Totals struct {
	CoreRentWeekly       float64 `json:"core_rent_weekly"`
	ServiceChargesWeekly float64 `json:"service_charges_weekly"`
	IneligibleWeekly     float64 `json:"ineligible_weekly"`
	GrossWeeklyRent      float64 `json:"gross_weekly_rent"`
	EligibleForHB        float64 `json:"eligible_for_hb"`
	IneligibleForHB      float64 `json:"ineligible_for_hb"`
}

// Document is a complete rent schedule for one property. It always carries
// exactly three sections, in canonical order.
type Document struct {
	PropertyID   int64   `json:"property_id"`
	PropertyName string  `json:"property_name"`
	Sections     Sections `json:"sections"`
	Totals       Totals   `json:"totals"`
}

// Sections holds the three fixed sections of a document.
type Sections struct {
	CoreRent        Section `json:"core_rent"`
	EligibleCharges Section `json:"eligible_service_charges"`
	Ineligible      Section `json:"ineligible_services"`
}

// All returns the sections in canonical order.
func (s Sections) All() []Section {
	return []Section{s.CoreRent, s.EligibleCharges, s.Ineligible}
}

// ByType returns the section matching t.
func (s Sections) ByType(t SectionType) (Section, bool) {
	switch t {
	case SectionCoreRent:
		return s.CoreRent, true
	case SectionEligibleCharges:
		return s.EligibleCharges, true
	case SectionIneligible:
		return s.Ineligible, true
	}
	return Section{}, false
}

// DisplayItem is the render-ready projection of a line item. In simple view
// several source items may be merged into one grouped entry; grouped entries
// carry no category and are rebuilt from the raw list on every render.
type DisplayItem struct {
	ID                  string   `json:"id"`
	Label               string   `json:"label"`
	Amount              float64  `json:"amount"`
	Description         string   `json:"description"`
	EasyReadDescription string   `json:"easy_read_description,omitempty"`
	Calculation         string   `json:"calculation,omitempty"`
	IsGrouped           bool     `json:"is_grouped"`
	GroupedFrom         []string `json:"grouped_from,omitempty"`
}
