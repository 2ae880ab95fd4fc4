package properties

import "time"

// Property is a supported-housing scheme managed in the hub.
type Property struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	SchemeType string    `json:"scheme_type"`
	Address    string    `json:"address"`
	Units      int       `json:"units"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListFilters narrows and pages property listings.
type ListFilters struct {
	Search  string
	Page    int
	PerPage int
}
