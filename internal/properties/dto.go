package properties

// PropertyForm carries create/update form input.
type PropertyForm struct {
	Code       string `validate:"required,max=16"`
	Name       string `validate:"required,max=120"`
	SchemeType string `validate:"required,max=60"`
	Address    string `validate:"max=240"`
	Units      int    `validate:"gte=1,lte=500"`
	Notes      string `validate:"max=2000"`
}
