package types

import "strconv"

// Filters is the canonical filter record. Numeric bounds are kept as
// strings, mirroring the draft text the UI edits; an empty string or
// false boolean means the field does not constrain results.
type Filters struct {
	Search         string `json:"search" schema:"search"`
	Make           string `json:"make" schema:"make"`
	Model          string `json:"model" schema:"model"`
	YearMin        string `json:"yearMin" schema:"yearMin"`
	YearMax        string `json:"yearMax" schema:"yearMax"`
	PriceMin       string `json:"priceMin" schema:"priceMin"`
	PriceMax       string `json:"priceMax" schema:"priceMax"`
	MileageMax     string `json:"mileageMax" schema:"mileageMax"`
	Condition      string `json:"condition" schema:"condition"`
	CarfaxVerified bool   `json:"carfaxVerified" schema:"carfaxVerified"`
	ReserveMet     bool   `json:"reserveMet" schema:"reserveMet"`
}

// DefaultFilters returns the all-inactive filter state.
func DefaultFilters() Filters {
	return Filters{}
}

// IsDefault reports whether no field constrains results.
func (f Filters) IsDefault() bool {
	return f == Filters{}
}

// Canonical returns a copy with unparsable numeric bounds cleared, so
// stray text in a numeric field deactivates that field instead of
// excluding every car.
func (f Filters) Canonical() Filters {
	clean := func(s string) string {
		if s == "" {
			return ""
		}
		if _, err := strconv.Atoi(s); err != nil {
			return ""
		}
		return s
	}
	f.YearMin = clean(f.YearMin)
	f.YearMax = clean(f.YearMax)
	f.PriceMin = clean(f.PriceMin)
	f.PriceMax = clean(f.PriceMax)
	f.MileageMax = clean(f.MileageMax)
	return f
}

// Clear resets a single field, addressed by its canonical name, to its
// inactive value. Unknown names are ignored.
func (f *Filters) Clear(field string) {
	switch field {
	case "search":
		f.Search = ""
	case "make":
		f.Make = ""
	case "model":
		f.Model = ""
	case "yearMin":
		f.YearMin = ""
	case "yearMax":
		f.YearMax = ""
	case "priceMin":
		f.PriceMin = ""
	case "priceMax":
		f.PriceMax = ""
	case "mileageMax":
		f.MileageMax = ""
	case "condition":
		f.Condition = ""
	case "carfaxVerified":
		f.CarfaxVerified = false
	case "reserveMet":
		f.ReserveMet = false
	}
}
