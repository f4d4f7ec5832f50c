// Package filter holds the pure predicate evaluator and sort selector
// over car listings. Nothing in here mutates its inputs.
package filter

import (
	"strconv"
	"strings"

	"github.com/luxeauction/marketplace/pkg/types"
)

// Match reports whether the car passes every active field of the
// filter. Inactive fields (empty strings, false booleans, unparsable
// numeric bounds) never constrain the result.
func Match(car types.Car, f types.Filters) bool {
	if f.Search != "" {
		s := strings.ToLower(f.Search)
		matches := strings.Contains(strings.ToLower(car.Make), s) ||
			strings.Contains(strings.ToLower(car.Model), s) ||
			strings.Contains(strings.ToLower(car.VIN), s) ||
			strings.Contains(strings.ToLower(car.Description), s) ||
			strings.Contains(strings.ToLower(car.SellerName), s) ||
			strings.Contains(strconv.Itoa(car.Year), s)
		if !matches {
			return false
		}
	}
	if f.Make != "" && !strings.Contains(strings.ToLower(car.Make), strings.ToLower(f.Make)) {
		return false
	}
	if f.Model != "" && !strings.Contains(strings.ToLower(car.Model), strings.ToLower(f.Model)) {
		return false
	}
	if min, ok := bound(f.YearMin); ok && car.Year < min {
		return false
	}
	if max, ok := bound(f.YearMax); ok && car.Year > max {
		return false
	}
	if min, ok := bound(f.PriceMin); ok && car.CurrentBid < min {
		return false
	}
	if max, ok := bound(f.PriceMax); ok && car.CurrentBid > max {
		return false
	}
	if max, ok := bound(f.MileageMax); ok && car.Mileage > max {
		return false
	}
	if f.Condition != "" && car.Condition != f.Condition {
		return false
	}
	if f.CarfaxVerified && !car.CarfaxVerified {
		return false
	}
	if f.ReserveMet && !car.ReserveMet() {
		return false
	}
	return true
}

// FilterCars returns the cars passing every active filter field. With
// an all-default filter the input slice is returned unchanged, which
// keeps derived views referentially stable.
func FilterCars(cars []types.Car, f types.Filters) []types.Car {
	if f.IsDefault() {
		return cars
	}
	filtered := make([]types.Car, 0, len(cars))
	for _, car := range cars {
		if Match(car, f) {
			filtered = append(filtered, car)
		}
	}
	return filtered
}

// bound parses a numeric filter bound. Empty or unparsable text means
// the bound is inactive.
func bound(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
