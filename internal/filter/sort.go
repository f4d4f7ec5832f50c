package filter

import (
	"sort"
	"strconv"

	"github.com/luxeauction/marketplace/pkg/types"
)

// Sort keys accepted by ApplySort. Anything else falls back to
// SortTimeLeft.
const (
	SortTimeLeft  = "timeLeft"
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
	SortMileage   = "mileage"
	SortNewest    = "newest"
)

// ApplySort returns a new ordering of cars under the given sort key.
// The input slice is never mutated and equal keys keep their relative
// order.
func ApplySort(cars []types.Car, key string) []types.Car {
	sorted := make([]types.Car, len(cars))
	copy(sorted, cars)

	switch key {
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CurrentBid < sorted[j].CurrentBid
		})
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CurrentBid > sorted[j].CurrentBid
		})
	case SortMileage:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Mileage < sorted[j].Mileage
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			a, aerr := strconv.Atoi(sorted[i].ID)
			b, berr := strconv.Atoi(sorted[j].ID)
			if aerr == nil && berr == nil {
				return b < a
			}
			return sorted[j].EndTime.Before(sorted[i].EndTime)
		})
	default: // timeLeft: ascending remaining time == ascending end time
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EndTime.Before(sorted[j].EndTime)
		})
	}
	return sorted
}
