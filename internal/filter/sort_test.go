package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luxeauction/marketplace/pkg/types"
)

func TestApplySortPreservesElements(t *testing.T) {
	cars := testCars()
	for _, key := range []string{SortTimeLeft, SortPriceLow, SortPriceHigh, SortMileage, SortNewest, "bogus"} {
		got := ApplySort(cars, key)
		assert.Len(t, got, len(cars), "key %s", key)
		assert.ElementsMatch(t, cars, got, "key %s", key)
	}
}

func TestApplySortDoesNotMutateInput(t *testing.T) {
	cars := testCars()
	before := make([]types.Car, len(cars))
	copy(before, cars)

	ApplySort(cars, SortPriceHigh)
	assert.Equal(t, before, cars)
}

func TestApplySortIdempotentOrdering(t *testing.T) {
	cars := testCars()
	for _, key := range []string{SortTimeLeft, SortPriceLow, SortPriceHigh, SortMileage, SortNewest} {
		once := ApplySort(cars, key)
		twice := ApplySort(once, key)
		assert.Equal(t, once, twice, "key %s", key)
	}
}

func TestSortKeys(t *testing.T) {
	cars := testCars()

	tests := []struct {
		key  string
		want []string
	}{
		{SortPriceLow, []string{"2", "1", "3"}},
		{SortPriceHigh, []string{"3", "1", "2"}},
		{SortMileage, []string{"2", "1", "3"}},
		{SortNewest, []string{"3", "2", "1"}},
		{SortTimeLeft, []string{"1", "2", "3"}},
		{"unknown falls back to timeLeft", []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplySort(cars, tt.key)))
		})
	}
}

// "newest" prefers numeric ids descending, but falls back to end time
// descending as soon as either id is non-numeric.
func TestSortNewestFallsBackToEndTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cars := []types.Car{
		{ID: "b9c7e1f0-1111-4a7e-9c1d-000000000001", EndTime: base.Add(1 * time.Hour)},
		{ID: "b9c7e1f0-1111-4a7e-9c1d-000000000002", EndTime: base.Add(3 * time.Hour)},
		{ID: "b9c7e1f0-1111-4a7e-9c1d-000000000003", EndTime: base.Add(2 * time.Hour)},
	}

	got := ApplySort(cars, SortNewest)
	assert.Equal(t, []string{
		"b9c7e1f0-1111-4a7e-9c1d-000000000002",
		"b9c7e1f0-1111-4a7e-9c1d-000000000003",
		"b9c7e1f0-1111-4a7e-9c1d-000000000001",
	}, ids(got))
}

// Equal keys keep their incoming relative order.
func TestSortIsStable(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cars := []types.Car{
		{ID: "a", CurrentBid: 500, EndTime: base},
		{ID: "b", CurrentBid: 500, EndTime: base},
		{ID: "c", CurrentBid: 500, EndTime: base},
		{ID: "d", CurrentBid: 400, EndTime: base},
	}

	got := ApplySort(cars, SortPriceLow)
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(got))
}
