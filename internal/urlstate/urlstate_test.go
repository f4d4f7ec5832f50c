package urlstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxeauction/marketplace/pkg/types"
)

func TestEncodeFiltersDropsDefaults(t *testing.T) {
	values, err := EncodeFilters(types.Filters{
		Make:       "porsche",
		PriceMax:   "120000",
		ReserveMet: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "porsche", values.Get("make"))
	assert.Equal(t, "120000", values.Get("priceMax"))
	assert.Equal(t, "true", values.Get("reserveMet"))

	// inactive fields stay out of the URL entirely
	assert.False(t, values.Has("search"))
	assert.False(t, values.Has("yearMin"))
	assert.False(t, values.Has("carfaxVerified"))
}

func TestEncodeKeepsLiteralFalseText(t *testing.T) {
	values, err := EncodeFilters(types.Filters{
		Search:    "false",
		Condition: "false",
	})
	require.NoError(t, err)

	// only the boolean fields drop on "false"; text fields holding the
	// literal word are active filters
	assert.Equal(t, "false", values.Get("search"))
	assert.Equal(t, "false", values.Get("condition"))
	assert.False(t, values.Has("carfaxVerified"))
	assert.False(t, values.Has("reserveMet"))
}

func TestEncodeDefaultFiltersIsEmpty(t *testing.T) {
	values, err := EncodeFilters(types.DefaultFilters())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestDecodeFilters(t *testing.T) {
	values := url.Values{}
	values.Set("make", "bmw")
	values.Set("carfaxVerified", "true")
	values.Set("utm_source", "newsletter") // unknown keys are ignored

	f, hasAny, err := DecodeFilters(values, types.DefaultFilters())
	require.NoError(t, err)
	assert.True(t, hasAny)
	assert.Equal(t, "bmw", f.Make)
	assert.True(t, f.CarfaxVerified)
	assert.Equal(t, "", f.Search)
}

func TestDecodeWithoutFilterKeysReturnsDefaults(t *testing.T) {
	values := url.Values{}
	values.Set("sort", "priceHigh")

	defaults := types.Filters{Make: "stored"}
	f, hasAny, err := DecodeFilters(values, defaults)
	require.NoError(t, err)
	assert.False(t, hasAny)
	assert.Equal(t, defaults, f)
	assert.Equal(t, "priceHigh", SortKey(values))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := types.Filters{
		Search:         "911",
		YearMin:        "2020",
		MileageMax:     "10000",
		Condition:      "Excellent",
		CarfaxVerified: true,
	}

	values, err := EncodeFilters(original)
	require.NoError(t, err)

	got, hasAny, err := DecodeFilters(values, types.DefaultFilters())
	require.NoError(t, err)
	assert.True(t, hasAny)
	assert.Equal(t, original, got)
}

func TestMemoryURL(t *testing.T) {
	m := NewMemoryURL("make=porsche&sort=mileage")

	values := m.Read()
	assert.Equal(t, "porsche", values.Get("make"))
	assert.Equal(t, "mileage", SortKey(values))

	next := url.Values{}
	next.Set("model", "amg")
	m.Replace(next)

	assert.Equal(t, "model=amg", m.RawQuery())
	assert.Equal(t, "amg", m.Read().Get("model"))
	assert.False(t, m.Read().Has("make"))
}

func TestMemoryURLMalformedQueryDegrades(t *testing.T) {
	m := NewMemoryURL("%zz=bad")
	assert.Empty(t, m.Read())
}
