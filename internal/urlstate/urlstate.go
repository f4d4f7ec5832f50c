// Package urlstate bridges the canonical filter state and a shareable
// URL query string. Only non-default fields are written so links stay
// short; booleans appear only when true.
package urlstate

import (
	"net/url"
	"sync"

	"github.com/gorilla/schema"

	"github.com/luxeauction/marketplace/pkg/types"
)

// SortParam is the query parameter carrying the initial sort key.
const SortParam = "sort"

// filterParams is the set of recognized filter keys. Presence of any
// of them in a URL gives the URL priority over stored filters.
var filterParams = []string{
	"search", "make", "model",
	"yearMin", "yearMax", "priceMin", "priceMax", "mileageMax",
	"condition", "carfaxVerified", "reserveMet",
}

var (
	encoder = schema.NewEncoder()
	decoder = newDecoder()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// URLState is the address-bar surface: Read returns the current query
// parameters and Replace rewrites them without creating a history
// entry.
type URLState interface {
	Read() url.Values
	Replace(url.Values)
}

// MemoryURL is an in-process URLState holding a single query string.
type MemoryURL struct {
	mu       sync.Mutex
	rawQuery string
}

// NewMemoryURL creates a MemoryURL seeded with the given query string
// (without the leading "?").
func NewMemoryURL(rawQuery string) *MemoryURL {
	return &MemoryURL{rawQuery: rawQuery}
}

// Read parses and returns the current query parameters. A malformed
// query degrades to no parameters.
func (m *MemoryURL) Read() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()

	values, err := url.ParseQuery(m.rawQuery)
	if err != nil {
		return url.Values{}
	}
	return values
}

// Replace rewrites the query string in place.
func (m *MemoryURL) Replace(values url.Values) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rawQuery = values.Encode()
}

// RawQuery returns the current encoded query string.
func (m *MemoryURL) RawQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.rawQuery
}

// boolParams are the keys where "false" is the default; only these
// drop on that value, so a text field holding the literal word stays.
var boolParams = map[string]bool{
	"carfaxVerified": true,
	"reserveMet":     true,
}

// EncodeFilters serializes filters to query parameters, dropping
// default values.
func EncodeFilters(f types.Filters) (url.Values, error) {
	values := url.Values{}
	if err := encoder.Encode(&f, values); err != nil {
		return nil, err
	}
	for key, vs := range values {
		if len(vs) == 0 || vs[0] == "" || (boolParams[key] && vs[0] == "false") {
			delete(values, key)
		}
	}
	return values, nil
}

// DecodeFilters reads filters from query parameters on top of the
// given defaults. hasAny reports whether any recognized filter key was
// present at all.
func DecodeFilters(values url.Values, defaults types.Filters) (f types.Filters, hasAny bool, err error) {
	for _, key := range filterParams {
		if values.Has(key) {
			hasAny = true
			break
		}
	}
	if !hasAny {
		return defaults, false, nil
	}

	f = defaults
	if err := decoder.Decode(&f, values); err != nil {
		return defaults, true, err
	}
	return f, true, nil
}

// SortKey extracts the sort parameter, or "" when absent.
func SortKey(values url.Values) string {
	return values.Get(SortParam)
}
