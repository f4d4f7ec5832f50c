package store

import (
	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/luxeauction/marketplace/internal/storage"
	"github.com/luxeauction/marketplace/internal/urlstate"
	"github.com/luxeauction/marketplace/pkg/types"
)

// Persistence failure policy: every storage or URL read/write failure
// is swallowed and the session degrades to in-memory state. Failures
// are logged at debug level only.

// loadInitialFilters reads the starting filter and sort state. URL
// parameters win over stored filters whenever any recognized filter
// key is present; defaults fill every gap.
func (s *Store) loadInitialFilters() {
	values := s.urls.Read()

	f, fromURL, err := urlstate.DecodeFilters(values, types.DefaultFilters())
	if err != nil {
		log.Debugf("Ignoring malformed URL filters: %v", err)
		f, fromURL = types.DefaultFilters(), false
	}
	if !fromURL {
		if raw, err := s.local.Get(s.ctx(), storage.KeyFilters); err == nil {
			stored := types.DefaultFilters()
			if err := json.Unmarshal(raw, &stored); err == nil {
				f = stored
			} else {
				log.Debugf("Ignoring malformed stored filters: %v", err)
			}
		}
	}
	s.filters = f

	if key := urlstate.SortKey(values); key != "" {
		s.sortBy = key
	} else if raw, err := s.local.Get(s.ctx(), storage.KeySort); err == nil && len(raw) > 0 {
		s.sortBy = string(raw)
	}
}

// loadScope replaces the in-memory favorites and saved searches with
// the given owner's persisted lists. Favorites referencing deleted
// listings are pruned here and the pruned list written back, so stale
// ids from deletions under other scopes never surface. Callers must
// hold s.mu (or be the constructor).
func (s *Store) loadScope(owner string) {
	s.favorites = nil
	s.searches = nil

	if raw, err := s.local.Get(s.ctx(), storage.FavoritesKey(owner)); err == nil {
		var favorites []string
		if err := json.Unmarshal(raw, &favorites); err != nil {
			log.Debugf("Ignoring malformed favorites for %s: %v", owner, err)
		} else {
			kept := make([]string, 0, len(favorites))
			for _, id := range favorites {
				if s.carIndex(id) >= 0 {
					kept = append(kept, id)
				}
			}
			s.favorites = kept
			if len(kept) != len(favorites) {
				log.Debugf("Pruned %d stale favorites for %s", len(favorites)-len(kept), owner)
				s.writeJSON(storage.FavoritesKey(owner), kept)
			}
		}
	}

	if raw, err := s.local.Get(s.ctx(), storage.SavedSearchesKey(owner)); err == nil {
		var searches []types.SavedSearch
		if err := json.Unmarshal(raw, &searches); err != nil {
			log.Debugf("Ignoring malformed saved searches for %s: %v", owner, err)
		} else {
			s.searches = searches
		}
	}
}

// persistFilters writes the canonical filters to the local store and
// rewrites the URL query with only non-default values. Runs from the
// debounce timer.
func (s *Store) persistFilters() {
	s.mu.Lock()
	f := s.filters
	s.mu.Unlock()

	s.writeJSON(storage.KeyFilters, f)

	values, err := urlstate.EncodeFilters(f)
	if err != nil {
		log.Debugf("Failed to encode filters for URL: %v", err)
		return
	}
	s.urls.Replace(values)
}

// persistSort stores the sort key as a plain string. Callers must
// hold s.mu.
func (s *Store) persistSort() {
	if err := s.local.Set(s.ctx(), storage.KeySort, []byte(s.sortBy)); err != nil {
		log.Debugf("Failed to persist sort key: %v", err)
	}
}

// persistFavorites writes the active owner's favorites. Callers must
// hold s.mu.
func (s *Store) persistFavorites() {
	s.writeJSON(storage.FavoritesKey(s.ownerKey()), s.favorites)
}

// persistSearches writes the active owner's saved searches. Callers
// must hold s.mu.
func (s *Store) persistSearches() {
	s.writeJSON(storage.SavedSearchesKey(s.ownerKey()), s.searches)
}

func (s *Store) writeJSON(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Debugf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := s.local.Set(s.ctx(), key, raw); err != nil {
		log.Debugf("Failed to persist %s: %v", key, err)
	}
}
