package store

import (
	"github.com/luxeauction/marketplace/internal/filter"
	"github.com/luxeauction/marketplace/pkg/errors"
	"github.com/luxeauction/marketplace/pkg/types"
)

// ToggleFavorite adds the car id to the active owner's favorites if
// absent, removes it if present, and persists immediately.
func (s *Store) ToggleFavorite(carID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, len(s.favorites)+1)
	removed := false
	for _, id := range s.favorites {
		if id == carID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, carID)
	}
	s.favorites = kept
	s.persistFavorites()
	s.broadcast(Event{Type: EventFavorites, CarID: carID})
}

// IsFavorited reports whether the car is in the active owner's
// favorites.
func (s *Store) IsFavorited(carID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.favorites {
		if id == carID {
			return true
		}
	}
	return false
}

// Favorites returns the active owner's favorites in insertion order.
func (s *Store) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// SaveSearch stores a named filter snapshot for the active owner,
// overwriting any search with the same name.
func (s *Store) SaveSearch(name string, snapshot types.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]types.SavedSearch, 0, len(s.searches)+1)
	for _, search := range s.searches {
		if search.Name != name {
			kept = append(kept, search)
		}
	}
	s.searches = append(kept, types.SavedSearch{Name: name, Filters: snapshot})
	s.persistSearches()
	s.broadcast(Event{Type: EventSearches})
}

// DeleteSavedSearch removes a saved search by name.
func (s *Store) DeleteSavedSearch(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]types.SavedSearch, 0, len(s.searches))
	found := false
	for _, search := range s.searches {
		if search.Name == name {
			found = true
			continue
		}
		kept = append(kept, search)
	}
	if !found {
		return errors.New(errors.ErrSearchNotFound, "saved search not found")
	}
	s.searches = kept
	s.persistSearches()
	s.broadcast(Event{Type: EventSearches})
	return nil
}

// LoadSavedSearch makes a saved search's snapshot the canonical filter
// state.
func (s *Store) LoadSavedSearch(name string) error {
	s.mu.Lock()
	var snapshot *types.Filters
	for i := range s.searches {
		if s.searches[i].Name == name {
			snapshot = &s.searches[i].Filters
			break
		}
	}
	if snapshot == nil {
		s.mu.Unlock()
		return errors.New(errors.ErrSearchNotFound, "saved search not found")
	}
	loaded := *snapshot
	s.mu.Unlock()

	s.SetFilters(loaded)
	return nil
}

// SavedSearches returns the active owner's saved searches.
func (s *Store) SavedSearches() []types.SavedSearch {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.SavedSearch, len(s.searches))
	copy(out, s.searches)
	return out
}

// SetFilters commits a new canonical filter state. Persistence to the
// local store and URL happens after the debounce window; the filtered
// view updates immediately.
func (s *Store) SetFilters(f types.Filters) {
	s.mu.Lock()
	s.filters = f
	s.broadcast(Event{Type: EventFilters})
	s.mu.Unlock()

	s.debounce.trigger(s.persistFilters)
}

// ResetFilters restores the all-inactive filter state.
func (s *Store) ResetFilters() {
	s.SetFilters(types.DefaultFilters())
}

// ClearFilterField resets one field, addressed by its canonical name.
func (s *Store) ClearFilterField(field string) {
	s.mu.Lock()
	f := s.filters
	s.mu.Unlock()

	f.Clear(field)
	s.SetFilters(f)
}

// Filters returns the canonical filter state.
func (s *Store) Filters() types.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters
}

// SetSortBy changes the sort key. The key persists immediately, not
// debounced, and is never written back to the URL.
func (s *Store) SetSortBy(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sortBy = key
	s.persistSort()
	s.broadcast(Event{Type: EventSort})
}

// SortBy returns the active sort key.
func (s *Store) SortBy() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortBy
}

// FilteredCars is the derived view driving listing pages: all cars
// passing the canonical filters, ordered by the active sort key. The
// listings are copied under the lock so the evaluation never reads
// elements a concurrent mutation is writing.
func (s *Store) FilteredCars() []types.Car {
	s.mu.Lock()
	cars := make([]types.Car, len(s.cars))
	copy(cars, s.cars)
	f := s.filters.Canonical()
	key := s.sortBy
	s.mu.Unlock()

	return filter.ApplySort(filter.FilterCars(cars, f), key)
}
