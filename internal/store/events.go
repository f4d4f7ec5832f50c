package store

// EventType tags a state-change notification.
type EventType string

const (
	EventListings  EventType = "listings"
	EventBid       EventType = "bid"
	EventFilters   EventType = "filters"
	EventSort      EventType = "sort"
	EventAuth      EventType = "auth"
	EventFavorites EventType = "favorites"
	EventSearches  EventType = "searches"
)

// Event notifies watchers that part of the state changed. CarID is set
// for listing- and bid-scoped events.
type Event struct {
	Type  EventType
	CarID string
}

// Watch registers a change listener. The returned cancel function
// removes it; Close cancels all watchers.
func (s *Store) Watch() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextWatcher
	s.nextWatcher++
	ch := make(chan Event, 16)
	s.watchers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ch, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(ch)
		}
	}
	return ch, cancel
}

// broadcast fans the event out to all watchers without blocking; slow
// consumers miss events rather than stall mutations.
func (s *Store) broadcast(evt Event) {
	for _, ch := range s.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}
