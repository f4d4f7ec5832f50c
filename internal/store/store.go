// Package store is the single source of truth for marketplace state:
// listings, bid logs, identities, favorites, saved searches and the
// canonical filter state. Every mutation goes through a method here;
// derived views (filtered listings, owner-scoped favorites) are read
// back out through queries.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/luxeauction/marketplace/configs"
	"github.com/luxeauction/marketplace/internal/auth"
	"github.com/luxeauction/marketplace/internal/filter"
	"github.com/luxeauction/marketplace/internal/storage"
	"github.com/luxeauction/marketplace/internal/urlstate"
	"github.com/luxeauction/marketplace/pkg/types"
)

// Store owns all marketplace state. It is safe for use from multiple
// goroutines, though the expected shape is a single consuming view
// loop plus the debounce timer.
type Store struct {
	mu    sync.Mutex
	cfg   *configs.Config
	auth  *auth.Manager
	local storage.LocalStore
	urls  urlstate.URLState

	cars  []types.Car
	bids  map[string][]types.Bid
	now   func() time.Time

	current *types.User
	session string

	favorites []string
	searches  []types.SavedSearch

	filters types.Filters
	sortBy  string

	debounce    *debouncer
	watchers    map[int]chan Event
	nextWatcher int
	closed      bool
}

// New builds a Store on top of its collaborators and loads the initial
// state: filters from the URL (which wins) or the local store, the
// persisted sort key, and the guest owner scope. The local store's
// lifecycle stays with the caller.
func New(cfg *configs.Config, authMgr *auth.Manager, local storage.LocalStore, urls urlstate.URLState) *Store {
	debounceWindow := time.Duration(cfg.Persistence.DebounceMs) * time.Millisecond
	if debounceWindow <= 0 {
		debounceWindow = 350 * time.Millisecond
	}

	s := &Store{
		cfg:      cfg,
		auth:     authMgr,
		local:    local,
		urls:     urls,
		bids:     make(map[string][]types.Bid),
		now:      time.Now,
		sortBy:   filter.SortTimeLeft,
		filters:  types.DefaultFilters(),
		debounce: newDebouncer(debounceWindow),
		watchers: make(map[int]chan Event),
	}

	if cfg.App.Seed {
		s.cars = SampleListings(s.now())
	}
	s.loadInitialFilters()
	s.loadScope(storage.GuestOwner)
	return s
}

// Close cancels any pending debounced write and detaches all watchers.
// Pending edits inside the debounce window are dropped, not flushed.
func (s *Store) Close() {
	s.debounce.stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.watchers {
		delete(s.watchers, id)
		close(ch)
	}
}

// Login authenticates, establishes a session token, and switches the
// owner scope to the new identity.
func (s *Store) Login(email, password string) (types.User, error) {
	user, err := s.auth.Login(email, password)
	if err != nil {
		return types.User{}, err
	}

	session, err := s.auth.IssueSession(user)
	if err != nil {
		log.Debugf("Session token not issued: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &user
	s.session = session
	s.loadScope(storage.OwnerKey(user.Email))
	s.broadcast(Event{Type: EventAuth})

	log.Infof("User %s logged in", user.Email)
	return user, nil
}

// Register creates the account and logs it straight in, as the UI
// does.
func (s *Store) Register(email, password, name string, isSeller bool) (types.User, error) {
	user, err := s.auth.Register(email, password, name, isSeller)
	if err != nil {
		return types.User{}, err
	}

	session, err := s.auth.IssueSession(user)
	if err != nil {
		log.Debugf("Session token not issued: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &user
	s.session = session
	s.loadScope(storage.OwnerKey(user.Email))
	s.broadcast(Event{Type: EventAuth})
	return user, nil
}

// Logout drops the identity and reloads the guest owner scope.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		log.Infof("User %s logged out", s.current.Email)
	}
	s.current = nil
	s.session = ""
	s.loadScope(storage.GuestOwner)
	s.broadcast(Event{Type: EventAuth})
}

// CurrentUser returns the authenticated identity, if any.
func (s *Store) CurrentUser() (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.User{}, false
	}
	return *s.current, true
}

// SessionToken returns the signed token for the active session, or ""
// when logged out.
func (s *Store) SessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session
}

// ownerKey is the active persistence scope. Callers must hold s.mu.
func (s *Store) ownerKey() string {
	if s.current == nil {
		return storage.GuestOwner
	}
	return storage.OwnerKey(s.current.Email)
}

func (s *Store) ctx() context.Context {
	return context.Background()
}
