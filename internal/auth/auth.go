// Package auth owns credentials and sessions: a salted-hash user
// registry with a fixed administrator bypass, login attempt rate
// limiting, and signed session tokens.
package auth

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/luxeauction/marketplace/configs"
	"github.com/luxeauction/marketplace/pkg/errors"
	"github.com/luxeauction/marketplace/pkg/types"
)

// devAdminPassword seeds the admin hash in dev when none is
// configured, matching the well-known demo credential pair.
const devAdminPassword = "admin123"

type credential struct {
	Name         string
	IsSeller     bool
	PasswordHash string
}

// Manager is the credential registry. The administrator identity is
// configuration, not a row in the user table.
type Manager struct {
	mu         sync.Mutex
	users      map[string]credential
	adminEmail string
	adminHash  string
	secret     []byte
	sessionTTL time.Duration
	loginRate  rate.Limit
	loginBurst int
	limiters   map[string]*rate.Limiter
}

// NewManager builds a Manager from configuration.
func NewManager(cfg *configs.Config) (*Manager, error) {
	adminHash := cfg.Admin.PasswordHash
	if adminHash == "" && cfg.App.Env == "dev" {
		var err error
		adminHash, err = HashPassword(devAdminPassword)
		if err != nil {
			return nil, err
		}
		log.Warn("No admin password hash configured, using dev default")
	}

	perMinute := cfg.Auth.LoginPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	burst := cfg.Auth.LoginBurst
	if burst <= 0 {
		burst = 5
	}
	ttl := time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Manager{
		users:      make(map[string]credential),
		adminEmail: cfg.Admin.Email,
		adminHash:  adminHash,
		secret:     []byte(cfg.Auth.SecretKey),
		sessionTTL: ttl,
		loginRate:  rate.Every(time.Minute / time.Duration(perMinute)),
		loginBurst: burst,
		limiters:   make(map[string]*rate.Limiter),
	}, nil
}

// Register creates a user. Duplicate emails (including the admin
// identity) are rejected; users are never deleted.
func (m *Manager) Register(email, password, name string, isSeller bool) (types.User, error) {
	if email == "" || name == "" {
		return types.User{}, errors.New(errors.ErrInvalidCredentials, "email and name are required")
	}
	if email == m.adminEmail {
		return types.User{}, errors.New(errors.ErrDuplicateEmail, "email is already registered")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return types.User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[email]; exists {
		return types.User{}, errors.New(errors.ErrDuplicateEmail, "email is already registered")
	}
	m.users[email] = credential{Name: name, IsSeller: isSeller, PasswordHash: hash}

	log.Debugf("Registered user %s", email)
	return types.User{Email: email, Name: name, IsSeller: isSeller}, nil
}

// Login verifies credentials and returns the authenticated identity.
// The administrator pair bypasses the user table entirely.
func (m *Manager) Login(email, password string) (types.User, error) {
	if !m.limiter(email).Allow() {
		log.Warnf("Login rate limit exceeded for %s", email)
		return types.User{}, errors.New(errors.ErrRateLimited, "too many login attempts")
	}

	if email == m.adminEmail {
		if m.adminHash == "" || !VerifyPassword(m.adminHash, password) {
			return types.User{}, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
		}
		return types.User{Email: m.adminEmail, Name: "Administrator", IsSeller: true, IsAdmin: true}, nil
	}

	m.mu.Lock()
	cred, exists := m.users[email]
	m.mu.Unlock()

	if !exists || !VerifyPassword(cred.PasswordHash, password) {
		return types.User{}, errors.New(errors.ErrInvalidCredentials, "invalid email or password")
	}
	return types.User{Email: email, Name: cred.Name, IsSeller: cred.IsSeller}, nil
}

func (m *Manager) limiter(email string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.limiters[email]
	if !ok {
		l = rate.NewLimiter(m.loginRate, m.loginBurst)
		m.limiters[email] = l
	}
	return l
}
