package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxeauction/marketplace/configs"
	"github.com/luxeauction/marketplace/pkg/errors"
)

func testConfig() *configs.Config {
	cfg := configs.Default()
	cfg.Auth.SecretKey = "test-secret"
	return cfg
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotContains(t, hash, "hunter2")

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))

	// hashing is salted, two hashes of the same password differ
	other, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	assert.False(t, VerifyPassword("", "pw"))
	assert.False(t, VerifyPassword("plaintext", "plaintext"))
	assert.False(t, VerifyPassword("pbkdf2-sha256$nope$x$y", "pw"))
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Equal(t, errors.ErrInvalidCredentials, errors.Code(err))
}

func TestRegisterAndLogin(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	user, err := m.Register("a@x.com", "pw", "Alice", true)
	require.NoError(t, err)
	assert.True(t, user.IsSeller)
	assert.False(t, user.IsAdmin)

	// duplicate email is rejected regardless of the other fields
	_, err = m.Register("a@x.com", "pw2", "Bob", false)
	assert.Equal(t, errors.ErrDuplicateEmail, errors.Code(err))

	got, err := m.Login("a@x.com", "pw")
	require.NoError(t, err)
	assert.True(t, got.IsSeller)
	assert.Equal(t, "Alice", got.Name)

	_, err = m.Login("a@x.com", "wrong")
	assert.Equal(t, errors.ErrInvalidCredentials, errors.Code(err))

	_, err = m.Login("nobody@x.com", "pw")
	assert.Equal(t, errors.ErrInvalidCredentials, errors.Code(err))
}

func TestAdminBypassesUserTable(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	// dev default credential pair, never present in the registry
	admin, err := m.Login("admin@luxeauction.com", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.IsSeller)
	assert.Equal(t, "Administrator", admin.Name)

	_, err = m.Login("admin@luxeauction.com", "wrong")
	assert.Equal(t, errors.ErrInvalidCredentials, errors.Code(err))

	// the admin email cannot be registered over
	_, err = m.Register("admin@luxeauction.com", "pw", "Mallory", false)
	assert.Equal(t, errors.ErrDuplicateEmail, errors.Code(err))
}

func TestLoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.LoginPerMinute = 1
	cfg.Auth.LoginBurst = 2

	m, err := NewManager(cfg)
	require.NoError(t, err)

	_, _ = m.Login("a@x.com", "wrong")
	_, _ = m.Login("a@x.com", "wrong")
	_, err = m.Login("a@x.com", "wrong")
	assert.Equal(t, errors.ErrRateLimited, errors.Code(err))

	// limits are per identity
	_, err = m.Login("b@x.com", "wrong")
	assert.Equal(t, errors.ErrInvalidCredentials, errors.Code(err))
}

func TestSessionRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	user, err := m.Register("seller@x.com", "pw", "Sally", true)
	require.NoError(t, err)

	token, err := m.IssueSession(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := m.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "seller@x.com", got.Email)
	assert.Equal(t, "Sally", got.Name)
	assert.True(t, got.IsSeller)
	assert.False(t, got.IsAdmin)
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	user, err := m.Register("seller@x.com", "pw", "Sally", true)
	require.NoError(t, err)

	token, err := m.IssueSession(user)
	require.NoError(t, err)

	_, err = m.ValidateSession(token + "x")
	assert.Error(t, err)
}

func TestSessionRequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.SecretKey = ""

	m, err := NewManager(cfg)
	require.NoError(t, err)

	user, err := m.Register("a@x.com", "pw", "Alice", false)
	require.NoError(t, err)

	_, err = m.IssueSession(user)
	assert.Error(t, err)
}
