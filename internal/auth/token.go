package auth

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/hkdf"

	"github.com/luxeauction/marketplace/pkg/errors"
	"github.com/luxeauction/marketplace/pkg/types"
)

const tokenSalt = "luxe.session-token"

// signingKey derives the HS256 signing key from the configured secret
// via HKDF with SHA-256.
func (m *Manager) signingKey() ([]byte, error) {
	if len(m.secret) == 0 {
		return nil, errors.New(errors.ErrInternalServer, "auth secret not set")
	}

	info := fmt.Sprintf("Luxe Session Signing Key (%s)", tokenSalt)
	kdf := hkdf.New(sha256.New, m.secret, []byte(tokenSalt), []byte(info))

	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, errors.Wrap(err, "failed to derive signing key")
	}
	return key, nil
}

// IssueSession signs a session token for the authenticated user.
func (m *Manager) IssueSession(user types.User) (string, error) {
	key, err := m.signingKey()
	if err != nil {
		return "", err
	}

	token := jwt.New()
	token.Set(jwt.SubjectKey, user.Email)
	token.Set(jwt.ExpirationKey, time.Now().Add(m.sessionTTL))
	token.Set("name", user.Name)
	token.Set("isSeller", user.IsSeller)
	token.Set("isAdmin", user.IsAdmin)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}
	return string(signed), nil
}

// ValidateSession verifies a session token and reconstructs the
// identity it was issued for.
func (m *Manager) ValidateSession(signed string) (types.User, error) {
	key, err := m.signingKey()
	if err != nil {
		return types.User{}, err
	}

	token, err := jwt.Parse([]byte(signed),
		jwt.WithKey(jwa.HS256(), key),
		jwt.WithValidate(true))
	if err != nil {
		return types.User{}, errors.Wrap(err, "failed to validate session token")
	}

	if exp, ok := token.Expiration(); ok && exp.Before(time.Now()) {
		return types.User{}, errors.New(errors.ErrUnauthorized, "session expired")
	}

	email, ok := token.Subject()
	if !ok {
		return types.User{}, errors.New(errors.ErrUnauthorized, "session has no subject")
	}

	user := types.User{Email: email}
	token.Get("name", &user.Name)
	token.Get("isSeller", &user.IsSeller)
	token.Get("isAdmin", &user.IsAdmin)
	return user, nil
}
