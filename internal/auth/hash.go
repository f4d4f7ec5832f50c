package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/luxeauction/marketplace/pkg/errors"
)

// PBKDF2-SHA256 parameters. RFC 7677 recommends 15000+ iterations.
const (
	hashScheme = "pbkdf2-sha256"
	hashIters  = 15000
	saltLen    = 16
	keyLen     = 32
)

// HashPassword derives a salted PBKDF2-SHA256 hash in the form
// pbkdf2-sha256$<iters>$<b64 salt>$<b64 key>.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New(errors.ErrInvalidCredentials, "password must not be empty")
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key := pbkdf2.Key([]byte(password), salt, hashIters, keyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		hashScheme,
		hashIters,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword checks password against a stored hash in constant
// time. Malformed hashes never verify.
func VerifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 4 || parts[0] != hashScheme {
		return false
	}

	iters, err := strconv.Atoi(parts[1])
	if err != nil || iters < 1 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iters, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
