package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher applies salted adaptive one-way hashing to account passwords.
// bcrypt embeds a per-call random salt in the digest, so hashing the same
// input twice yields different digests.
type Hasher struct {
	cost int
}

// NewHasher creates a password hasher with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to the default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. A mismatch is not an
// error; only a digest bcrypt cannot parse is.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Join(ErrMalformedPasswordHash, err)
	}
}
