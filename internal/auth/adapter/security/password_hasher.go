package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordHasher implements credential hashing with bcrypt. The cost
// is fixed at construction so a caller can never downgrade it per request.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a hasher with the given cost factor.
func NewBcryptPasswordHasher(cost int) (*BcryptPasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &BcryptPasswordHasher{cost: cost}, nil
}

// Hash returns the salted bcrypt digest of the plaintext.
func (h *BcryptPasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest. bcrypt's
// comparison is constant time in the password bytes, and a malformed digest
// comes back as an ordinary mismatch rather than an error to the caller.
func (h *BcryptPasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
