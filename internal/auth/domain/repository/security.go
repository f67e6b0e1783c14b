package repository

// PasswordHasher defines the interface for credential hashing.
//
// Verify must run in time independent of where a mismatch occurs and must
// return false, never panic, for a malformed digest.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenGenerator defines the interface for session token generation.
// Generated tokens are URL-safe and carry at least 128 bits of entropy.
type TokenGenerator interface {
	Generate() (string, error)
}
