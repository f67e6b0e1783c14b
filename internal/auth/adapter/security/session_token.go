package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenByteLength is the raw entropy per session token. 32 bytes gives 256
// bits, well past the 128-bit floor needed to make guessing infeasible.
const tokenByteLength = 32

// RandomTokenGenerator produces URL-safe session tokens from crypto/rand.
type RandomTokenGenerator struct{}

// NewRandomTokenGenerator creates a new token generator.
func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}

// Generate returns a fresh unguessable token. The encoding is unpadded
// base64url so the token can travel in headers and cookies unescaped.
func (g *RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
