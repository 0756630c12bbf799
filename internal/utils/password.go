package utils

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// FakeVerifier burns bcrypt comparisons against a throwaway hash. Login
// uses it when the username does not exist, so the unknown-user and
// wrong-password paths cost roughly the same. The hash is generated at
// the same cost real password hashes use; a fixed literal would stop
// matching as soon as BCRYPT_COST changes.
type FakeVerifier struct {
	hash []byte
}

// NewFakeVerifier hashes a random throwaway value once, at the given cost.
func NewFakeVerifier(cost int) (FakeVerifier, error) {
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return FakeVerifier{}, err
	}
	h, err := bcrypt.GenerateFromPassword(seed, cost)
	if err != nil {
		return FakeVerifier{}, err
	}
	return FakeVerifier{hash: h}, nil
}

// Verify runs one bcrypt comparison without revealing anything.
func (v FakeVerifier) Verify(plain string) {
	_ = bcrypt.CompareHashAndPassword(v.hash, []byte(plain))
}
