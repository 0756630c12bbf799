package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA‑256 hashing for session tokens
    "encoding/hex"  // hex encoding functions
    "time"          // time utilities for generating expirations
)

// SessionToken represents an opaque login session token.  The Raw field
// contains the raw token string handed to the client in a cookie.  The Exp
// field records when it expires.  In the database only a SHA‑256 hash of
// the raw string is stored, so a leaked sessions table cannot be replayed.
type SessionToken struct {
    Raw string    // raw token string returned to the client
    Exp time.Time // UTC expiration time
}

// NewSessionToken returns a cryptographically secure random token and its
// expiration time.  The token carries no information about the user: it is
// 32 random bytes hex encoded, so it cannot be derived from usernames or
// sequential IDs.  The ttlMin parameter controls how many minutes the
// session stays valid before the holder has to log in again.
func NewSessionToken(ttlMin int) (SessionToken, error) {
    raw, err := randomHex(32) // 32 bytes -> 64 hex chars
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute),
    }, nil
}

// HashSessionRaw returns the SHA‑256 hash of the raw session token as a hex
// string.  Only this digest is persisted.
func HashSessionRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
