package model

import "time"

// Session models an entry in the `sessions` table.  Each session binds an
// opaque browser token to exactly one user.  The plain token is never
// stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the session.
//  RevokedAt – when the session was ended by logout (null if still active).
//  CreatedAt – timestamp of creation.
type Session struct {
    ID        uint64     // sessions.id
    UserID    uint64     // sessions.user_id
    TokenHash string     // sessions.token_hash
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
    CreatedAt time.Time  // sessions.created_at
}
