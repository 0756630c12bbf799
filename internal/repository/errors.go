// Package repository defines sentinel error values that are reused across
// multiple repositories and by the handler layer. These values allow
// higher layers to distinguish between failure scenarios: for example,
// ErrUsernameExists maps to an inline form error on the registration
// page, while ErrSessionInvalid results in a redirect to the login page.
package repository

import "errors"

// ErrUsernameExists is returned when a registration collides with an
// existing username (case-sensitive exact match, enforced by the unique
// index on users.username).
var ErrUsernameExists = errors.New("username already exists")

// ErrInvalidCredentials is returned by the login workflow when the
// username is unknown or the password does not match. The two cases are
// deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionInvalid is returned when a session token does not resolve to
// an active session: unknown, expired, or revoked by logout.
var ErrSessionInvalid = errors.New("session invalid")

// ErrInvalidAmount is returned when a donation amount is empty,
// non-numeric, zero or negative. No ledger row is written in that case.
var ErrInvalidAmount = errors.New("invalid donation amount")
