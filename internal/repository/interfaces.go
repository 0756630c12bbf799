package repository

import (
	"context"
	"time"

	"github.com/avelks/donorboard/internal/model"
)

// UserStore is the handler-facing view of the credential store.
// *UserRepo is the MySQL implementation; tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, username, password string, variant uint8, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	IncrementVisits(ctx context.Context, id uint64) error
}

// SessionStore binds opaque token hashes to user identities.
type SessionStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Resolve(ctx context.Context, tokenHash string) (uint64, error)
	Revoke(ctx context.Context, tokenHash string) error
}

// DonationStore appends to the ledger and answers consistency queries.
type DonationStore interface {
	Create(ctx context.Context, userID uint64, amount int64) (uint64, error)
	SumForUser(ctx context.Context, userID uint64) (int64, error)
	CountForUser(ctx context.Context, userID uint64) (int64, error)
}

var (
	_ UserStore     = (*UserRepo)(nil)
	_ SessionStore  = (*SessionRepo)(nil)
	_ DonationStore = (*DonationRepo)(nil)
)
