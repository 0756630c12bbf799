package handler

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/avelks/donorboard/internal/model"
	"github.com/avelks/donorboard/internal/repository"
	"github.com/avelks/donorboard/internal/utils"
)

// fakeStore is an in-memory implementation of the three store interfaces.
// A single mutex covers everything, which also gives the ledger append and
// the running-total update the same all-or-nothing behavior the MySQL
// transaction provides.
type fakeStore struct {
	mu sync.Mutex

	users    map[uint64]*model.User
	byName   map[string]uint64
	nextUser uint64

	donations    []model.Donation
	nextDonation uint64

	sessions map[string]*model.Session
	nextSess uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uint64]*model.User),
		byName:   make(map[string]uint64),
		sessions: make(map[string]*model.Session),
	}
}

// fakeLedger exposes the donation half of fakeStore under the
// DonationStore interface; the Create names would otherwise collide with
// the user-store Create on the same struct.
type fakeLedger struct{ *fakeStore }

func (l fakeLedger) Create(ctx context.Context, userID uint64, amount int64) (uint64, error) {
	return l.CreateDonation(ctx, userID, amount)
}

var (
	_ repository.UserStore     = (*fakeStore)(nil)
	_ repository.SessionStore  = (*fakeStore)(nil)
	_ repository.DonationStore = fakeLedger{}
)

func (f *fakeStore) Create(ctx context.Context, username, password string, variant uint8, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byName[username]; exists {
		return 0, repository.ErrUsernameExists
	}
	f.nextUser++
	u := &model.User{
		ID:           f.nextUser,
		Username:     username,
		PasswordHash: hash,
		Variant:      variant,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[u.ID] = u
	f.byName[username] = u.ID
	return u.ID, nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return *f.users[id], nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return *u, nil
}

func (f *fakeStore) IncrementVisits(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.VisitCount++
	return nil
}

func (f *fakeStore) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSess++
	f.sessions[tokenHash] = &model.Session{
		ID:        f.nextSess,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (f *fakeStore) Resolve(ctx context.Context, tokenHash string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok || s.RevokedAt != nil || time.Now().UTC().After(s.ExpiresAt) {
		return 0, repository.ErrSessionInvalid
	}
	return s.UserID, nil
}

func (f *fakeStore) Revoke(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[tokenHash]; ok && s.RevokedAt == nil {
		now := time.Now().UTC()
		s.RevokedAt = &now
	}
	return nil
}

// CreateDonation appends a ledger row and bumps the owner's total under one lock,
// mirroring the transactional coupling of the real repository.
func (f *fakeStore) CreateDonation(ctx context.Context, userID uint64, amount int64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	f.nextDonation++
	f.donations = append(f.donations, model.Donation{
		ID:        f.nextDonation,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})
	u.TotalDonated += uint64(amount)
	return f.nextDonation, nil
}

func (f *fakeStore) SumForUser(ctx context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, d := range f.donations {
		if d.UserID == userID {
			sum += d.Amount
		}
	}
	return sum, nil
}

func (f *fakeStore) CountForUser(ctx context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, d := range f.donations {
		if d.UserID == userID {
			n++
		}
	}
	return n, nil
}
