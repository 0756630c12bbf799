package repository

import (
	"context"
	"database/sql"
)

// DonationRepo owns the append-only donation ledger.  The one invariant
// this repository exists to protect: users.total_donated always equals
// the sum of that user's ledger rows.  Every write path therefore runs
// the ledger append and the total update inside a single transaction.
type DonationRepo struct{ DB *sql.DB }

func NewDonationRepo(db *sql.DB) *DonationRepo { return &DonationRepo{DB: db} }

// Create appends one donation row and adds the amount to the owning
// user's running total.  Both mutations commit together or not at all.
// The total update is an in-place SQL increment, so concurrent donations
// by the same user serialize on the row lock instead of racing a
// read-modify-write.  The caller must have validated amount > 0.
func (r *DonationRepo) Create(ctx context.Context, userID uint64, amount int64) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }() // no-op after a successful commit

	res, err := tx.ExecContext(ctx,
		"INSERT INTO donations (user_id, amount) VALUES (?,?)", userID, amount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	upd, err := tx.ExecContext(ctx,
		"UPDATE users SET total_donated = total_donated + ? WHERE id=?", amount, userID)
	if err != nil {
		return 0, err
	}
	n, err := upd.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n != 1 {
		// The ledger row referenced a user the update could not find.
		// Rolling back keeps the invariant; the FK makes this unreachable
		// under normal flow.
		return 0, sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SumForUser returns the ledger sum for one user.  Used by consistency
// checks; the running total on the user row is the value served to pages.
func (r *DonationRepo) SumForUser(ctx context.Context, userID uint64) (int64, error) {
	var sum int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount),0) FROM donations WHERE user_id=?", userID).Scan(&sum)
	return sum, err
}

// CountForUser returns how many ledger rows a user owns.
func (r *DonationRepo) CountForUser(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM donations WHERE user_id=?", userID).Scan(&n)
	return n, err
}
