package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/avelks/donorboard/internal/model"
	"github.com/avelks/donorboard/internal/utils"
)

// UserRepo persists rows of the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user and returns its ID.  The raw password is
// hashed with bcrypt using the given cost before it touches the database.
// Usernames are matched case-sensitively; a collision surfaces as
// ErrUsernameExists via the unique index.
func (r *UserRepo) Create(ctx context.Context, username, password string, variant uint8, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, variant, visit_count, total_donated) VALUES (?,?,?,0,0)",
		username, hash, variant)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,variant,visit_count,total_donated,created_at,updated_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Variant, &u.VisitCount, &u.TotalDonated, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,variant,visit_count,total_donated,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Variant, &u.VisitCount, &u.TotalDonated, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// IncrementVisits bumps visit_count by one.  The increment happens
// in-place in SQL so concurrent dashboard loads for the same user cannot
// lose an update.  Every call increments; this is not idempotent on
// purpose.
func (r *UserRepo) IncrementVisits(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET visit_count = visit_count + 1 WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
