package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rushi-salon/salon/internal/platform/db"
)

// Repository defines persistence operations for staff accounts.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user User) (string, error)
	Count(ctx context.Context) (int, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUsername fetches a user by username.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		"SELECT id::text, username, password_hash, role, created_at FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &u, nil
}

// Create inserts the user. A taken username reports shared.ErrDuplicate.
func (r *PGRepository) Create(ctx context.Context, user User) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		"INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)",
		id, user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		return "", db.Classify(err)
	}
	return id, nil
}

// Count returns the number of accounts.
func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, db.Classify(err)
	}
	return n, nil
}

var _ Repository = (*PGRepository)(nil)
