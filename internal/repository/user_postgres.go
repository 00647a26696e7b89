package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// PostgresUserStore is the pgx-backed UserStore.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a PostgresUserStore.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// GetByEmail retrieves a user by email.
func (r *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, `LOWER(email) = LOWER($1)`, email)
}

// GetByID retrieves a user by id.
func (r *PostgresUserStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.getBy(ctx, `id = $1`, id)
}

func (r *PostgresUserStore) getBy(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, role, created_at, updated_at
		 FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, examerr.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create inserts a user account.
func (r *PostgresUserStore) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.Name, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}
