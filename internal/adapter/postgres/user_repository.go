package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/domain"
	"github.com/giglysam/adlinker-discord-ads-sub000/internal/core/port"
)

// UserRepository implements port.UserRepository using pgxpool.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a new repository instance.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetUser returns a user by id, or (nil, nil) when no row matches.
func (r *UserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, role, balance, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Role, &u.Balance, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account.
func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, role, balance, created_at) VALUES ($1,$2,$3,$4,now())`,
		u.ID, u.Username, u.Role, u.Balance)
	return err
}

// AdjustBalance increments the balance in a single statement so concurrent
// adjustments never lose updates.
func (r *UserRepository) AdjustBalance(ctx context.Context, id string, delta int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}
