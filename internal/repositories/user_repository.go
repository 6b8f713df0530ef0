package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskassistant/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `INSERT INTO users (id, username, created_at) VALUES ($1, $2, $3)`
	if _, err := r.DB.ExecContext(ctx, q, user.ID, user.Username, user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const q = `SELECT id, username, created_at FROM users WHERE id = $1`
	return r.getOne(ctx, q, id)
}

// GetByUsername returns the oldest user with that name; usernames are not
// unique at the storage level.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `SELECT id, username, created_at FROM users WHERE username = $1 ORDER BY created_at LIMIT 1`
	return r.getOne(ctx, q, username)
}

func (r *userRepository) getOne(ctx context.Context, q string, arg string) (*models.User, error) {
	u := &models.User{}
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
