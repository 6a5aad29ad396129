package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio_cms/internal/models"
)

type UserRepository struct {
	db     *sql.DB
	rebind placeholderRebinder
}

func NewUserRepository(db *sql.DB, driver string) *UserRepository {
	return &UserRepository{db: db, rebind: rebinderFor(driver)}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
	updateUserPasswordSQL   = `UPDATE users SET password_hash = ? WHERE id = ?`
)

// Create inserts a new user with a caller-assigned ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	if _, err := r.db.ExecContext(ctx, r.rebind(insertUserSQL), u.ID, u.Username, u.PasswordHash); err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, r.rebind(selectUserByUsernameSQL), username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// UpdatePassword replaces the stored hash of an existing user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(updateUserPasswordSQL), passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password of user %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update password of user %q: %w", id, sql.ErrNoRows)
	}
	return nil
}
