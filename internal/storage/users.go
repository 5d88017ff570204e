package storage

import (
	"context"
	"fmt"

	"github.com/mohit-756/interview-bot/internal/models"
)

// CreateUser inserts u and fills in its ID and creation time
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := db.connection.QueryRowContext(ctx, query, u.Email, u.PasswordHash, string(u.Role)).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetUserByEmail returns the account registered under email
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1`
	u := &models.User{}
	var role string
	err := db.connection.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	u.Role = models.Role(role)
	return u, nil
}
