package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arafkarim/shopleaf-golang/internal/models"
)

// UserRepository provides access to the 'users' table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, address, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.Email, u.Address, u.Role, u.CreatedAt)
	if err != nil {
		return models.WrapStorage(err, "INSERT", "users")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.WrapStorage(err, "INSERT", "users")
	}
	u.ID = id
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, address, role, created_at
		FROM users WHERE username = ?`
	var u models.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Address, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "users")
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, address, role, created_at
		FROM users WHERE id = ?`
	var u models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Address, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "users")
	}
	return &u, nil
}

// Role looks up just the role column, used by the admin middleware.
func (r *UserRepository) Role(ctx context.Context, id int64) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx, "SELECT role FROM users WHERE id = ?", id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.ErrNotFound
		}
		return "", models.WrapStorage(err, "SELECT", "users")
	}
	return role, nil
}
