package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/arafkarim/shopleaf-golang/internal/models"
)

// CategoryRepository provides access to the 'categories' table.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	c.CreatedAt = time.Now()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, slug, created_at) VALUES (?, ?, ?)",
		c.Name, c.Slug, c.CreatedAt)
	if err != nil {
		return models.WrapStorage(err, "INSERT", "categories")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.WrapStorage(err, "INSERT", "categories")
	}
	c.ID = id
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug, created_at FROM categories ORDER BY name")
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "categories")
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, models.WrapStorage(err, "SELECT", "categories")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "categories")
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM categories WHERE id = ?", id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "categories")
	}
	return &c, nil
}

// FindByName does a case-insensitive name lookup, used as the duplicate
// guard on creation.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug, created_at FROM categories WHERE LOWER(name) = LOWER(?)", name).Scan(
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "categories")
	}
	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, slug = ? WHERE id = ?", c.Name, c.Slug, c.ID)
	if err != nil {
		return models.WrapStorage(err, "UPDATE", "categories")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return models.WrapStorage(err, "DELETE", "categories")
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
