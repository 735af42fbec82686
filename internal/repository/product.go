package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/arafkarim/shopleaf-golang/internal/models"
)

// ProductRepository provides access to the 'products' table.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, qty, image_url, avg_rating, category_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Qty,
		&p.ImageURL, &p.AvgRating, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "products")
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.queryProducts(ctx, query)
}

// Search matches the keyword against name, description and category name,
// mirroring the catalog search endpoint.
func (r *ProductRepository) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.qty, p.image_url,
		       p.avg_rating, p.category_id, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.name LIKE ? OR p.description LIKE ? OR c.name LIKE ?
		ORDER BY p.id`
	like := "%" + keyword + "%"
	return r.queryProducts(ctx, query, like, like, like)
}

// Filter applies the optional category/price/rating constraints. Nil filter
// fields are skipped so the query only narrows on what the caller supplied.
func (r *ProductRepository) Filter(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any
	if f.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *f.CategoryID)
	}
	if f.MinPrice != nil {
		query += " AND price >= ?"
		args = append(args, f.MinPrice.String())
	}
	if f.MaxPrice != nil {
		query += " AND price <= ?"
		args = append(args, f.MaxPrice.String())
	}
	if f.MinRating != nil {
		query += " AND avg_rating >= ?"
		args = append(args, *f.MinRating)
	}
	query += " ORDER BY id"
	return r.queryProducts(ctx, query, args...)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "products")
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, models.WrapStorage(err, "SELECT", "products")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "products")
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	query := `
		INSERT INTO products (name, description, price, qty, image_url, avg_rating, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Qty, p.ImageURL, p.AvgRating, p.CategoryID, now, now)
	if err != nil {
		return models.WrapStorage(err, "INSERT", "products")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.WrapStorage(err, "INSERT", "products")
	}
	p.ID = id
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, qty = ?, image_url = ?, category_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.Qty, p.ImageURL, p.CategoryID, time.Now(), p.ID)
	if err != nil {
		return models.WrapStorage(err, "UPDATE", "products")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return models.WrapStorage(err, "DELETE", "products")
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
