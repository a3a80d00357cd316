package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"matita-shop/internal/catalog"
	"matita-shop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, old_price, points, category, images, variants, created_at, updated_at`

// Create inserts a new product using parameterized queries. Images and
// variants are stored as JSONB documents.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	images, variants, err := encodeProductDocs(product)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, name, description, price, old_price, points, category, images, variants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OldPrice,
		product.Points,
		product.Category,
		images,
		variants,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product using parameterized queries
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	images, variants, err := encodeProductDocs(product)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, old_price = $5,
		    points = $6, category = $7, images = $8, variants = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.OldPrice,
		product.Points,
		product.Category,
		images,
		variants,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product using parameterized queries
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves all products, most recently created first. The seq column
// breaks created_at ties by insertion order.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at DESC, seq DESC
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// Search filters products by case-insensitive substring match on name. An
// empty term matches everything.
func (r *productRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	if strings.TrimSpace(term) == "" {
		return r.List(ctx)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE name ILIKE $1
		ORDER BY created_at DESC, seq DESC
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row, funneling the JSONB documents through the
// catalog ingestion coercion so loosely-typed payloads never leak past here
func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var images, variants []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.OldPrice,
		&product.Points,
		&product.Category,
		&images,
		&variants,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Images = catalog.ImagesFromValue(images)
	product.Variants = catalog.VariantsFromValue(variants)
	return product, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func encodeProductDocs(product *domain.Product) (images, variants []byte, err error) {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Variants == nil {
		product.Variants = []domain.Variant{}
	}

	images, err = json.Marshal(product.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode images: %w", err)
	}
	variants, err = json.Marshal(product.Variants)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode variants: %w", err)
	}
	return images, variants, nil
}
