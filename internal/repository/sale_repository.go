package repository

import (
	"context"
	"database/sql"
	"fmt"

	"matita-shop/internal/domain"
)

// SaleRepository defines the interface for sale record access
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	List(ctx context.Context) ([]domain.Sale, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

// Create records a completed reservation handoff
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (id, user_email, total, points, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, sale.ID, sale.UserEmail, sale.Total, sale.Points, sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	return nil
}

// List retrieves all sales, newest first
func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	query := `
		SELECT id, user_email, total, points, created_at
		FROM sales
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(&sale.ID, &sale.UserEmail, &sale.Total, &sale.Points, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}
