package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"matita-shop/internal/domain"
)

var ErrSiteConfigNotFound = errors.New("site config not found")

// SiteConfigID is the single row the shop identity lives under
const SiteConfigID = "global"

// SiteConfigRepository defines the interface for shop identity access
type SiteConfigRepository interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
	Upsert(ctx context.Context, cfg *domain.SiteConfig) error
}

type siteConfigRepository struct {
	db *sql.DB
}

// NewSiteConfigRepository creates a new instance of SiteConfigRepository
func NewSiteConfigRepository(db *sql.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

// Get retrieves the global shop identity row
func (r *siteConfigRepository) Get(ctx context.Context) (*domain.SiteConfig, error) {
	query := `SELECT id, logo_ref, updated_at FROM site_config WHERE id = $1`

	cfg := &domain.SiteConfig{}
	err := r.db.QueryRowContext(ctx, query, SiteConfigID).Scan(&cfg.ID, &cfg.LogoRef, &cfg.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSiteConfigNotFound
		}
		return nil, fmt.Errorf("failed to get site config: %w", err)
	}

	return cfg, nil
}

// Upsert writes the shop identity, keyed by the fixed global id
func (r *siteConfigRepository) Upsert(ctx context.Context, cfg *domain.SiteConfig) error {
	query := `
		INSERT INTO site_config (id, logo_ref, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET logo_ref = EXCLUDED.logo_ref, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, SiteConfigID, cfg.LogoRef, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert site config: %w", err)
	}

	return nil
}
