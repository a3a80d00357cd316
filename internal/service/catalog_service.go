package service

import (
	"context"
	"fmt"
	"time"

	"matita-shop/internal/catalog"
	"matita-shop/internal/domain"
	"matita-shop/internal/favorites"
	"matita-shop/internal/repository"

	"github.com/google/uuid"
)

// CatalogService assembles catalog views from the product store and the
// customer's favorites set
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	BuildView(ctx context.Context, userID uuid.UUID, view catalog.View) ([]domain.Product, error)
	BuildGroupedView(ctx context.Context, userID uuid.UUID, view catalog.View) ([]catalog.Group, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetStock(ctx context.Context, productID uuid.UUID, variant string, stock int) (*domain.Product, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, variant string, delta int) (*domain.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	favStore    *favorites.Store
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, favStore *favorites.Store) CatalogService {
	return &catalogService{productRepo: productRepo, favStore: favStore}
}

// ListProducts returns the whole catalog, newest first, without view filtering
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.List(ctx)
}

// BuildView fetches the catalog and filters it for the requested view. The
// favorites set is loaded only when the view needs it.
func (s *catalogService) BuildView(ctx context.Context, userID uuid.UUID, view catalog.View) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if view.Context == catalog.ViewFavorites {
		favs, err := s.favStore.Set(ctx, userID)
		if err != nil {
			return nil, err
		}
		view.Favorites = favs
	}

	return catalog.Build(view, products), nil
}

// BuildGroupedView returns the catalog bucketed by category in display order
func (s *catalogService) BuildGroupedView(ctx context.Context, userID uuid.UUID, view catalog.View) ([]catalog.Group, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.BuildGrouped(view, products), nil
}

// GetProduct retrieves one product by id
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// ListFavorites returns the customer's favorite product ids
func (s *catalogService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.favStore.List(ctx, userID)
}

// ToggleFavorite flips membership of the product in the customer's set
func (s *catalogService) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	return s.favStore.Toggle(ctx, userID, productID)
}

// CreateProduct inserts a product, defaulting to a single Único variant so
// no product ever lands without stock tracking
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if !domain.IsValidCategory(product.Category) {
		return fmt.Errorf("unknown category %q", product.Category)
	}
	if len(product.Variants) == 0 {
		product.Variants = []domain.Variant{{Label: domain.DefaultVariantLabel, Stock: 10}}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	return s.productRepo.Create(ctx, product)
}

// UpdateProduct replaces a product's catalog data
func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if !domain.IsValidCategory(product.Category) {
		return fmt.Errorf("unknown category %q", product.Category)
	}
	product.UpdatedAt = time.Now()
	return s.productRepo.Update(ctx, product)
}

// DeleteProduct removes a product from the catalog
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// SetStock replaces one variant's counter and persists the product
func (s *catalogService) SetStock(ctx context.Context, productID uuid.UUID, variant string, stock int) (*domain.Product, error) {
	return s.mutateStock(ctx, productID, func(p *domain.Product) error {
		return p.SetStock(variant, stock)
	})
}

// AdjustStock applies a clamped delta to one variant's counter and persists
// the product
func (s *catalogService) AdjustStock(ctx context.Context, productID uuid.UUID, variant string, delta int) (*domain.Product, error) {
	return s.mutateStock(ctx, productID, func(p *domain.Product) error {
		return p.AdjustStock(variant, delta)
	})
}

func (s *catalogService) mutateStock(ctx context.Context, productID uuid.UUID, mutate func(*domain.Product) error) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := mutate(product); err != nil {
		return nil, err
	}

	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
