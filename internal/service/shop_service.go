package service

import (
	"context"
	"time"

	"matita-shop/internal/domain"
	"matita-shop/internal/repository"

	"github.com/google/uuid"
)

// ShopService covers the storefront's side channels: the sales log kept
// for the owner, the customer ideas box and the shop identity row
type ShopService interface {
	ListSales(ctx context.Context) ([]domain.Sale, error)
	SubmitIdea(ctx context.Context, userName, title, content string) (*domain.Idea, error)
	ListIdeas(ctx context.Context) ([]domain.Idea, error)
	GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error)
	UpdateSiteConfig(ctx context.Context, logoRef string) (*domain.SiteConfig, error)
}

type shopService struct {
	saleRepo repository.SaleRepository
	ideaRepo repository.IdeaRepository
	siteRepo repository.SiteConfigRepository
}

// NewShopService creates a new instance of ShopService
func NewShopService(saleRepo repository.SaleRepository, ideaRepo repository.IdeaRepository, siteRepo repository.SiteConfigRepository) ShopService {
	return &shopService{saleRepo: saleRepo, ideaRepo: ideaRepo, siteRepo: siteRepo}
}

// ListSales returns the sales log, newest first
func (s *shopService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.saleRepo.List(ctx)
}

// SubmitIdea stores a customer suggestion
func (s *shopService) SubmitIdea(ctx context.Context, userName, title, content string) (*domain.Idea, error) {
	idea := &domain.Idea{
		ID:        uuid.New(),
		UserName:  userName,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, err
	}

	return idea, nil
}

// ListIdeas returns all suggestions, newest first
func (s *shopService) ListIdeas(ctx context.Context) ([]domain.Idea, error) {
	return s.ideaRepo.List(ctx)
}

// GetSiteConfig returns the shop identity. A missing row falls back to an
// empty logo reference so the storefront can still render its default.
func (s *shopService) GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	cfg, err := s.siteRepo.Get(ctx)
	if err == repository.ErrSiteConfigNotFound {
		return &domain.SiteConfig{ID: repository.SiteConfigID}, nil
	}
	return cfg, err
}

// UpdateSiteConfig writes the shop identity row
func (s *shopService) UpdateSiteConfig(ctx context.Context, logoRef string) (*domain.SiteConfig, error) {
	cfg := &domain.SiteConfig{
		ID:        repository.SiteConfigID,
		LogoRef:   logoRef,
		UpdatedAt: time.Now(),
	}

	if err := s.siteRepo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
