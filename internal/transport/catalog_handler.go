package transport

import (
	"net/http"

	"matita-shop/internal/catalog"
	"matita-shop/internal/domain"
	"matita-shop/internal/media"
	"matita-shop/internal/middleware"
	"matita-shop/internal/repository"
	"matita-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductView is a catalog product enriched with derived display data
type ProductView struct {
	domain.Product
	ImageURLs        []string `json:"image_urls"`
	OnOffer          bool     `json:"on_offer"`
	GloballyOutOfStock bool   `json:"globally_out_of_stock"`
}

// CatalogHandler handles HTTP requests for catalog views and favorites
type CatalogHandler struct {
	catalogService service.CatalogService
	resolver       *media.Resolver
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, resolver *media.Resolver, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		resolver:       resolver,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog and favorites routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/catalog", h.GetCatalog)
		r.Get("/api/catalog/{id}", h.GetProduct)
		r.Get("/api/favorites", h.ListFavorites)
		r.Post("/api/favorites/{productID}", h.ToggleFavorite)
	})
}

// GetCatalog serves the filtered catalog view. Query parameters: view
// (all|category|offers|favorites), category, q, grouped.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view := catalog.View{Search: r.URL.Query().Get("q")}

	switch r.URL.Query().Get("view") {
	case "", "all":
		view.Context = catalog.ViewAllProducts
	case "category":
		view.Context = catalog.ViewCategory
		view.Category = domain.Category(r.URL.Query().Get("category"))
		if !domain.IsValidCategory(view.Category) {
			middleware.RespondWithError(w, http.StatusBadRequest, "unknown category")
			return
		}
	case "offers":
		view.Context = catalog.ViewOffers
	case "favorites":
		view.Context = catalog.ViewFavorites
	default:
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown view")
		return
	}

	if r.URL.Query().Get("grouped") == "true" {
		if view.Context != catalog.ViewAllProducts {
			middleware.RespondWithError(w, http.StatusBadRequest, "grouped is only available for the full catalog")
			return
		}

		groups, err := h.catalogService.BuildGroupedView(r.Context(), userID, view)
		if err != nil {
			h.logger.Error("Failed to build grouped catalog view", zap.Error(err))
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog temporarily unavailable, please retry")
			return
		}

		middleware.RespondWithJSON(w, http.StatusOK, groups)
		return
	}

	products, err := h.catalogService.BuildView(r.Context(), userID, view)
	if err != nil {
		h.logger.Error("Failed to build catalog view", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog temporarily unavailable, please retry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.toViews(products))
}

// GetProduct serves one product with its resolved image URLs
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog temporarily unavailable, please retry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.toView(*product))
}

// ListFavorites returns the customer's favorite product ids
func (h *CatalogHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ids, err := h.catalogService.ListFavorites(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list favorites", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "favorites temporarily unavailable, please retry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"product_ids": ids})
}

// ToggleFavorite flips a product in and out of the customer's set
func (h *CatalogHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	isFavorite, err := h.catalogService.ToggleFavorite(r.Context(), userID, productID)
	if err != nil {
		h.logger.Error("Failed to toggle favorite", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "favorites temporarily unavailable, please retry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"product_id": productID, "is_favorite": isFavorite})
}

func (h *CatalogHandler) toView(p domain.Product) ProductView {
	urls := make([]string, len(p.Images))
	for i, ref := range p.Images {
		urls[i] = h.resolver.URL(ref, media.DefaultWidth)
	}
	return ProductView{
		Product:            p,
		ImageURLs:          urls,
		OnOffer:            p.IsOnOffer(),
		GloballyOutOfStock: p.IsGloballyOutOfStock(),
	}
}

func (h *CatalogHandler) toViews(products []domain.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = h.toView(p)
	}
	return views
}
