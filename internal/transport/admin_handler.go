package transport

import (
	"net/http"

	"matita-shop/internal/domain"
	"matita-shop/internal/middleware"
	"matita-shop/internal/repository"
	"matita-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductRequest represents the payload for creating or updating a product
type ProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Price       float64          `json:"price" validate:"gte=0"`
	OldPrice    *float64         `json:"old_price,omitempty" validate:"omitempty,gte=0"`
	Points      int              `json:"points" validate:"gte=0"`
	Category    string           `json:"category" validate:"required"`
	Images      []string         `json:"images"`
	Variants    []VariantRequest `json:"variants"`
}

// VariantRequest represents one color variant in a product payload
type VariantRequest struct {
	Label string `json:"label" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// StockRequest represents a stock mutation. Exactly one of stock or delta
// applies: set mode replaces the counter, adjust mode shifts it.
type StockRequest struct {
	Variant string `json:"variant" validate:"required"`
	Mode    string `json:"mode" validate:"required,oneof=set adjust"`
	Value   int    `json:"value"`
}

// SiteConfigRequest represents the shop identity payload
type SiteConfigRequest struct {
	LogoRef string `json:"logo_ref" validate:"required"`
}

// AdminHandler handles HTTP requests for the owner's back office
type AdminHandler struct {
	catalogService service.CatalogService
	shopService    service.ShopService
	userService    service.UserService
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(catalogService service.CatalogService, shopService service.ShopService, userService service.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		shopService:    shopService,
		userService:    userService,
		logger:         logger,
	}
}

// RegisterRoutes registers admin routes behind auth and the admin check
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Put("/products/{id}/stock", h.MutateStock)

		r.Get("/sales", h.ListSales)
		r.Get("/socios", h.ListSocios)
		r.Get("/ideas", h.ListIdeas)
		r.Put("/site-config", h.UpdateSiteConfig)
	})
}

// ListProducts returns the raw catalog for the back office, no view filtering
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog temporarily unavailable, please retry")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// CreateProduct inserts a new catalog product
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !h.decodeProduct(w, r, &req) {
		return
	}

	product := req.toDomain()
	if err := h.catalogService.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct replaces a product's catalog data
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req ProductRequest
	if !h.decodeProduct(w, r, &req) {
		return
	}

	product := req.toDomain()
	product.ID = id
	if err := h.catalogService.UpdateProduct(r.Context(), product); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog temporarily unavailable, please retry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MutateStock sets or adjusts one variant's stock counter
func (h *AdminHandler) MutateStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req StockRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var product *domain.Product
	if req.Mode == "set" {
		product, err = h.catalogService.SetStock(r.Context(), id, req.Variant, req.Value)
	} else {
		product, err = h.catalogService.AdjustStock(r.Context(), id, req.Variant, req.Value)
	}
	if err != nil {
		switch err {
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case domain.ErrVariantNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "variant not found")
		case domain.ErrInvalidStockValue:
			middleware.RespondWithError(w, http.StatusBadRequest, "stock cannot be negative")
		default:
			h.logger.Error("Failed to mutate stock", zap.Error(err))
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog temporarily unavailable, please retry")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListSales returns the sales log
func (h *AdminHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.shopService.ListSales(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "sales log temporarily unavailable, please retry")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, sales)
}

// ListSocios returns club members ranked by points
func (h *AdminHandler) ListSocios(w http.ResponseWriter, r *http.Request) {
	socios, err := h.userService.ListSocios(r.Context())
	if err != nil {
		h.logger.Error("Failed to list socios", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "members temporarily unavailable, please retry")
		return
	}

	profiles := make([]UserProfile, len(socios))
	for i, u := range socios {
		profiles[i] = profileOf(u.ID.String(), u.Name, u.Email, u.Points, u.IsAdmin, u.IsSocio)
	}
	middleware.RespondWithJSON(w, http.StatusOK, profiles)
}

// ListIdeas returns the ideas box contents
func (h *AdminHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.shopService.ListIdeas(r.Context())
	if err != nil {
		h.logger.Error("Failed to list ideas", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "ideas temporarily unavailable, please retry")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, ideas)
}

// UpdateSiteConfig replaces the shop identity row
func (h *AdminHandler) UpdateSiteConfig(w http.ResponseWriter, r *http.Request) {
	var req SiteConfigRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.shopService.UpdateSiteConfig(r.Context(), req.LogoRef)
	if err != nil {
		h.logger.Error("Failed to update site config", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "site config temporarily unavailable, please retry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cfg)
}

func (h *AdminHandler) decodeProduct(w http.ResponseWriter, r *http.Request, req *ProductRequest) bool {
	if err := middleware.DecodeAndValidate(r, req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (req *ProductRequest) toDomain() *domain.Product {
	variants := make([]domain.Variant, len(req.Variants))
	for i, v := range req.Variants {
		variants[i] = domain.Variant{Label: v.Label, Stock: v.Stock}
	}
	return &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		OldPrice:    req.OldPrice,
		Points:      req.Points,
		Category:    domain.Category(req.Category),
		Images:      req.Images,
		Variants:    variants,
	}
}
