package transport

import (
	"net/http"

	"matita-shop/internal/middleware"
	"matita-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// IdeaRequest represents a customer suggestion payload
type IdeaRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// ShopHandler handles the public storefront side channels
type ShopHandler struct {
	shopService service.ShopService
	logger      *zap.Logger
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService service.ShopService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{shopService: shopService, logger: logger}
}

// RegisterRoutes registers the public shop routes
func (h *ShopHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/site-config", h.GetSiteConfig)
	r.Post("/api/ideas", h.SubmitIdea)
}

// GetSiteConfig serves the shop identity used by the storefront shell
func (h *ShopHandler) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.shopService.GetSiteConfig(r.Context())
	if err != nil {
		h.logger.Error("Failed to get site config", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "site config temporarily unavailable, please retry")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, cfg)
}

// SubmitIdea drops a suggestion into the ideas box
func (h *ShopHandler) SubmitIdea(w http.ResponseWriter, r *http.Request) {
	var req IdeaRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Idea validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	idea, err := h.shopService.SubmitIdea(r.Context(), req.UserName, req.Title, req.Content)
	if err != nil {
		h.logger.Error("Failed to submit idea", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "ideas temporarily unavailable, please retry")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, idea)
}
