package transport

import (
	"net/http"
	"strconv"

	"matita-shop/internal/domain"
	"matita-shop/internal/middleware"
	"matita-shop/internal/repository"
	"matita-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddLineRequest represents the add-to-cart payload
type AddLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Variant   string `json:"variant"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// CartHandler handles HTTP requests for the session cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCart)
		r.Post("/lines", h.AddLine)
		r.Delete("/lines/{index}", h.RemoveLine)
		r.Delete("/", h.ClearCart)
		r.Post("/checkout", h.Checkout)
	})
}

// GetCart returns the current cart with recomputed totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartService.Summary(userID))
}

// AddLine pushes a product variant into the cart
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddLineRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add line validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	summary, err := h.cartService.AddLine(r.Context(), userID, productID, req.Variant, req.Quantity)
	if err != nil {
		switch err {
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case domain.ErrVariantNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "variant not found")
		case service.ErrVariantUnavailable:
			middleware.RespondWithError(w, http.StatusConflict, "selected variant is out of stock")
		default:
			h.logger.Error("Failed to add cart line", zap.Error(err))
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "cart temporarily unavailable, please retry")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, summary)
}

// RemoveLine drops the cart line at the given position
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid line index")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.cartService.RemoveLine(userID, index))
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.cartService.Clear(userID)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

// Checkout hands the cart off to the messaging channel
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.cartService.Checkout(r.Context(), userID)
	if err != nil {
		if err == service.ErrEmptyCart {
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "checkout temporarily unavailable, please retry")
		return
	}

	h.logger.Info("Order handed off",
		zap.String("user_id", userID.String()),
		zap.Float64("total", result.Total),
		zap.Int("points_credited", result.PointsCredited),
	)
	middleware.RespondWithJSON(w, http.StatusOK, result)
}
