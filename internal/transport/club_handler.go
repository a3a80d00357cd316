package transport

import (
	"net/http"

	"matita-shop/internal/loyalty"
	"matita-shop/internal/middleware"
	"matita-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RedeemRequest represents the coupon redemption payload
type RedeemRequest struct {
	CouponID string `json:"coupon_id" validate:"required"`
}

// ClubHandler handles HTTP requests for the loyalty club
type ClubHandler struct {
	clubService service.ClubService
	logger      *zap.Logger
}

// NewClubHandler creates a new ClubHandler
func NewClubHandler(clubService service.ClubService, logger *zap.Logger) *ClubHandler {
	return &ClubHandler{clubService: clubService, logger: logger}
}

// RegisterRoutes registers club routes, reachable only for members
func (h *ClubHandler) RegisterRoutes(r chi.Router, authMiddleware, socioMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/club", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(socioMiddleware)
		r.Get("/coupons", h.ListCoupons)
		r.Post("/redeem", h.Redeem)
	})
}

// ListCoupons returns the static reward catalog
func (h *ClubHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.clubService.Coupons())
}

// Redeem exchanges points for a coupon code
func (h *ClubHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req RedeemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Redeem validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.clubService.Redeem(r.Context(), userID, req.CouponID)
	if err != nil {
		switch err {
		case loyalty.ErrCouponNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "coupon not found")
		case loyalty.ErrInsufficientPoints:
			middleware.RespondWithError(w, http.StatusConflict, "not enough points for this coupon")
		default:
			h.logger.Error("Redemption failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "redemption temporarily unavailable, please retry")
		}
		return
	}

	h.logger.Info("Coupon redeemed",
		zap.String("user_id", userID.String()),
		zap.String("coupon_id", req.CouponID),
		zap.Int("points_spent", result.PointsSpent),
	)
	middleware.RespondWithJSON(w, http.StatusOK, result)
}
