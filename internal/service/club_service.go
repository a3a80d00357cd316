package service

import (
	"context"

	"matita-shop/internal/domain"
	"matita-shop/internal/loyalty"
	"matita-shop/internal/repository"

	"github.com/google/uuid"
)

// RedemptionResult is returned to the member after a successful exchange
type RedemptionResult struct {
	Code           string `json:"code"`
	PointsSpent    int    `json:"points_spent"`
	PointsBalance  int    `json:"points_balance"`
	DiscountAmount float64 `json:"discount_amount"`
}

// ClubService exposes the loyalty catalog and the redemption flow
type ClubService interface {
	Coupons() []domain.Coupon
	Redeem(ctx context.Context, userID uuid.UUID, couponID string) (*RedemptionResult, error)
}

type clubService struct {
	userRepo repository.UserRepository
	ledger   *loyalty.Ledger
}

// NewClubService creates a new instance of ClubService
func NewClubService(userRepo repository.UserRepository, ledger *loyalty.Ledger) ClubService {
	return &clubService{userRepo: userRepo, ledger: ledger}
}

// Coupons returns the static reward catalog
func (s *clubService) Coupons() []domain.Coupon {
	return loyalty.Coupons
}

// Redeem exchanges the member's points for a coupon code. The route layer
// already gates on club membership; balances are re-read here so the check
// runs against the authoritative stored value.
func (s *clubService) Redeem(ctx context.Context, userID uuid.UUID, couponID string) (*RedemptionResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := loyalty.CouponByID(couponID)
	if err != nil {
		return nil, err
	}

	code, err := s.ledger.Redeem(ctx, user, couponID)
	if err != nil {
		return nil, err
	}

	return &RedemptionResult{
		Code:           code,
		PointsSpent:    coupon.PointsRequired,
		PointsBalance:  user.Points,
		DiscountAmount: coupon.DiscountAmount,
	}, nil
}
