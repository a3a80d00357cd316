// Package loyalty implements the club point ledger: balances credited at
// sale completion and debited by reward redemptions.
package loyalty

import (
	"context"
	"errors"
	"fmt"

	"matita-shop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrInsufficientPoints = errors.New("not enough points for this coupon")
	ErrCouponNotFound     = errors.New("coupon not found")
)

// Coupons is the static reward catalog. Codes are reusable discount tiers:
// nothing tracks whether a code was already issued, so a member can redeem
// the same reward again while their balance allows it.
var Coupons = []domain.Coupon{
	{ID: "c1", Code: "MATITA10", DiscountAmount: 1000, PointsRequired: 500},
	{ID: "c2", Code: "MATITA20", DiscountAmount: 2500, PointsRequired: 1200},
	{ID: "c3", Code: "PROMOVIP", DiscountAmount: 5000, PointsRequired: 2500},
}

// CouponByID looks up a coupon in the static catalog
func CouponByID(id string) (domain.Coupon, error) {
	for _, c := range Coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Coupon{}, ErrCouponNotFound
}

// PointsStore persists a customer's authoritative point balance
type PointsStore interface {
	UpdatePoints(ctx context.Context, userID uuid.UUID, points int) error
}

// Ledger mutates customer balances through a PointsStore
type Ledger struct {
	store PointsStore
}

// NewLedger creates a ledger over the given store
func NewLedger(store PointsStore) *Ledger {
	return &Ledger{store: store}
}

// Redeem exchanges points for a coupon code. The debited balance is persisted
// first and the in-memory user is only updated once the write succeeds, so a
// failed write leaves the balance untouched. Insufficient points return a
// typed error with no mutation anywhere.
func (l *Ledger) Redeem(ctx context.Context, user *domain.User, couponID string) (string, error) {
	coupon, err := CouponByID(couponID)
	if err != nil {
		return "", err
	}

	if user.Points < coupon.PointsRequired {
		return "", ErrInsufficientPoints
	}

	newBalance := user.Points - coupon.PointsRequired
	if err := l.store.UpdatePoints(ctx, user.ID, newBalance); err != nil {
		return "", fmt.Errorf("failed to persist redemption: %w", err)
	}

	user.Points = newBalance
	return coupon.Code, nil
}

// Credit adds points earned by a completed sale. The amount comes from the
// order's computed points, not from persisted sale records. Non-positive
// amounts are a no-op.
func (l *Ledger) Credit(ctx context.Context, user *domain.User, amount int) error {
	if amount <= 0 {
		return nil
	}

	newBalance := user.Points + amount
	if err := l.store.UpdatePoints(ctx, user.ID, newBalance); err != nil {
		return fmt.Errorf("failed to persist point credit: %w", err)
	}

	user.Points = newBalance
	return nil
}
