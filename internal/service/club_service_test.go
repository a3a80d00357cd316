package service

import (
	"context"
	"testing"

	"matita-shop/internal/loyalty"
	"matita-shop/internal/repository"

	"github.com/google/uuid"
)

func newClubFixture(t *testing.T) (ClubService, *mockUserRepository) {
	t.Helper()
	userRepo := newMockUserRepository()
	return NewClubService(userRepo, loyalty.NewLedger(userRepo)), userRepo
}

func TestCoupons(t *testing.T) {
	svc, _ := newClubFixture(t)

	coupons := svc.Coupons()
	if len(coupons) != 3 {
		t.Fatalf("expected 3 coupons, got %d", len(coupons))
	}
	if coupons[0].Code != "MATITA10" || coupons[2].Code != "PROMOVIP" {
		t.Errorf("unexpected coupon catalog %v", coupons)
	}
}

func TestRedeemFlow(t *testing.T) {
	svc, userRepo := newClubFixture(t)
	user := seedUser(t, userRepo, "socio@example.com", 1300, true)

	result, err := svc.Redeem(context.Background(), user.ID, "c2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Code != "MATITA20" {
		t.Errorf("expected MATITA20, got %q", result.Code)
	}
	if result.PointsSpent != 1200 {
		t.Errorf("expected 1200 points spent, got %d", result.PointsSpent)
	}
	if result.PointsBalance != 100 {
		t.Errorf("expected balance 100, got %d", result.PointsBalance)
	}
	if result.DiscountAmount != 2500 {
		t.Errorf("expected discount 2500, got %f", result.DiscountAmount)
	}

	stored, _ := userRepo.FindByID(context.Background(), user.ID)
	if stored.Points != 100 {
		t.Errorf("persisted balance should be 100, got %d", stored.Points)
	}
}

func TestRedeemInsufficientBalance(t *testing.T) {
	svc, userRepo := newClubFixture(t)
	user := seedUser(t, userRepo, "socio@example.com", 400, true)

	if _, err := svc.Redeem(context.Background(), user.ID, "c1"); err != loyalty.ErrInsufficientPoints {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}

	stored, _ := userRepo.FindByID(context.Background(), user.ID)
	if stored.Points != 400 {
		t.Errorf("failed redemption should not mutate, got %d", stored.Points)
	}
}

func TestRedeemUnknownCouponAndUser(t *testing.T) {
	svc, userRepo := newClubFixture(t)
	user := seedUser(t, userRepo, "socio@example.com", 5000, true)

	if _, err := svc.Redeem(context.Background(), user.ID, "c99"); err != loyalty.ErrCouponNotFound {
		t.Errorf("expected ErrCouponNotFound, got %v", err)
	}
	if _, err := svc.Redeem(context.Background(), uuid.New(), "c1"); err != repository.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
