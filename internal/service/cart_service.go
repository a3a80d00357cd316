package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matita-shop/internal/cart"
	"matita-shop/internal/domain"
	"matita-shop/internal/handoff"
	"matita-shop/internal/loyalty"
	"matita-shop/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrVariantUnavailable = errors.New("selected variant is out of stock")
	ErrEmptyCart          = errors.New("cart is empty")
)

// CartSummary is a snapshot of the cart with its derived totals
type CartSummary struct {
	Lines        []cart.Line `json:"lines"`
	Subtotal     float64     `json:"subtotal"`
	PointsEarned int         `json:"points_earned"`
}

// CheckoutResult carries everything the storefront needs after a handoff:
// the rendered message, the messaging deep link, and the credited points.
type CheckoutResult struct {
	Message        string  `json:"message"`
	Link           string  `json:"link"`
	Total          float64 `json:"total"`
	PointsCredited int     `json:"points_credited"`
}

// CartService owns the session carts and the order handoff flow
type CartService interface {
	AddLine(ctx context.Context, userID, productID uuid.UUID, variant string, quantity int) (CartSummary, error)
	RemoveLine(userID uuid.UUID, index int) CartSummary
	Clear(userID uuid.UUID)
	Summary(userID uuid.UUID) CartSummary
	Checkout(ctx context.Context, userID uuid.UUID) (*CheckoutResult, error)
}

type cartService struct {
	carts          *cart.Store
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	saleRepo       repository.SaleRepository
	ledger         *loyalty.Ledger
	whatsappNumber string
}

// NewCartService creates a new instance of CartService
func NewCartService(
	carts *cart.Store,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
	ledger *loyalty.Ledger,
	whatsappNumber string,
) CartService {
	return &cartService{
		carts:          carts,
		productRepo:    productRepo,
		userRepo:       userRepo,
		saleRepo:       saleRepo,
		ledger:         ledger,
		whatsappNumber: whatsappNumber,
	}
}

// AddLine snapshots the product and appends a line to the customer's cart.
// Availability is checked here, at selection time; it is not re-checked at
// checkout (stock is a display hint, not a reservation).
func (s *cartService) AddLine(ctx context.Context, userID, productID uuid.UUID, variant string, quantity int) (CartSummary, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return CartSummary{}, err
	}

	if variant == "" && len(product.Variants) > 0 {
		variant = product.Variants[0].Label
	}

	stock, err := product.StockOf(variant)
	if err != nil {
		return CartSummary{}, err
	}
	if stock <= 0 {
		return CartSummary{}, ErrVariantUnavailable
	}

	c := s.carts.Get(userID)
	if err := c.AddLine(*product, variant, quantity); err != nil {
		return CartSummary{}, err
	}

	return summarize(c), nil
}

// RemoveLine drops a line by position; out-of-range requests leave the cart
// unchanged
func (s *cartService) RemoveLine(userID uuid.UUID, index int) CartSummary {
	c := s.carts.Get(userID)
	c.RemoveLine(index)
	return summarize(c)
}

// Clear empties the customer's cart. Called on logout.
func (s *cartService) Clear(userID uuid.UUID) {
	s.carts.Drop(userID)
}

// Summary returns the current cart with recomputed totals
func (s *cartService) Summary(userID uuid.UUID) CartSummary {
	return summarize(s.carts.Get(userID))
}

// Checkout renders the reservation message, records the sale, credits club
// points, clears the cart and returns the messaging deep link. Payment and
// fulfillment happen outside this system.
func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID) (*CheckoutResult, error) {
	c := s.carts.Get(userID)
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := c.Subtotal()
	points := c.PointsEarned()
	message := handoff.Format(lines, subtotal, points)

	sale := &domain.Sale{
		ID:        uuid.New(),
		UserEmail: user.Email,
		Total:     subtotal,
		Points:    points,
		CreatedAt: time.Now(),
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	credited := 0
	if user.IsSocio {
		if err := s.ledger.Credit(ctx, user, points); err != nil {
			return nil, err
		}
		credited = points
	}

	c.Clear()

	return &CheckoutResult{
		Message:        message,
		Link:           handoff.Link(s.whatsappNumber, message),
		Total:          subtotal,
		PointsCredited: credited,
	}, nil
}

func summarize(c *cart.Cart) CartSummary {
	return CartSummary{
		Lines:        c.Lines(),
		Subtotal:     c.Subtotal(),
		PointsEarned: c.PointsEarned(),
	}
}
