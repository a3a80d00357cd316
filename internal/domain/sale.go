package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sale records a completed reservation handoff
type Sale struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserEmail string    `json:"user_email" db:"user_email"`
	Total     float64   `json:"total" db:"total"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Idea is a customer suggestion from the ideas box
type Idea struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SiteConfig holds the single-row shop identity. LogoRef is an opaque image
// reference, remote URL or CDN identifier alike.
type SiteConfig struct {
	ID        string    `json:"id" db:"id"`
	LogoRef   string    `json:"logo_ref" db:"logo_ref"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Coupon is a redeemable reward from the static club catalog
type Coupon struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	PointsRequired int     `json:"points_required"`
}
