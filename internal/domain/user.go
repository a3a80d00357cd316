package domain

import (
	"time"

	"github.com/google/uuid"
)

// WelcomePoints is granted to every customer at registration
const WelcomePoints = 100

// User represents a customer account. Points is the authoritative loyalty
// balance; it is only mutated by sale completion and reward redemption.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Points       int       `json:"points" db:"points"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	IsSocio      bool      `json:"is_socio" db:"is_socio"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
