// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"strings"
	"time"
)

// User models an application user identified by email.
type User struct {
	ID        uint
	PublicID  string
	Name      *string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines storage operations for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// NormalizeEmail lower-cases and trims an email for use as the identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
