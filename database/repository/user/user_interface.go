package userRepo

import (
	"context"

	"quotecompare/models"
)

// UserRepository defines methods for user document access.
type UserRepository interface {
	// GetByID retrieves a user by uid.
	GetByID(ctx context.Context, uid string) (*models.User, error)
	// GetAll returns every user document.
	GetAll(ctx context.Context) ([]models.User, error)
	// SetDisabled merges the disabled flag into the user document, creating it if absent.
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	// IncrementResponseCount bumps the vendor's quotesResponded counter by one.
	IncrementResponseCount(ctx context.Context, uid string) error
	// Upsert writes the whole user document.
	Upsert(ctx context.Context, user *models.User) error
}
