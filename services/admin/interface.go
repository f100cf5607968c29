package admin

import (
	"context"
	"io"
	"time"

	"quotecompare/database/repository"
	"quotecompare/models"

	"firebase.google.com/go/v4/auth"
)

//go:generate mockgen -destination=../../handlers/mocks/admin_service.go -package=mocks quotecompare/services/admin AdminService

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	SetUserStatus(ctx context.Context, uid, status string) error
	PlatformStats(ctx context.Context) (*models.PlatformStats, error)
	UserStats(ctx context.Context, uid, start, end string) (*models.UserStats, error)
	ExportUsers(ctx context.Context, w io.Writer) error
}

// IdentityAdmin is the part of the Firebase auth client used to block accounts.
type IdentityAdmin interface {
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Users    repository.UserRepository
	Quotes   repository.QuoteRepository
	Identity IdentityAdmin
	Now      func() time.Time
}

// NewDefaultAdminService builds the admin service. identity may be nil when
// Firebase Authentication is not configured.
func NewDefaultAdminService(users repository.UserRepository, quotes repository.QuoteRepository, identity IdentityAdmin) *DefaultAdminService {
	return &DefaultAdminService{Users: users, Quotes: quotes, Identity: identity, Now: time.Now}
}
