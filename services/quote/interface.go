package quote

import (
	"context"
	"time"

	"quotecompare/database/repository"
	"quotecompare/models"
	"quotecompare/services/notification"
)

//go:generate mockgen -destination=../../handlers/mocks/quote_service.go -package=mocks quotecompare/services/quote QuoteService

// QuoteService defines the quote and response lifecycle.
type QuoteService interface {
	CreateQuote(ctx context.Context, req models.QuoteRequest, requester *models.AuthUser) (*models.Quote, error)
	ListQuotes(ctx context.Context, requester models.AuthUser) ([]models.Quote, error)
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	RespondToQuote(ctx context.Context, quoteID string, vendor models.AuthUser, in models.ResponseInput) (*models.Response, error)
	UpdateResponse(ctx context.Context, quoteID string, vendor models.AuthUser, in models.ResponseInput) (*models.Response, error)
}

// DefaultQuoteService is the production implementation.
type DefaultQuoteService struct {
	Quotes     repository.QuoteRepository
	Users      repository.UserRepository
	Dispatcher notification.Dispatcher
	Now        func() time.Time
}

func NewDefaultQuoteService(quotes repository.QuoteRepository, users repository.UserRepository, dispatcher notification.Dispatcher) *DefaultQuoteService {
	return &DefaultQuoteService{
		Quotes:     quotes,
		Users:      users,
		Dispatcher: dispatcher,
		Now:        time.Now,
	}
}
