package quote

import (
	"context"
	"fmt"
	"strings"

	"quotecompare/models"
	"quotecompare/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// CreateQuote stores a new open quote. Authenticated requesters' verified
// email wins over the body email; guests must supply one. The body email is
// only validated when it is the one used.
func (s *DefaultQuoteService) CreateQuote(ctx context.Context, req models.QuoteRequest, requester *models.AuthUser) (*models.Quote, error) {
	buyerID := models.GuestBuyerID
	if requester != nil {
		buyerID = requester.UID
	}
	contactEmail, err := contactEmailFor(req, requester)
	if err != nil {
		return nil, err
	}

	q := &models.Quote{
		BuyerID:      buyerID,
		ContactEmail: contactEmail,
		ServiceType:  strings.TrimSpace(req.ServiceType),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		Details:      req.Details,
		Status:       models.QuoteOpen,
		CreatedAt:    s.Now().UTC(),
		Responses:    []models.Response{},
	}
	if err := s.Quotes.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	utils.GetLogger().Info("quote created",
		zap.String("quoteId", q.ID), zap.String("buyerId", q.BuyerID), zap.String("serviceType", q.ServiceType))

	s.dispatch(models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: *q})
	return q, nil
}

// ListQuotes returns the requester's own quotes for buyers and every quote
// for other roles, newest first.
func (s *DefaultQuoteService) ListQuotes(ctx context.Context, requester models.AuthUser) ([]models.Quote, error) {
	filter := models.QuoteFilter{}
	if requester.Role == models.RoleBuyer {
		filter.BuyerID = requester.UID
	}
	quotes, err := s.Quotes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

func (s *DefaultQuoteService) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	return s.Quotes.GetByID(ctx, id)
}

func (s *DefaultQuoteService) dispatch(ev models.NotificationEvent) {
	if s.Dispatcher == nil {
		return
	}
	s.Dispatcher.Dispatch(ev)
}

func contactEmailFor(req models.QuoteRequest, requester *models.AuthUser) (string, error) {
	if requester != nil && requester.Email != "" {
		return requester.Email, nil
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "", ErrContactEmailRequired
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", ErrInvalidContactEmail
	}
	return email, nil
}
