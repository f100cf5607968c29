package quoteRepo

import (
	"context"
	"errors"
	"time"

	"quotecompare/models"
)

// ErrConcurrentUpdate is returned when an optimistic write keeps losing to other writers.
var ErrConcurrentUpdate = errors.New("quote was modified concurrently")

// QuoteRepository defines methods for quote data access.
type QuoteRepository interface {
	// Create persists a new quote and sets its ID.
	Create(ctx context.Context, q *models.Quote) error
	// GetByID retrieves a quote by its ID.
	GetByID(ctx context.Context, id string) (*models.Quote, error)
	// List returns quotes matching the filter, newest first.
	List(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error)
	// AppendResponse atomically adds a vendor response to a quote.
	AppendResponse(ctx context.Context, id string, r models.Response) (*models.Quote, error)
	// ReviseResponse atomically edits a vendor's response, archiving the previous values.
	ReviseResponse(ctx context.Context, id, vendorID string, in models.ResponseInput, at time.Time) (*models.Response, error)
}

// isDomainError reports errors that describe the quote itself rather than the store.
// These must not trigger a fallback retry.
func isDomainError(err error) bool {
	return errors.Is(err, models.ErrDuplicateResponse) ||
		errors.Is(err, models.ErrQuoteClosed) ||
		errors.Is(err, models.ErrResponseNotFound)
}
