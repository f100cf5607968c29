package quoteRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quotecompare/models"
	"quotecompare/utils"

	"go.uber.org/zap"
)

// FallbackQuoteRepo routes every call to Primary and re-applies it against
// Local when the primary fails or does not hold the quote. Quote-level errors
// (duplicate response, closed quote, missing response) are returned as is.
type FallbackQuoteRepo struct {
	Primary QuoteRepository
	Local   QuoteRepository
}

// NewFallbackQuoteRepo composes a primary store with the local file store.
func NewFallbackQuoteRepo(primary, local QuoteRepository) *FallbackQuoteRepo {
	return &FallbackQuoteRepo{Primary: primary, Local: local}
}

func (r *FallbackQuoteRepo) Create(ctx context.Context, q *models.Quote) error {
	err := r.Primary.Create(ctx, q)
	if err == nil {
		return nil
	}
	utils.GetLogger().Warn("primary store create failed, using local store", zap.Error(err))
	q.ID = ""
	if lerr := r.Local.Create(ctx, q); lerr != nil {
		return fmt.Errorf("create quote: primary: %v; local: %w", err, lerr)
	}
	return nil
}

func (r *FallbackQuoteRepo) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	if isLocalID(id) {
		return r.Local.GetByID(ctx, id)
	}
	q, err := r.Primary.GetByID(ctx, id)
	if err == nil {
		return q, nil
	}
	r.logFallback("get", id, err)
	q, lerr := r.Local.GetByID(ctx, id)
	if lerr != nil {
		return nil, pickError(err, lerr)
	}
	return q, nil
}

func (r *FallbackQuoteRepo) List(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	quotes, err := r.Primary.List(ctx, filter)
	if err == nil {
		return quotes, nil
	}
	utils.GetLogger().Warn("primary store list failed, using local store", zap.Error(err))
	return r.Local.List(ctx, filter)
}

func (r *FallbackQuoteRepo) AppendResponse(ctx context.Context, id string, resp models.Response) (*models.Quote, error) {
	if isLocalID(id) {
		return r.Local.AppendResponse(ctx, id, resp)
	}
	q, err := r.Primary.AppendResponse(ctx, id, resp)
	if err == nil || isDomainError(err) {
		return q, err
	}
	r.logFallback("respond", id, err)
	q, lerr := r.Local.AppendResponse(ctx, id, resp)
	if lerr != nil {
		return nil, pickError(err, lerr)
	}
	return q, nil
}

func (r *FallbackQuoteRepo) ReviseResponse(ctx context.Context, id, vendorID string, in models.ResponseInput, at time.Time) (*models.Response, error) {
	if isLocalID(id) {
		return r.Local.ReviseResponse(ctx, id, vendorID, in, at)
	}
	resp, err := r.Primary.ReviseResponse(ctx, id, vendorID, in, at)
	if err == nil || isDomainError(err) {
		return resp, err
	}
	r.logFallback("revise", id, err)
	revised, lerr := r.Local.ReviseResponse(ctx, id, vendorID, in, at)
	if lerr != nil {
		return nil, pickError(err, lerr)
	}
	return revised, nil
}

func (r *FallbackQuoteRepo) logFallback(op, id string, err error) {
	if errors.Is(err, models.ErrQuoteNotFound) {
		utils.GetLogger().Debug("quote not in primary store, trying local store",
			zap.String("op", op), zap.String("quoteId", id))
		return
	}
	utils.GetLogger().Warn("primary store failed, using local store",
		zap.String("op", op), zap.String("quoteId", id), zap.Error(err))
}

// pickError reports the primary failure when the local store simply never
// had the quote.
func pickError(primaryErr, localErr error) error {
	if errors.Is(localErr, models.ErrQuoteNotFound) && !errors.Is(primaryErr, models.ErrQuoteNotFound) {
		return primaryErr
	}
	return localErr
}

func isLocalID(id string) bool {
	q := models.Quote{ID: id}
	return q.IsLocal()
}
