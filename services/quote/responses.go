package quote

import (
	"context"

	"quotecompare/models"
	"quotecompare/utils"

	"go.uber.org/zap"
)

// RespondToQuote appends the vendor's response, notifies the requester and
// bumps the vendor's response counter. Notification and counter failures are
// logged only.
func (s *DefaultQuoteService) RespondToQuote(ctx context.Context, quoteID string, vendor models.AuthUser, in models.ResponseInput) (*models.Response, error) {
	resp := models.Response{
		VendorID:   vendor.UID,
		VendorName: vendor.DisplayName(),
		Price:      in.Price,
		Message:    in.Message,
		CreatedAt:  s.Now().UTC(),
	}
	updated, err := s.Quotes.AppendResponse(ctx, quoteID, resp)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("quote response saved",
		zap.String("quoteId", updated.ID), zap.String("vendorId", vendor.UID), zap.Float64("price", in.Price))

	s.dispatch(models.NotificationEvent{Kind: models.NotifyResponseAdded, Quote: *updated, Response: &resp})

	if s.Users != nil {
		if err := s.Users.IncrementResponseCount(ctx, vendor.UID); err != nil {
			utils.GetLogger().Warn("failed to update vendor response count",
				zap.String("vendorId", vendor.UID), zap.Error(err))
		}
	}
	return &resp, nil
}

// UpdateResponse revises the vendor's existing response, archiving the prior
// price and message. Concurrent edits are last-write-wins.
func (s *DefaultQuoteService) UpdateResponse(ctx context.Context, quoteID string, vendor models.AuthUser, in models.ResponseInput) (*models.Response, error) {
	resp, err := s.Quotes.ReviseResponse(ctx, quoteID, vendor.UID, in, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("quote response updated",
		zap.String("quoteId", quoteID), zap.String("vendorId", vendor.UID), zap.Int("revisions", len(resp.History)))
	return resp, nil
}
