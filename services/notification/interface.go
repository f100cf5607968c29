package notification

import (
	"context"
	"errors"
	"fmt"

	"quotecompare/models"
	"quotecompare/utils"

	"go.uber.org/zap"
)

// NotificationService sends the emails and vendor alerts tied to quote events.
type NotificationService interface {
	QuoteReceived(ctx context.Context, q models.Quote) error
	VendorLeadAlert(ctx context.Context, q models.Quote) error
	ResponseReceived(ctx context.Context, q models.Quote, r models.Response) error
	Handle(ctx context.Context, ev models.NotificationEvent) error
}

// Options configures the default service.
type Options struct {
	TrackingBaseURL   string
	VendorTopicPrefix string
	AppName           string
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	mailer Mailer
	push   PushSender
	opts   Options
}

func NewDefaultNotificationService(mailer Mailer, push PushSender, opts Options) (*DefaultNotificationService, error) {
	if mailer == nil || push == nil {
		return nil, fmt.Errorf("notification service initialization error: mailer or push sender is nil")
	}
	return &DefaultNotificationService{mailer: mailer, push: push, opts: opts}, nil
}

// QuoteReceived emails the requester a confirmation with a tracking link.
func (s *DefaultNotificationService) QuoteReceived(ctx context.Context, q models.Quote) error {
	if q.ContactEmail == "" {
		return nil
	}
	m, err := quoteReceivedMail(q, s.opts.TrackingBaseURL, s.opts.AppName)
	if err != nil {
		return err
	}
	err = s.mailer.Send(ctx, m)
	if err == nil {
		return nil
	}
	utils.GetLogger().Warn("HTML email failed, retrying as plain text", zap.String("quoteId", q.ID), zap.Error(err))
	m.HTML = ""
	return s.mailer.Send(ctx, m)
}

// VendorLeadAlert notifies vendors subscribed to the quote's service category.
func (s *DefaultNotificationService) VendorLeadAlert(ctx context.Context, q models.Quote) error {
	topic := VendorTopic(s.opts.VendorTopicPrefix, q.ServiceType)
	return s.push.SendToTopic(ctx, topic,
		"New "+orDefault(q.ServiceType, "service")+" request",
		fmt.Sprintf("A buyer in %s is looking for quotes.", orDefault(q.PostalCode, "your area")),
		map[string]string{
			"quoteId":     q.ID,
			"serviceType": q.ServiceType,
			"postalCode":  q.PostalCode,
		})
}

// ResponseReceived tells the requester a vendor has quoted.
func (s *DefaultNotificationService) ResponseReceived(ctx context.Context, q models.Quote, r models.Response) error {
	if q.ContactEmail == "" {
		return nil
	}
	return s.mailer.Send(ctx, responseReceivedMail(q, r, s.opts.TrackingBaseURL))
}

// Handle runs the notifications an event calls for on its channel and joins
// their errors.
func (s *DefaultNotificationService) Handle(ctx context.Context, ev models.NotificationEvent) error {
	switch ev.Kind {
	case models.NotifyQuoteCreated:
		var mailErr, pushErr error
		if ev.Wants(models.ChannelEmail) {
			mailErr = s.QuoteReceived(ctx, ev.Quote)
		}
		if ev.Wants(models.ChannelPush) {
			pushErr = s.VendorLeadAlert(ctx, ev.Quote)
		}
		return errors.Join(mailErr, pushErr)
	case models.NotifyResponseAdded:
		if ev.Response == nil {
			return fmt.Errorf("event %s without response", ev.Kind)
		}
		if !ev.Wants(models.ChannelEmail) {
			return nil
		}
		return s.ResponseReceived(ctx, ev.Quote, *ev.Response)
	}
	utils.GetLogger().Warn("unknown notification kind", zap.String("kind", string(ev.Kind)))
	return nil
}
