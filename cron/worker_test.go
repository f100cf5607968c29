package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"quotecompare/models"
	"quotecompare/services/notification"
	"quotecompare/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	handled []models.NotificationEvent
	err     error
}

func (s *stubNotifier) QuoteReceived(context.Context, models.Quote) error   { return nil }
func (s *stubNotifier) VendorLeadAlert(context.Context, models.Quote) error { return nil }
func (s *stubNotifier) ResponseReceived(context.Context, models.Quote, models.Response) error {
	return nil
}

func (s *stubNotifier) Handle(_ context.Context, ev models.NotificationEvent) error {
	s.handled = append(s.handled, ev)
	return s.err
}

func TestHandleNotificationTask(t *testing.T) {
	stub := &stubNotifier{}
	handler := handleNotificationTask(stub)

	task, _, err := tasks.NewNotificationTask(models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: models.Quote{ID: "q1"}}, time.Second)
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Len(t, stub.handled, 1)
	assert.Equal(t, "q1", stub.handled[0].Quote.ID)
}

func TestHandleNotificationTask_Errors(t *testing.T) {
	stub := &stubNotifier{err: errors.New("smtp down")}
	handler := handleNotificationTask(stub)

	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendNotification, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	task, _, err := tasks.NewNotificationTask(models.NotificationEvent{Kind: models.NotifyQuoteCreated}, time.Second)
	require.NoError(t, err)
	err = handler(context.Background(), task)
	assert.EqualError(t, err, "smtp down")
}

type countingMailer struct{ sent map[string]int }

func (m *countingMailer) Send(_ context.Context, mail notification.Mail) error {
	m.sent[mail.To]++
	return nil
}

type downPush struct{ attempts int }

func (p *downPush) SendToTopic(context.Context, string, string, string, map[string]string) error {
	p.attempts++
	return errors.New("fcm unavailable")
}

// A failing vendor alert is retried on its own task; the confirmation email
// goes out once.
func TestHandleNotificationTask_PushRetriesDoNotResendEmail(t *testing.T) {
	mailer := &countingMailer{sent: map[string]int{}}
	push := &downPush{}
	svc, err := notification.NewDefaultNotificationService(mailer, push, notification.Options{VendorTopicPrefix: "vendor-leads-"})
	require.NoError(t, err)
	handler := handleNotificationTask(svc)

	ev := models.NotificationEvent{
		Kind:  models.NotifyQuoteCreated,
		Quote: models.Quote{ID: "q1", ContactEmail: "a@example.com", ServiceType: "solar"},
	}
	const maxRuns = 4 // MaxRetry(3)
	for _, part := range ev.PerChannel() {
		task, _, err := tasks.NewNotificationTask(part, time.Second)
		require.NoError(t, err)
		for run := 0; run < maxRuns; run++ {
			if handler(context.Background(), task) == nil {
				break
			}
		}
	}

	assert.Equal(t, 1, mailer.sent["a@example.com"])
	assert.Equal(t, maxRuns, push.attempts)
}
