package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"quotecompare/models"
	"quotecompare/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []Mail
	failOn func(Mail) bool
}

func (f *fakeMailer) Send(_ context.Context, m Mail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != nil && f.failOn(m) {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMailer) Sent() []Mail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Mail(nil), f.sent...)
}

type fakePush struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakePush) SendToTopic(_ context.Context, topic, _, _ string, _ map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return nil
}

func newService(t *testing.T, mailer Mailer, push PushSender) *DefaultNotificationService {
	t.Helper()
	svc, err := NewDefaultNotificationService(mailer, push, Options{
		TrackingBaseURL:   "http://localhost:4200/track/",
		VendorTopicPrefix: "vendor-leads-",
		AppName:           "Quote Compare App",
	})
	require.NoError(t, err)
	return svc
}

func sampleQuote() models.Quote {
	return models.Quote{
		ID:           "q1",
		ContactEmail: "a@example.com",
		ServiceType:  "Solar Panels",
		PostalCode:   "3000",
		Details:      "6.6kW <system>",
		CreatedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandle_QuoteCreated(t *testing.T) {
	mailer, push := &fakeMailer{}, &fakePush{}
	svc := newService(t, mailer, push)

	err := svc.Handle(context.Background(), models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: sampleQuote()})
	require.NoError(t, err)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Contains(t, sent[0].Text, "http://localhost:4200/track/q1")
	assert.Contains(t, sent[0].HTML, "6.6kW &lt;system&gt;")
	assert.Equal(t, []string{"vendor-leads-solar-panels"}, push.topics)
}

func TestQuoteReceived_FallsBackToPlainText(t *testing.T) {
	mailer := &fakeMailer{failOn: func(m Mail) bool { return m.HTML != "" }}
	svc := newService(t, mailer, &fakePush{})

	require.NoError(t, svc.QuoteReceived(context.Background(), sampleQuote()))
	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].HTML)
}

func TestHandle_ResponseAdded(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newService(t, mailer, &fakePush{})

	resp := &models.Response{VendorID: "v1", VendorName: "Acme Solar", Price: 4500}
	err := svc.Handle(context.Background(), models.NotificationEvent{Kind: models.NotifyResponseAdded, Quote: sampleQuote(), Response: resp})
	require.NoError(t, err)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Quote Response!", sent[0].Subject)
	assert.Contains(t, sent[0].Text, "Acme Solar")
	assert.Contains(t, sent[0].Text, "$4500.00")

	err = svc.Handle(context.Background(), models.NotificationEvent{Kind: models.NotifyResponseAdded, Quote: sampleQuote()})
	assert.Error(t, err)
}

func TestNoContactEmailSkipsMail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newService(t, mailer, &fakePush{})
	q := sampleQuote()
	q.ContactEmail = ""

	require.NoError(t, svc.QuoteReceived(context.Background(), q))
	require.NoError(t, svc.ResponseReceived(context.Background(), q, models.Response{}))
	assert.Empty(t, mailer.Sent())
}

func TestVendorTopic(t *testing.T) {
	assert.Equal(t, "p-solar", VendorTopic("p-", "Solar"))
	assert.Equal(t, "p-hot-water", VendorTopic("p-", " Hot  Water! "))
	assert.Equal(t, "p-general", VendorTopic("p-", "???"))
}

func TestSMTPMailer_BuildsMultipartMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	orig := SMTPSendFunc
	SMTPSendFunc = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}
	defer func() { SMTPSendFunc = orig }()

	mailer := &SMTPMailer{Host: "smtp.example.com", Port: 587, User: "app@example.com", Password: "x", FromName: "Quote Compare App"}
	err := mailer.Send(context.Background(), Mail{To: "a@example.com", Subject: "Hi", Text: "plain", HTML: "<b>rich</b>"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "app@example.com", gotFrom)
	assert.Equal(t, []string{"a@example.com"}, gotTo)
	msg := string(gotMsg)
	assert.Contains(t, msg, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, msg, "plain")
	assert.Contains(t, msg, "<b>rich</b>")
	assert.True(t, strings.Index(msg, "text/plain") < strings.Index(msg, "text/html"))
}

func TestSMTPMailer_PropagatesSendError(t *testing.T) {
	orig := SMTPSendFunc
	SMTPSendFunc = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	defer func() { SMTPSendFunc = orig }()

	mailer := &SMTPMailer{Host: "smtp.example.com", Port: 587, User: "app@example.com"}
	err := mailer.Send(context.Background(), Mail{To: "a@example.com", Subject: "Hi", Text: "plain"})
	assert.ErrorContains(t, err, "refused")
}

func TestGoroutineDispatcher_WaitDrains(t *testing.T) {
	mailer := &fakeMailer{}
	d := NewGoroutineDispatcher(newService(t, mailer, &fakePush{}), time.Second)

	for i := 0; i < 5; i++ {
		d.Dispatch(models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: sampleQuote()})
	}
	require.NoError(t, d.Wait(context.Background()))
	assert.Len(t, mailer.Sent(), 5)
}

type failingEnqueuer struct{ calls int }

func (f *failingEnqueuer) EnqueueContext(context.Context, *asynq.Task, ...asynq.Option) (*asynq.TaskInfo, error) {
	f.calls++
	return nil, errors.New("redis unavailable")
}

type recordingEnqueuer struct{ tasks []*asynq.Task }

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestQueueDispatcher_Enqueues(t *testing.T) {
	mailer := &fakeMailer{}
	enq := &recordingEnqueuer{}
	d := NewQueueDispatcher(enq, newService(t, mailer, &fakePush{}), time.Second)

	d.Dispatch(models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: sampleQuote()})
	require.NoError(t, d.Wait(context.Background()))

	require.Len(t, enq.tasks, 2, "quote.created is queued once per channel")
	var channels []models.NotificationChannel
	for _, task := range enq.tasks {
		ev, err := tasks.ParseNotificationTask(task)
		require.NoError(t, err)
		channels = append(channels, ev.Channel)
	}
	assert.Equal(t, []models.NotificationChannel{models.ChannelEmail, models.ChannelPush}, channels)
	assert.Empty(t, mailer.Sent(), "queued events are delivered by the worker")
}

func TestQueueDispatcher_FallsBackInProcess(t *testing.T) {
	mailer := &fakeMailer{}
	enq := &failingEnqueuer{}
	d := NewQueueDispatcher(enq, newService(t, mailer, &fakePush{}), time.Second)

	d.Dispatch(models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: sampleQuote()})
	require.NoError(t, d.Wait(context.Background()))

	assert.Equal(t, 2, enq.calls)
	assert.Len(t, mailer.Sent(), 1)
}

func TestHandle_ChannelScoped(t *testing.T) {
	mailer, push := &fakeMailer{}, &fakePush{}
	svc := newService(t, mailer, push)
	ev := models.NotificationEvent{Kind: models.NotifyQuoteCreated, Quote: sampleQuote()}

	push1 := ev
	push1.Channel = models.ChannelPush
	require.NoError(t, svc.Handle(context.Background(), push1))
	assert.Empty(t, mailer.Sent())
	assert.Len(t, push.topics, 1)

	mail := ev
	mail.Channel = models.ChannelEmail
	require.NoError(t, svc.Handle(context.Background(), mail))
	assert.Len(t, mailer.Sent(), 1)
	assert.Len(t, push.topics, 1)
}
