package notification

import (
	"context"
	"sync"
	"time"

	"quotecompare/models"
	"quotecompare/services/tasks"
	"quotecompare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher hands notification events off the request path. Dispatch never
// blocks on delivery and never reports delivery failures to the caller.
type Dispatcher interface {
	Dispatch(ev models.NotificationEvent)
	// Wait blocks until in-flight deliveries finish or ctx is done.
	Wait(ctx context.Context) error
}

// GoroutineDispatcher delivers each event on its own goroutine with a timeout.
type GoroutineDispatcher struct {
	svc     NotificationService
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewGoroutineDispatcher(svc NotificationService, timeout time.Duration) *GoroutineDispatcher {
	return &GoroutineDispatcher{svc: svc, timeout: timeout}
}

func (d *GoroutineDispatcher) Dispatch(ev models.NotificationEvent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.svc.Handle(ctx, ev); err != nil {
			utils.GetLogger().Warn("notification failed",
				zap.String("kind", string(ev.Kind)), zap.String("quoteId", ev.Quote.ID), zap.Error(err))
		}
	}()
}

func (d *GoroutineDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TaskEnqueuer is the subset of *asynq.Client the queue dispatcher needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher publishes events to the asynq queue for the worker to
// deliver. Events that cannot be enqueued are delivered in-process.
type QueueDispatcher struct {
	client   TaskEnqueuer
	fallback *GoroutineDispatcher
	timeout  time.Duration
}

func NewQueueDispatcher(client TaskEnqueuer, svc NotificationService, timeout time.Duration) *QueueDispatcher {
	return &QueueDispatcher{
		client:   client,
		fallback: NewGoroutineDispatcher(svc, timeout),
		timeout:  timeout,
	}
}

// Dispatch enqueues one task per channel so a failing channel is retried
// alone.
func (d *QueueDispatcher) Dispatch(ev models.NotificationEvent) {
	for _, part := range ev.PerChannel() {
		task, opts, err := tasks.NewNotificationTask(part, d.timeout)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_, err = d.client.EnqueueContext(ctx, task, opts...)
			cancel()
		}
		if err != nil {
			utils.GetLogger().Warn("failed to enqueue notification, delivering in-process",
				zap.String("kind", string(part.Kind)), zap.String("channel", string(part.Channel)), zap.Error(err))
			d.fallback.Dispatch(part)
		}
	}
}

func (d *QueueDispatcher) Wait(ctx context.Context) error {
	return d.fallback.Wait(ctx)
}
