package cron

import (
	"context"
	"fmt"
	"time"

	"quotecompare/services/notification"
	"quotecompare/services/tasks"
	"quotecompare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationWorker consumes queued notification tasks.
type NotificationWorker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewNotificationWorker builds the asynq server for the notification queue.
func NewNotificationWorker(redisOpts asynq.RedisClientOpt, notifSvc notification.NotificationService) *NotificationWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: utils.GetLogger().Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendNotification, handleNotificationTask(notifSvc))

	return &NotificationWorker{srv: srv, mux: mux}
}

// Start launches the worker, retrying with linear backoff.
func (w *NotificationWorker) Start() error {
	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = w.srv.Start(w.mux); err == nil {
			utils.GetLogger().Info("notification worker started")
			return nil
		}
		utils.GetLogger().Warn("notification worker failed to start",
			zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
		time.Sleep(time.Duration(attempts*2) * time.Second)
	}
	return fmt.Errorf("notification worker: %w", err)
}

// Shutdown waits for active tasks and stops the worker.
func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleNotificationTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ev, err := tasks.ParseNotificationTask(task)
		if err != nil {
			utils.GetLogger().Error("invalid notification payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := notifSvc.Handle(ctx, ev); err != nil {
			utils.GetLogger().Warn("notification delivery failed",
				zap.String("kind", string(ev.Kind)), zap.String("quoteId", ev.Quote.ID), zap.Error(err))
			return err
		}
		return nil
	}
}
