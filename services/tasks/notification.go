package tasks

import (
	"encoding/json"
	"time"

	"quotecompare/models"

	"github.com/hibiken/asynq"
)

const TypeSendNotification = "notification:send"

func NewNotificationTask(ev models.NotificationEvent, timeout time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendNotification, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(timeout)}

	return task, opts, nil
}

// ParseNotificationTask decodes a task built by NewNotificationTask.
func ParseNotificationTask(task *asynq.Task) (models.NotificationEvent, error) {
	var ev models.NotificationEvent
	err := json.Unmarshal(task.Payload(), &ev)
	return ev, err
}
