package tasks

import (
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeDispatchReminders    = "reminders:dispatch"
	TypeCleanupNotifications = "notifications:cleanup"

	QueueReminders = "reminders"
)

// NewDispatchTask builds the periodic reminder dispatch task.
func NewDispatchTask(maxRetry int) *asynq.Task {
	return asynq.NewTask(TypeDispatchReminders, nil,
		asynq.Queue(QueueReminders),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(9*time.Minute),
	)
}

// NewCleanupTask builds the daily retention sweep task.
func NewCleanupTask(maxRetry int) *asynq.Task {
	return asynq.NewTask(TypeCleanupNotifications, nil,
		asynq.Queue(QueueReminders),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(30*time.Minute),
	)
}
