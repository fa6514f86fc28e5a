package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_dispatched_total",
			Help: "Reminders marked as sent by the dispatcher",
		},
	)

	RemindersStaleDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_stale_deleted_total",
			Help: "Reminders deleted because their appointment is missing or not confirmed",
		},
	)

	PushFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_push_failures_total",
			Help: "Push sends that returned an error",
		},
	)

	NotificationsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_swept_total",
			Help: "Notifications removed by the retention sweeper",
		},
	)

	RemindersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_cancelled_total",
			Help: "Unsent reminders removed after their appointment was cancelled",
		},
	)

	HandlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "reminder_handler_duration_seconds",
			Help: "Duration of handler invocations in seconds",
		},
		[]string{"handler", "outcome"},
	)
)
