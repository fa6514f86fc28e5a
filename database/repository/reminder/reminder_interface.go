package reminderRepo

import (
	"context"
	"time"

	"apptreminders/models"
)

// ReminderRepository defines data access for the notifications collection.
type ReminderRepository interface {
	// FindDue returns unsent reminders with sendAt <= now, at most limit of them.
	FindDue(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error)
	// FindCreatedBefore returns every reminder with createdAt strictly before cutoff.
	FindCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Reminder, error)
	// FindUnsentByAppointment returns unsent reminders for one appointment.
	FindUnsentByAppointment(ctx context.Context, appointmentID string) ([]models.Reminder, error)
	// NewBatch starts an atomic multi-document write.
	NewBatch() Batch
}

// Batch stages reminder mutations and applies them as one unit on Commit.
type Batch interface {
	MarkSent(id string, at time.Time)
	Delete(id string)
	Len() int
	Commit(ctx context.Context) error
}
