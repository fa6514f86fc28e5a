package reminder

import (
	"context"
	"time"

	reminderRepo "apptreminders/database/repository/reminder"
	"apptreminders/models"
	"apptreminders/utils"

	"go.uber.org/zap"
)

// CancellationWatcher removes pending reminders of appointments that get cancelled.
type CancellationWatcher struct {
	Reminders reminderRepo.ReminderRepository
	Logger    *zap.Logger
	Now       func() time.Time
}

// Handle reacts to one appointment update. Only a transition into CANCELLED
// from another status deletes anything; every other change returns nil, nil.
func (w *CancellationWatcher) Handle(ctx context.Context, change models.AppointmentChange) (*models.CancelResult, error) {
	if !change.IsCancellation() {
		return nil, nil
	}

	start := time.Now()
	logger := w.Logger.With(zap.String("appointmentId", change.AppointmentID))
	logger.Info("Appointment was cancelled, removing scheduled reminders",
		zap.String("previousStatus", string(change.Before.Status)))

	pending, err := w.Reminders.FindUnsentByAppointment(ctx, change.AppointmentID)
	if err != nil {
		logger.Error("Error cancelling reminders", zap.Error(err))
		observe("cancel", start, err)
		return nil, err
	}
	if len(pending) == 0 {
		logger.Info("No unsent reminders to cancel")
		observe("cancel", start, nil)
		return nil, nil
	}

	cancelled, err := deleteInBatches(ctx, w.Reminders, pending)
	utils.RemindersCancelled.Add(float64(cancelled))
	if err != nil {
		logger.Error("Error cancelling reminders", zap.Int("cancelled", cancelled), zap.Error(err))
		observe("cancel", start, err)
		return nil, err
	}
	observe("cancel", start, nil)

	now := time.Now().UTC()
	if w.Now != nil {
		now = w.Now()
	}
	logger.Info("Successfully cancelled reminders", zap.Int("cancelled", cancelled))
	return &models.CancelResult{
		Success:        true,
		AppointmentID:  change.AppointmentID,
		CancelledCount: cancelled,
		Timestamp:      now,
	}, nil
}
