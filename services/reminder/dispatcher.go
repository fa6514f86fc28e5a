package reminder

import (
	"context"
	"fmt"
	"time"

	"apptreminders/config"
	appointmentRepo "apptreminders/database/repository/appointment"
	reminderRepo "apptreminders/database/repository/reminder"
	userRepo "apptreminders/database/repository/user"
	"apptreminders/models"
	"apptreminders/services/notification"
	"apptreminders/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher sends due reminders and marks them processed.
type Dispatcher struct {
	Reminders    reminderRepo.ReminderRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Pusher       notification.Pusher
	Logger       *zap.Logger

	// Limit caps the reminders handled per run. Zero means the default,
	// and values above one batch are lowered to fit.
	Limit        int
	DefaultTitle string
	Now          func() time.Time
}

// Run handles one timer tick. It returns nil, nil when nothing is due.
//
// Reminders whose appointment is gone or no longer CONFIRMED are deleted.
// Every other reminder is marked sent, whether or not a push went out:
// "sent" means processed, and push failures are only logged. All writes
// are committed in a single batch after the pushes.
func (d *Dispatcher) Run(ctx context.Context) (*models.DispatchResult, error) {
	start := time.Now()
	now := d.now()
	id := uuid.NewString()
	logger := d.Logger.With(zap.String("runId", id))

	due, err := d.Reminders.FindDue(ctx, now, d.limit())
	if err != nil {
		logger.Error("Error sending appointment reminders", zap.Error(err))
		observe("dispatch", start, err)
		return nil, err
	}
	if len(due) == 0 {
		logger.Debug("No reminders to send at this time")
		observe("dispatch", start, nil)
		return nil, nil
	}
	logger.Info("Found reminders to send", zap.Int("count", len(due)))

	result := &models.DispatchResult{RunID: id, Processed: len(due), Timestamp: now}
	batch := d.Reminders.NewBatch()

	for _, rem := range due {
		if err := d.process(ctx, logger, rem, batch, result); err != nil {
			logger.Error("Error sending appointment reminders", zap.String("reminderId", rem.ID), zap.Error(err))
			observe("dispatch", start, err)
			return nil, err
		}
	}

	if err := batch.Commit(ctx); err != nil {
		logger.Error("Error committing reminder batch", zap.Error(err))
		observe("dispatch", start, err)
		return nil, err
	}

	utils.RemindersDispatched.Add(float64(result.MarkedSent))
	utils.RemindersStaleDeleted.Add(float64(result.StaleDeleted))
	utils.PushFailures.Add(float64(result.PushFailures))
	observe("dispatch", start, nil)

	result.Success = true
	logger.Info("Successfully processed reminders",
		zap.Int("markedSent", result.MarkedSent),
		zap.Int("pushesSent", result.PushesSent),
		zap.Int("staleDeleted", result.StaleDeleted))
	return result, nil
}

func (d *Dispatcher) process(ctx context.Context, logger *zap.Logger, rem models.Reminder, batch reminderRepo.Batch, result *models.DispatchResult) error {
	appt, err := d.Appointments.GetByID(ctx, rem.AppointmentID)
	if err != nil {
		return fmt.Errorf("load appointment for reminder %s: %w", rem.ID, err)
	}
	if !appt.AcceptsReminders() {
		status := "missing"
		if appt != nil {
			status = string(appt.Status)
		}
		logger.Info("Appointment not active, deleting reminder",
			zap.String("reminderId", rem.ID),
			zap.String("appointmentId", rem.AppointmentID),
			zap.String("status", status))
		batch.Delete(rem.ID)
		result.StaleDeleted++
		return nil
	}

	user, err := d.Users.GetByID(ctx, rem.ReceiverID)
	if err != nil {
		return fmt.Errorf("load receiver for reminder %s: %w", rem.ID, err)
	}

	if user.CanReceivePush() {
		title := rem.Title
		if title == "" {
			title = d.DefaultTitle
		}
		if err := d.Pusher.Send(ctx, user.FCMToken, title, rem.Body, rem.PushData()); err != nil {
			logger.Warn("Push delivery failed, marking reminder as processed",
				zap.String("reminderId", rem.ID),
				zap.String("receiverId", rem.ReceiverID),
				zap.Error(err))
			result.PushFailures++
		} else {
			result.PushesSent++
		}
	} else {
		logger.Debug("Receiver has no push token or disabled notifications",
			zap.String("reminderId", rem.ID),
			zap.String("receiverId", rem.ReceiverID))
	}

	batch.MarkSent(rem.ID, d.now())
	result.MarkedSent++
	return nil
}

func (d *Dispatcher) limit() int {
	switch {
	case d.Limit <= 0:
		return config.DefaultDispatchLimit
	case d.Limit > config.MaxBatchWrites:
		return config.MaxBatchWrites
	}
	return d.Limit
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}
