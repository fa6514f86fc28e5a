package reminder

import (
	"context"
	"time"

	reminderRepo "apptreminders/database/repository/reminder"
	"apptreminders/models"
	"apptreminders/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sweeper deletes notifications older than the retention window.
type Sweeper struct {
	Reminders     reminderRepo.ReminderRepository
	Logger        *zap.Logger
	RetentionDays int
	Now           func() time.Time
}

// Cutoff is the creation time before which notifications are removed.
func (s *Sweeper) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -s.RetentionDays)
}

// Run deletes every notification created strictly before the cutoff.
// It returns nil, nil when there is nothing to delete.
func (s *Sweeper) Run(ctx context.Context) (*models.SweepResult, error) {
	start := time.Now()
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	id := uuid.NewString()
	logger := s.Logger.With(zap.String("runId", id))
	cutoff := s.Cutoff(now)

	old, err := s.Reminders.FindCreatedBefore(ctx, cutoff)
	if err != nil {
		logger.Error("Error cleaning up old notifications", zap.Error(err))
		observe("sweep", start, err)
		return nil, err
	}
	if len(old) == 0 {
		logger.Info("No old notifications to clean up", zap.Time("cutoff", cutoff))
		observe("sweep", start, nil)
		return nil, nil
	}
	logger.Info("Found old notifications to delete", zap.Int("count", len(old)), zap.Time("cutoff", cutoff))

	deleted, err := deleteInBatches(ctx, s.Reminders, old)
	utils.NotificationsSwept.Add(float64(deleted))
	if err != nil {
		logger.Error("Error cleaning up old notifications", zap.Int("deleted", deleted), zap.Error(err))
		observe("sweep", start, err)
		return nil, err
	}
	observe("sweep", start, nil)

	logger.Info("Successfully deleted old notifications", zap.Int("deleted", deleted))
	return &models.SweepResult{
		Success:      true,
		RunID:        id,
		DeletedCount: deleted,
		Cutoff:       cutoff,
		Timestamp:    now,
	}, nil
}
