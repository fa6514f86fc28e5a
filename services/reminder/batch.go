package reminder

import (
	"context"
	"fmt"

	"apptreminders/config"
	reminderRepo "apptreminders/database/repository/reminder"
	"apptreminders/models"
)

// deleteInBatches deletes reminders in chunks that fit a single batch commit.
// Chunks committed before a failure stay committed.
func deleteInBatches(ctx context.Context, repo reminderRepo.ReminderRepository, reminders []models.Reminder) (int, error) {
	deleted := 0
	for start := 0; start < len(reminders); start += config.MaxBatchWrites {
		end := min(start+config.MaxBatchWrites, len(reminders))

		batch := repo.NewBatch()
		for _, r := range reminders[start:end] {
			batch.Delete(r.ID)
		}
		if err := batch.Commit(ctx); err != nil {
			return deleted, fmt.Errorf("delete chunk %d-%d: %w", start, end, err)
		}
		deleted += end - start
	}
	return deleted, nil
}
