package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"apptreminders/models"

	"cloud.google.com/go/firestore"
)

// FirestoreReminderRepo implements ReminderRepository on Cloud Firestore.
type FirestoreReminderRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

func NewFirestoreReminderRepo(client *firestore.Client, collection string) *FirestoreReminderRepo {
	return &FirestoreReminderRepo{client: client, coll: client.Collection(collection)}
}

func (r *FirestoreReminderRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	q := r.coll.Where("sent", "==", false).Where("sendAt", "<=", now).Limit(limit)
	reminders, err := r.run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	return reminders, nil
}

func (r *FirestoreReminderRepo) FindCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Reminder, error) {
	reminders, err := r.run(ctx, r.coll.Where("createdAt", "<", cutoff))
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications created before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return reminders, nil
}

func (r *FirestoreReminderRepo) FindUnsentByAppointment(ctx context.Context, appointmentID string) ([]models.Reminder, error) {
	q := r.coll.Where("appointmentId", "==", appointmentID).Where("sent", "==", false)
	reminders, err := r.run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsent reminders for appointment %s: %w", appointmentID, err)
	}
	return reminders, nil
}

func (r *FirestoreReminderRepo) run(ctx context.Context, q firestore.Query) ([]models.Reminder, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	reminders := make([]models.Reminder, 0, len(docs))
	for _, doc := range docs {
		var rem models.Reminder
		if err := doc.DataTo(&rem); err != nil {
			return nil, fmt.Errorf("failed to decode reminder %s: %w", doc.Ref.ID, err)
		}
		rem.ID = doc.Ref.ID
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

// Ping issues a single-document read to verify connectivity.
func (r *FirestoreReminderRepo) Ping(ctx context.Context) error {
	_, err := r.coll.Limit(1).Documents(ctx).GetAll()
	return err
}

func (r *FirestoreReminderRepo) NewBatch() Batch {
	return &firestoreBatch{client: r.client, coll: r.coll}
}

type firestoreWrite struct {
	ref    *firestore.DocumentRef
	delete bool
	at     time.Time
}

// firestoreBatch applies its writes in one transaction. Reminders marked sent
// that were deleted after the query are skipped rather than failing the commit.
type firestoreBatch struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
	writes []firestoreWrite
}

func (b *firestoreBatch) MarkSent(id string, at time.Time) {
	b.writes = append(b.writes, firestoreWrite{ref: b.coll.Doc(id), at: at})
}

func (b *firestoreBatch) Delete(id string) {
	b.writes = append(b.writes, firestoreWrite{ref: b.coll.Doc(id), delete: true})
}

func (b *firestoreBatch) Len() int {
	return len(b.writes)
}

func (b *firestoreBatch) Commit(ctx context.Context) error {
	if len(b.writes) == 0 {
		return nil
	}

	err := b.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var marked []*firestore.DocumentRef
		for _, w := range b.writes {
			if !w.delete {
				marked = append(marked, w.ref)
			}
		}
		exists := make(map[string]bool, len(marked))
		if len(marked) > 0 {
			snaps, err := tx.GetAll(marked)
			if err != nil {
				return err
			}
			for i, snap := range snaps {
				exists[marked[i].ID] = snap.Exists()
			}
		}

		for _, w := range b.writes {
			if w.delete {
				if err := tx.Delete(w.ref); err != nil {
					return err
				}
				continue
			}
			if !exists[w.ref.ID] {
				continue
			}
			if err := tx.Update(w.ref, []firestore.Update{
				{Path: "sent", Value: true},
				{Path: "updatedAt", Value: w.at},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit batch of %d writes: %w", len(b.writes), err)
	}
	return nil
}
