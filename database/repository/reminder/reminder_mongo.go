package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"apptreminders/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

func NewMongoReminderRepo(coll *mongo.Collection) *MongoReminderRepo {
	return &MongoReminderRepo{coll: coll}
}

// EnsureIndexes creates indexes backing the dispatcher, sweeper and cancellation queries.
func (r *MongoReminderRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sent", Value: 1}, {Key: "sendAt", Value: 1}}},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}, {Key: "sent", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}

func (r *MongoReminderRepo) FindDue(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	filter := bson.M{"sent": false, "sendAt": bson.M{"$lte": now}}
	opts := options.Find().SetLimit(int64(limit))

	reminders, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	return reminders, nil
}

func (r *MongoReminderRepo) FindCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Reminder, error) {
	reminders, err := r.find(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}}, options.Find())
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications created before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return reminders, nil
}

func (r *MongoReminderRepo) FindUnsentByAppointment(ctx context.Context, appointmentID string) ([]models.Reminder, error) {
	reminders, err := r.find(ctx, bson.M{"appointmentId": appointmentID, "sent": false}, options.Find())
	if err != nil {
		return nil, fmt.Errorf("failed to query unsent reminders for appointment %s: %w", appointmentID, err)
	}
	return reminders, nil
}

func (r *MongoReminderRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Reminder, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}

func (r *MongoReminderRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func (r *MongoReminderRepo) NewBatch() Batch {
	return &mongoBatch{coll: r.coll}
}

// mongoBatch applies its writes with a single BulkWrite inside a transaction.
type mongoBatch struct {
	coll   *mongo.Collection
	writes []mongo.WriteModel
}

func (b *mongoBatch) MarkSent(id string, at time.Time) {
	b.writes = append(b.writes, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"id": id}).
		SetUpdate(bson.M{"$set": bson.M{"sent": true, "updatedAt": at}}))
}

func (b *mongoBatch) Delete(id string) {
	b.writes = append(b.writes, mongo.NewDeleteOneModel().SetFilter(bson.M{"id": id}))
}

func (b *mongoBatch) Len() int {
	return len(b.writes)
}

func (b *mongoBatch) Commit(ctx context.Context) error {
	if len(b.writes) == 0 {
		return nil
	}

	session, err := b.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return b.coll.BulkWrite(sc, b.writes, options.BulkWrite().SetOrdered(true))
	})
	if err != nil {
		return fmt.Errorf("failed to commit batch of %d writes: %w", len(b.writes), err)
	}
	return nil
}
