package appointmentRepo

import (
	"context"
	"errors"
	"fmt"

	"apptreminders/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo(coll *mongo.Collection) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: coll}
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if id == "" {
		return nil, nil
	}

	opts := options.FindOne().SetProjection(bson.M{"id": 1, "status": 1})

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}
