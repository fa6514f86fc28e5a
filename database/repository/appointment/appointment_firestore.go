package appointmentRepo

import (
	"context"
	"fmt"

	"apptreminders/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreAppointmentRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreAppointmentRepo(client *firestore.Client, collection string) *FirestoreAppointmentRepo {
	return &FirestoreAppointmentRepo{coll: client.Collection(collection)}
}

func (r *FirestoreAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if id == "" {
		return nil, nil
	}

	snap, err := r.coll.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}

	var appt models.Appointment
	if err := snap.DataTo(&appt); err != nil {
		return nil, fmt.Errorf("failed to decode appointment %s: %w", id, err)
	}
	appt.ID = snap.Ref.ID
	return &appt, nil
}
