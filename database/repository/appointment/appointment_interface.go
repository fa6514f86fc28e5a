package appointmentRepo

import (
	"context"

	"apptreminders/models"
)

// AppointmentRepository provides read-only access to appointments.
type AppointmentRepository interface {
	// GetByID returns nil, nil when the appointment does not exist.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}
