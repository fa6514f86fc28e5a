package models

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

type Appointment struct {
	ID     string            `firestore:"-" bson:"id" json:"id"`
	Status AppointmentStatus `firestore:"status" bson:"status" json:"status"`
}

// AcceptsReminders reports whether reminders for this appointment may still be delivered.
func (a *Appointment) AcceptsReminders() bool {
	return a != nil && a.Status == AppointmentConfirmed
}

// AppointmentChange carries the before and after snapshots of an updated appointment.
type AppointmentChange struct {
	AppointmentID string
	Before        Appointment
	After         Appointment
}

// IsCancellation is true only for a transition into CANCELLED from any other status.
func (c AppointmentChange) IsCancellation() bool {
	return c.Before.Status != AppointmentCancelled && c.After.Status == AppointmentCancelled
}
