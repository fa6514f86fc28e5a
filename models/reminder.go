package models

import "time"

// Reminder is a scheduled push notification stored in the notifications collection.
type Reminder struct {
	ID            string    `firestore:"-" bson:"id" json:"id"`
	AppointmentID string    `firestore:"appointmentId" bson:"appointmentId" json:"appointmentId"`
	ReceiverID    string    `firestore:"receiverId" bson:"receiverId" json:"receiverId"`
	ReceiverRole  string    `firestore:"receiverRole" bson:"receiverRole" json:"receiverRole"`
	Title         string    `firestore:"title" bson:"title" json:"title"`
	Body          string    `firestore:"body" bson:"body" json:"body"`
	SendAt        time.Time `firestore:"sendAt" bson:"sendAt" json:"sendAt"`
	Sent          bool      `firestore:"sent" bson:"sent" json:"sent"`
	CreatedAt     time.Time `firestore:"createdAt" bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt,omitempty" bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PushData is the auxiliary payload attached to a reminder push.
func (r Reminder) PushData() map[string]string {
	return map[string]string{
		"appointmentId": r.AppointmentID,
		"receiverRole":  r.ReceiverRole,
	}
}
