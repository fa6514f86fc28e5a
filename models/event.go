package models

import (
	"errors"
	"strings"
)

var ErrMissingDocumentName = errors.New("event: document name is missing")

// FirestoreValue is a typed field value as delivered in Firestore update events.
type FirestoreValue struct {
	StringValue *string `json:"stringValue,omitempty"`
}

// FirestoreDocument is a document snapshot in Firestore event wire format.
type FirestoreDocument struct {
	Name   string                    `json:"name"`
	Fields map[string]FirestoreValue `json:"fields"`
}

func (d FirestoreDocument) stringField(key string) string {
	v, ok := d.Fields[key]
	if !ok || v.StringValue == nil {
		return ""
	}
	return *v.StringValue
}

// DocumentID returns the last path segment of the document name.
func (d FirestoreDocument) DocumentID() string {
	name := strings.TrimSuffix(d.Name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// AppointmentUpdateEvent is the payload of an appointments/{id} update trigger.
type AppointmentUpdateEvent struct {
	OldValue FirestoreDocument `json:"oldValue"`
	Value    FirestoreDocument `json:"value"`
}

// ToChange converts the event into before/after appointment snapshots.
func (e AppointmentUpdateEvent) ToChange() (AppointmentChange, error) {
	id := e.Value.DocumentID()
	if id == "" {
		id = e.OldValue.DocumentID()
	}
	if id == "" {
		return AppointmentChange{}, ErrMissingDocumentName
	}
	return AppointmentChange{
		AppointmentID: id,
		Before:        Appointment{ID: id, Status: AppointmentStatus(e.OldValue.stringField("status"))},
		After:         Appointment{ID: id, Status: AppointmentStatus(e.Value.stringField("status"))},
	}, nil
}
