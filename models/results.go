package models

import "time"

// DispatchResult describes one reminder dispatch run.
type DispatchResult struct {
	Success      bool      `json:"success"`
	RunID        string    `json:"runId"`
	Processed    int       `json:"processed"`
	PushesSent   int       `json:"pushesSent"`
	PushFailures int       `json:"pushFailures"`
	MarkedSent   int       `json:"markedSent"`
	StaleDeleted int       `json:"staleDeleted"`
	Timestamp    time.Time `json:"timestamp"`
}

// SweepResult describes one retention sweep.
type SweepResult struct {
	Success      bool      `json:"success"`
	RunID        string    `json:"runId"`
	DeletedCount int       `json:"deletedCount"`
	Cutoff       time.Time `json:"cutoff"`
	Timestamp    time.Time `json:"timestamp"`
}

// CancelResult describes the reminders removed after an appointment was cancelled.
type CancelResult struct {
	Success        bool      `json:"success"`
	AppointmentID  string    `json:"appointmentId"`
	CancelledCount int       `json:"cancelledCount"`
	Timestamp      time.Time `json:"timestamp"`
}
