package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	// Scheduler targets
	DispatchRemindersHandler    gin.HandlerFunc
	CleanupNotificationsHandler gin.HandlerFunc

	// Firestore event targets
	AppointmentUpdatedHandler gin.HandlerFunc

	// Operations
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}
