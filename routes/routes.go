package routes

import (
	"apptreminders/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterTaskRoutes registers the Cloud Scheduler targets.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/tasks")
	{
		api.POST("/reminders/dispatch", hb.DispatchRemindersHandler)
		api.POST("/notifications/cleanup", hb.CleanupNotificationsHandler)
	}
}

// RegisterEventRoutes registers the Firestore document trigger targets.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/events")
	{
		api.POST("/appointments/updated", hb.AppointmentUpdatedHandler)
	}
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", hb.MetricsHandler)
}

// RegisterRoutes centralizes registration of all endpoints.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterTaskRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
