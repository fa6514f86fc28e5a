package handlers

import (
	"context"
	"net/http"

	"apptreminders/models"
	"apptreminders/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReminderDispatcher interface {
	Run(ctx context.Context) (*models.DispatchResult, error)
}

type NotificationSweeper interface {
	Run(ctx context.Context) (*models.SweepResult, error)
}

type CancellationWatcher interface {
	Handle(ctx context.Context, change models.AppointmentChange) (*models.CancelResult, error)
}

// TriggerHandler exposes the reminder handlers to Cloud Scheduler and
// Firestore event delivery.
type TriggerHandler struct {
	dispatcher ReminderDispatcher
	sweeper    NotificationSweeper
	watcher    CancellationWatcher
	logger     *zap.Logger
}

func NewTriggerHandler(d ReminderDispatcher, s NotificationSweeper, w CancellationWatcher, logger *zap.Logger) *TriggerHandler {
	return &TriggerHandler{dispatcher: d, sweeper: s, watcher: w, logger: logger}
}

// DispatchRemindersHandler handles POST /tasks/reminders/dispatch.
func (h *TriggerHandler) DispatchRemindersHandler(c *gin.Context) {
	result, err := h.dispatcher.Run(c.Request.Context())
	if err != nil {
		utils.JSONError(c, h.logger, http.StatusInternalServerError, "Failed to dispatch reminders", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CleanupNotificationsHandler handles POST /tasks/notifications/cleanup.
func (h *TriggerHandler) CleanupNotificationsHandler(c *gin.Context) {
	result, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		utils.JSONError(c, h.logger, http.StatusInternalServerError, "Failed to clean up notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// AppointmentUpdatedHandler handles POST /events/appointments/updated.
func (h *TriggerHandler) AppointmentUpdatedHandler(c *gin.Context) {
	var event models.AppointmentUpdateEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid appointment event", err.Error())
		return
	}

	change, err := event.ToChange()
	if err != nil {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid appointment event", err.Error())
		return
	}

	result, err := h.watcher.Handle(c.Request.Context(), change)
	if err != nil {
		utils.JSONError(c, h.logger, http.StatusInternalServerError, "Failed to cancel reminders", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
