package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"apptreminders/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockDispatcher struct {
	RunFunc func(ctx context.Context) (*models.DispatchResult, error)
}

func (m *MockDispatcher) Run(ctx context.Context) (*models.DispatchResult, error) {
	return m.RunFunc(ctx)
}

type MockSweeper struct {
	RunFunc func(ctx context.Context) (*models.SweepResult, error)
}

func (m *MockSweeper) Run(ctx context.Context) (*models.SweepResult, error) {
	return m.RunFunc(ctx)
}

type MockWatcher struct {
	Changes []models.AppointmentChange
	Result  *models.CancelResult
	Err     error
}

func (m *MockWatcher) Handle(ctx context.Context, change models.AppointmentChange) (*models.CancelResult, error) {
	m.Changes = append(m.Changes, change)
	return m.Result, m.Err
}

func newTestRouter(t *testing.T, h *TriggerHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/tasks/reminders/dispatch", h.DispatchRemindersHandler)
	r.POST("/tasks/notifications/cleanup", h.CleanupNotificationsHandler)
	r.POST("/events/appointments/updated", h.AppointmentUpdatedHandler)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDispatchRemindersHandler(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d := &MockDispatcher{RunFunc: func(ctx context.Context) (*models.DispatchResult, error) {
		return &models.DispatchResult{Success: true, Processed: 3, MarkedSent: 2, StaleDeleted: 1, Timestamp: ts}, nil
	}}
	r := newTestRouter(t, NewTriggerHandler(d, nil, nil, zaptest.NewLogger(t)))

	w := post(r, "/tasks/reminders/dispatch", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Result models.DispatchResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Result.Success)
	assert.Equal(t, 3, body.Result.Processed)
	assert.Equal(t, 1, body.Result.StaleDeleted)
	assert.True(t, ts.Equal(body.Result.Timestamp))
}

func TestDispatchRemindersHandler_NothingToDo(t *testing.T) {
	d := &MockDispatcher{RunFunc: func(ctx context.Context) (*models.DispatchResult, error) {
		return nil, nil
	}}
	r := newTestRouter(t, NewTriggerHandler(d, nil, nil, zaptest.NewLogger(t)))

	w := post(r, "/tasks/reminders/dispatch", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result": null}`, w.Body.String())
}

func TestDispatchRemindersHandler_Error(t *testing.T) {
	d := &MockDispatcher{RunFunc: func(ctx context.Context) (*models.DispatchResult, error) {
		return nil, errors.New("deadline exceeded")
	}}
	r := newTestRouter(t, NewTriggerHandler(d, nil, nil, zaptest.NewLogger(t)))

	w := post(r, "/tasks/reminders/dispatch", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "deadline exceeded")
}

func TestCleanupNotificationsHandler(t *testing.T) {
	s := &MockSweeper{RunFunc: func(ctx context.Context) (*models.SweepResult, error) {
		return &models.SweepResult{Success: true, DeletedCount: 42}, nil
	}}
	r := newTestRouter(t, NewTriggerHandler(nil, s, nil, zaptest.NewLogger(t)))

	w := post(r, "/tasks/notifications/cleanup", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deletedCount":42`)

	s.RunFunc = func(ctx context.Context) (*models.SweepResult, error) {
		return nil, errors.New("commit failed")
	}
	w = post(r, "/tasks/notifications/cleanup", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

const cancelledEvent = `{
  "oldValue": {
    "name": "projects/p/databases/(default)/documents/appointments/A1",
    "fields": {"status": {"stringValue": "CONFIRMED"}, "doctorId": {"stringValue": "D1"}}
  },
  "value": {
    "name": "projects/p/databases/(default)/documents/appointments/A1",
    "fields": {"status": {"stringValue": "CANCELLED"}}
  },
  "updateMask": {"fieldPaths": ["status"]}
}`

func TestAppointmentUpdatedHandler(t *testing.T) {
	watcher := &MockWatcher{Result: &models.CancelResult{Success: true, AppointmentID: "A1", CancelledCount: 2}}
	r := newTestRouter(t, NewTriggerHandler(nil, nil, watcher, zaptest.NewLogger(t)))

	w := post(r, "/events/appointments/updated", cancelledEvent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelledCount":2`)

	require.Len(t, watcher.Changes, 1)
	change := watcher.Changes[0]
	assert.Equal(t, "A1", change.AppointmentID)
	assert.Equal(t, models.AppointmentConfirmed, change.Before.Status)
	assert.Equal(t, models.AppointmentCancelled, change.After.Status)
}

func TestAppointmentUpdatedHandler_BadRequests(t *testing.T) {
	watcher := &MockWatcher{}
	r := newTestRouter(t, NewTriggerHandler(nil, nil, watcher, zaptest.NewLogger(t)))

	w := post(r, "/events/appointments/updated", `{"value":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/events/appointments/updated", `{"value": {"fields": {"status": {"stringValue": "CANCELLED"}}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, watcher.Changes)
}

func TestAppointmentUpdatedHandler_WatcherError(t *testing.T) {
	watcher := &MockWatcher{Err: errors.New("query failed")}
	r := newTestRouter(t, NewTriggerHandler(nil, nil, watcher, zaptest.NewLogger(t)))

	w := post(r, "/events/appointments/updated", cancelledEvent)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
