package handlers

import (
	"net/http"

	"apptreminders/utils"

	"github.com/gin-gonic/gin"
)

type HealthReporter interface {
	Status() utils.HealthStatus
}

// HealthHandler reports the latest dependency snapshot; it never probes inline.
func HealthHandler(reporter HealthReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := reporter.Status()
		code := http.StatusOK
		if !status.CheckedAt.IsZero() && !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	}
}
