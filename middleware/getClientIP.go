package middleware

import (
	"github.com/gin-gonic/gin"
)

// getClientIP keys rate limits on the caller. X-Forwarded-For is walked from
// the right and only entries added by the engine's trusted proxies are
// skipped, so a client-supplied prefix cannot change the key.
func getClientIP(c *gin.Context) string {
	return c.ClientIP()
}
