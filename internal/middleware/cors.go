package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS attaches the shared cross-origin headers to every response and
// short-circuits preflight requests. Preflights always succeed; actual
// origin enforcement is a handler concern so a disallowed origin gets a
// real 403 body instead of an opaque CORS failure.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
		} else {
			c.Header("Access-Control-Allow-Origin", "*")
		}
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
