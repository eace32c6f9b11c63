package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"seller-panel.backend/pkg/metrics"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request count and latency by route template
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
