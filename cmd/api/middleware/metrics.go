package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alignscope/core/internal/observability"
)

// Metrics instruments request counts and latency. Paths are labeled by
// route template, keeping label cardinality bounded.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.ObserveRequest(path, c.Request.Method, c.Writer.Status(), time.Since(start).Seconds())
	}
}
