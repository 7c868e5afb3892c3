package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lingo-backend/internal/observability"
)

// streamRoutes stay open for the life of a client and would swamp the latency histogram.
var streamRoutes = map[string]bool{
	"/api/events": true,
}

// Metrics records latency and status per matched route. Unmatched paths share one
// label so scanners cannot grow the series count.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ApiInflightInc()
		defer m.ApiInflightDec()
		if streamRoutes[route] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
