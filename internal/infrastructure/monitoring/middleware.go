package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route templates keep label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures an assistant call
type Timer struct {
	start   time.Time
	metrics *Metrics
	kind    string
}

// NewTimer starts timing a call of the given kind
func NewTimer(metrics *Metrics, kind string) *Timer {
	return &Timer{start: time.Now(), metrics: metrics, kind: kind}
}

// Stop records the duration with the outcome status
func (t *Timer) Stop(status string) {
	t.metrics.RecordAICall(t.kind, status, time.Since(t.start))
}
