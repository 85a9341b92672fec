package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/hydrokit/observability"
)

// Readiness returns a handler for K8s readiness probes. The service is ready
// as long as no component reports down; a degraded catalog (for example one
// with no trees loaded yet) still accepts traffic.
func Readiness(serviceName string, checkers map[string]observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ready"
		httpStatus := http.StatusOK

		for _, checker := range checkers {
			if ch := checker.CheckHealth(c.Request.Context()); ch.Status == observability.HealthStatusDown {
				status = "not_ready"
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
