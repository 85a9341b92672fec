package endpoint

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/hydrokit/observability"
	"github.com/kbukum/hydrokit/version"
)

// Health returns a handler that aggregates component health into a single
// service report. Checkers are keyed by component name and evaluated in name
// order so the response body is stable across calls.
func Health(serviceName string, checkers map[string]observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, version.GetVersionInfo().Version)

		names := make([]string, 0, len(checkers))
		for name := range checkers {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ch := checkers[name].CheckHealth(c.Request.Context())
			if ch.Name == "" {
				ch.Name = name
			}
			sh.AddComponent(ch)
		}

		httpStatus := http.StatusOK
		if !sh.Healthy() {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, sh)
	}
}
