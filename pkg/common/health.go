package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the payload served by the health endpoint.
type HealthStatus struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// HealthCheckWithDeps probes every registered dependency and answers 503 when
// any probe fails. Probe funcs are expected to bound their own timeouts.
func HealthCheckWithDeps(serviceName, version string, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		overall := "healthy"
		statusCode := http.StatusOK
		results := make(map[string]string, len(checks))

		for name, probe := range checks {
			if err := probe(); err != nil {
				results[name] = err.Error()
				overall = "unhealthy"
				statusCode = http.StatusServiceUnavailable
			} else {
				results[name] = "ok"
			}
		}

		c.JSON(statusCode, HealthStatus{
			Status:  overall,
			Service: serviceName,
			Version: version,
			Checks:  results,
		})
	}
}
