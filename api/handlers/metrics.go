package handlers

import (
	"net/http"

	"github.com/linesmerrill/legal-connect-api/api"
	"github.com/linesmerrill/legal-connect-api/config"
	"github.com/linesmerrill/legal-connect-api/models"
)

// MetricsHandler serves the request metrics to admins
type MetricsHandler struct {
	Collector *api.MetricsCollector
}

// formatRouteMetrics converts duration fields to milliseconds for JSON serialization
func formatRouteMetrics(routes []*api.RouteMetrics) []map[string]interface{} {
	result := make([]map[string]interface{}, len(routes))
	for i, route := range routes {
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"path":        route.Path,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}
	return result
}

// GetMetrics returns the totals and per route timings
func (m MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	if session.Role != models.RoleAdmin {
		config.ErrorStatus("failed to get metrics", http.StatusForbidden, w, errNotAdmin)
		return
	}

	summary := m.Collector.GetSummary()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalRequests": summary.TotalRequests,
		"totalErrors":   summary.TotalErrors,
		"errorRate":     summary.ErrorRate,
		"windowStart":   summary.WindowStart,
		"routes":        formatRouteMetrics(summary.Routes),
	})
}
