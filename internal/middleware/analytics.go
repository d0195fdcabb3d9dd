package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker receives one usage event per successful authenticated API call.
type EventTracker interface {
	Track(distinctID, event string, properties map[string]any)
}

// Analytics reports successful calls under an event named after the route template,
// e.g. POST /api/v1/companies/:company_id/issuances/:issuance_id/execute becomes
// "post_companies_issuances_execute". Only the company id leaves the process, never other path values.
func Analytics(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if tracker == nil || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		event := eventName(c.Request.Method, c.FullPath())
		if event == "" {
			return
		}

		props := map[string]any{"status_code": c.Writer.Status()}
		if companyID := c.Param("company_id"); companyID != "" {
			props["company_id"] = companyID
		}
		tracker.Track(userID, event, props)
	}
}

func eventName(method, route string) string {
	route = strings.TrimPrefix(route, "/api/v1")
	var parts []string
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(method) + "_" + strings.Join(parts, "_")
}
