package middleware

import (
	"go-school/internal/bootstrap"

	"github.com/gin-gonic/gin"
)

// AuditTrail records successful calls to the routes in actions, keyed by
// "METHOD /full/path", after the handler has run.
func AuditTrail(audit bootstrap.AuditLogger, actions map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		action, ok := actions[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		meta := map[string]any{
			"actor_id": c.GetString("user_id"),
			"role":     c.GetString("role"),
			"status":   status,
		}
		for _, p := range c.Params {
			meta[p.Key] = p.Value
		}

		audit.Log(c.Request.Context(), bootstrap.AuditLog{
			Action:  action,
			Message: c.Request.Method + " " + c.Request.URL.Path,
			Meta:    meta,
		})
	}
}
