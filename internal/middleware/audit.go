package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulane/tutoring-api/internal/models"
	"github.com/edulane/tutoring-api/pkg/jobs"
)

// AuditJobType labels audit entries on the background queue.
const AuditJobType = "audit_log"

// Audit records an audit entry after successful requests. Writes go
// through the background queue so a slow audit insert never holds up the
// response. Ticket mutations carry the ticket id from the route.
func Audit(queue *jobs.Queue, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if queue == nil || c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := c.Get(ContextUserKey); ok {
			user := claims.(*models.JWTClaims)
			userID = &user.UserID
		}

		var resourceID *string
		if id := c.Param("id"); id != "" {
			resourceID = &id
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		_ = queue.Enqueue(jobs.Job{
			ID:   uuid.NewString(),
			Type: AuditJobType,
			Payload: &models.AuditLog{
				UserID:     userID,
				Action:     action,
				Resource:   resource,
				ResourceID: resourceID,
				NewValues:  body,
				IPAddress:  c.ClientIP(),
				UserAgent:  c.GetHeader("User-Agent"),
			},
		})
	}
}
