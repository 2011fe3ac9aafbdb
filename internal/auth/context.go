package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"

	// DefaultUserID is used when no X-User-Id header is sent (local development).
	DefaultUserID = "demo-user"
)

// UserID extracts the caller id set by WithUser.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}
