package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marinv/contractor-pm/internal/users/domain"
)

// UserEnsurer creates or refreshes the caller's user row.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u domain.UpsertUser) (string, error)
}

// WithUser resolves the caller from the X-User-Id and X-User-Email headers.
// Session handling lives in front of this service.
func WithUser(users UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = DefaultUserID
		}
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))

		id, err := users.EnsureUser(c.Request.Context(), domain.UpsertUser{ID: uid, Email: email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserID, id)
		c.Set(CtxUserEmail, email)
		c.Next()
	}
}
