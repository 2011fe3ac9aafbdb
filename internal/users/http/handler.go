package http

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marinv/contractor-pm/internal/auth"
	"github.com/marinv/contractor-pm/internal/users/domain"
)

type ProfileStore interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error)
}

// Handler serves the caller's own profile.
type Handler struct {
	users ProfileStore
}

func New(users ProfileStore) *Handler {
	return &Handler{users: users}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.updateMe)
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func (h *Handler) updateMe(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Email != nil {
		e := strings.TrimSpace(*req.Email)
		if _, err := mail.ParseAddress(e); e != "" && err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid email"})
			return
		}
		req.Email = &e
	}
	// Logos are read from the upload dir by base name only.
	if req.LogoPath != nil {
		lp := strings.TrimSpace(*req.LogoPath)
		if lp != "" {
			lp = filepath.Base(lp)
		}
		req.LogoPath = &lp
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
