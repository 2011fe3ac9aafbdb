package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marinv/contractor-pm/internal/auth"
	"github.com/marinv/contractor-pm/internal/offers/dispatch"
	"github.com/marinv/contractor-pm/internal/offers/domain"
	"github.com/marinv/contractor-pm/internal/offers/report"
	pdomain "github.com/marinv/contractor-pm/internal/projects/domain"
	"github.com/marinv/contractor-pm/pkg/logging"
)

func (h *Handler) costs(c *gin.Context) {
	p, b, err := h.svc.Costs(c.Request.Context(), auth.UserID(c), c.Param("public_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p, "costs": b})
}

func (h *Handler) report(c *gin.Context) {
	format := c.DefaultQuery("format", report.FormatHTML)

	doc, err := h.svc.Report(c.Request.Context(), auth.UserID(c), c.Param("public_id"), format)
	if err != nil {
		writeError(c, err)
		return
	}

	if doc.Format == report.FormatPDF {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	}
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func (h *Handler) sendEmail(c *gin.Context) {
	var req domain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	rec, err := h.svc.SendOffer(c.Request.Context(), auth.UserID(c), c.Param("public_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Offer sent successfully to " + rec.To,
		"offer":   rec,
	})
}

func (h *Handler) history(c *gin.Context) {
	items, err := h.svc.History(c.Request.Context(), auth.UserID(c), c.Param("public_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "offers": items})
}

func writeError(c *gin.Context, err error) {
	var de *dispatch.DeliveryError
	switch {
	case errors.Is(err, pdomain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, report.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrRecipientRequired),
		errors.Is(err, domain.ErrInvalidRecipient):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, dispatch.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Email not configured. Please set SMTP settings."})
	case errors.As(err, &de):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Failed to send email: " + de.Err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("offer request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
