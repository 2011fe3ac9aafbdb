package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
	SMTP      string    `json:"smtp,omitempty"`
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthDeps struct {
	ServiceName    string
	Version        string
	DB             Pinger
	Redis          Pinger // nil when the offer log is disabled
	SMTPConfigured bool
}

type HealthHandler struct {
	dep HealthDeps
}

func NewHealthHandler(dep HealthDeps) *HealthHandler {
	return &HealthHandler{dep: dep}
}

// HealthCheck reports 503 when the database is unreachable. Redis and SMTP
// are informational only.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.dep.ServiceName,
		Version:   h.dep.Version,
		DB:        ping(ctx, h.dep.DB),
		Redis:     ping(ctx, h.dep.Redis),
		SMTP:      "not_configured",
	}
	if h.dep.SMTPConfigured {
		resp.SMTP = "configured"
	}

	code := http.StatusOK
	if resp.DB == "down" {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
