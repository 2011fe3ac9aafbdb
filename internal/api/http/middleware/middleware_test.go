package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/marinv/contractor-pm/internal/auth"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())

	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestUserRateLimiter_Allow(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewUserRateLimiter(6, 2)
	l.now = func() time.Time { return clock }

	assert.True(t, l.Allow("u1"))
	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"), "buckets are per user")

	clock = clock.Add(10 * time.Second)
	assert.True(t, l.Allow("u1"), "one token refills every 10s at 6/min")
	assert.False(t, l.Allow("u1"))
}

func TestUserRateLimiter_EvictsIdle(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewUserRateLimiter(1, 1)
	l.now = func() time.Time { return clock }

	l.Allow("u1")
	clock = clock.Add(11 * time.Minute)
	l.Allow("u2")

	assert.NotContains(t, l.limiters, "u1")
	assert.Contains(t, l.limiters, "u2")
}

func TestUserRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewUserRateLimiter(1, 1)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserID, c.GetHeader("X-User-Id"))
		c.Next()
	})
	r.POST("/send", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("X-User-Id", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("a"))
	assert.Equal(t, http.StatusTooManyRequests, send("a"))
	assert.Equal(t, http.StatusOK, send("b"))
}
