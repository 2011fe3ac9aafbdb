package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinv/contractor-pm/internal/auth"
	"github.com/marinv/contractor-pm/internal/users/domain"
)

type memProfiles struct {
	users map[string]*domain.User
	last  domain.ProfileUpdate
}

func (m *memProfiles) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *memProfiles) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	m.last = upd
	u, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.CompanyName != nil {
		u.CompanyName = *upd.CompanyName
	}
	if upd.LogoPath != nil {
		u.LogoPath = *upd.LogoPath
	}
	return u, nil
}

func setup(store ProfileStore, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserID, userID)
		c.Next()
	})
	New(store).Register(r.Group("/api/v1"))
	return r
}

func TestMe(t *testing.T) {
	store := &memProfiles{users: map[string]*domain.User{"u1": {ID: "u1", CompanyName: "Acme Build"}}}

	w := httptest.NewRecorder()
	setup(store, "u1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"company_name":"Acme Build"`)

	w = httptest.NewRecorder()
	setup(store, "ghost").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMe(t *testing.T) {
	store := &memProfiles{users: map[string]*domain.User{"u1": {ID: "u1"}}}
	r := setup(store, "u1")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/me", strings.NewReader(`{"company_name":"Acme","logo_path":"../../etc/logo.png"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.last.LogoPath)
	assert.Equal(t, "logo.png", *store.last.LogoPath)
	assert.Nil(t, store.last.VATID)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/me", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
