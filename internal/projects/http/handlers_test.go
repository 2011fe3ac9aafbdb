package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinv/contractor-pm/internal/auth"
	"github.com/marinv/contractor-pm/internal/projects/domain"
)

// stubService implements only what a test exercises; other calls panic.
type stubService struct {
	ProjectService

	gotUserID string
	gotStatus string
	gotID     int64
	gotEntry  domain.TimeEntryInput
	err       error
}

func (s *stubService) Create(_ context.Context, userID string, in domain.ProjectInput) (*domain.Project, error) {
	s.gotUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Project{PublicID: "prj-12345-6789", Name: *in.Name, Status: domain.StatusDraft}, nil
}

func (s *stubService) List(_ context.Context, _ string, status string) ([]domain.Project, error) {
	s.gotStatus = status
	return []domain.Project{{PublicID: "prj-12345-6789"}}, s.err
}

func (s *stubService) Get(context.Context, string, string) (*domain.Project, error) {
	return nil, s.err
}

func (s *stubService) AddTimeEntry(_ context.Context, _ string, _ string, in domain.TimeEntryInput) (*domain.TimeEntry, error) {
	s.gotEntry = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TimeEntry{ID: 1, WorkerTypeID: *in.WorkerTypeID, Hours: *in.Hours}, nil
}

func (s *stubService) DeleteMaterial(_ context.Context, _ string, id int64) error {
	s.gotID = id
	return s.err
}

func (s *stubService) ListWorkerTypes(context.Context, string) ([]domain.WorkerType, error) {
	return []domain.WorkerType{{ID: 1, Name: "Carpenter", HourlyRate: 30}}, nil
}

func setup(svc ProjectService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserID, "u1")
		c.Next()
	})
	New(svc).Register(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProject(t *testing.T) {
	svc := &stubService{}
	w := do(setup(svc), http.MethodPost, "/api/v1/projects", `{"name":"Garage","customer_name":"Ivo"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u1", svc.gotUserID)

	var resp struct {
		OK      bool           `json:"ok"`
		Project domain.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "Garage", resp.Project.Name)
	assert.NotContains(t, w.Body.String(), `"user_id"`)
}

func TestCreateProject_BadRequests(t *testing.T) {
	w := do(setup(&stubService{}), http.MethodPost, "/api/v1/projects", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc := &stubService{err: errors.Join(domain.ErrInvalidInput, errors.New("name is required"))}
	w = do(setup(svc), http.MethodPost, "/api/v1/projects", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid input")
}

func TestListProjects_StatusFilter(t *testing.T) {
	svc := &stubService{}
	w := do(setup(svc), http.MethodGet, "/api/v1/projects?status=active", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", svc.gotStatus)
	assert.Contains(t, w.Body.String(), `"projects":[`)
}

func TestGetProject_NotFound(t *testing.T) {
	w := do(setup(&stubService{err: domain.ErrProjectNotFound}), http.MethodGet, "/api/v1/projects/prj-0", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"project not found"}`, w.Body.String())
}

func TestAddTimeEntry(t *testing.T) {
	svc := &stubService{}
	w := do(setup(svc), http.MethodPost, "/api/v1/projects/prj-1/time-entries", `{"worker_type_id":3,"hours":7.5,"date":"2026-04-01"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.gotEntry.Date)
	assert.Equal(t, "2026-04-01", *svc.gotEntry.Date)

	svc.err = domain.ErrInvalidWorkerType
	w = do(setup(svc), http.MethodPost, "/api/v1/projects/prj-1/time-entries", `{"worker_type_id":99,"hours":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid worker type")
}

func TestDeleteMaterial(t *testing.T) {
	svc := &stubService{}
	w := do(setup(svc), http.MethodDelete, "/api/v1/materials/12", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), svc.gotID)

	w = do(setup(svc), http.MethodDelete, "/api/v1/materials/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.err = domain.ErrMaterialNotFound
	w = do(setup(svc), http.MethodDelete, "/api/v1/materials/13", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListWorkerTypes(t *testing.T) {
	w := do(setup(&stubService{}), http.MethodGet, "/api/v1/worker-types", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hourly_rate":30`)
}
