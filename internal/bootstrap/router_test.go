package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinv/contractor-pm/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", CORSOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{EmailPerMinute: 6, EmailBurst: 1},
		Report:    config.ReportConfig{CurrencySymbol: "€", DefaultCompany: "Contractor Services"},
		Uploads:   config.UploadsConfig{Dir: "uploads"},
		App:       config.AppConfig{Version: "test"},
	}
}

func TestBuildRouter(t *testing.T) {
	SetGinMode("test")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := testConfig()
	r := BuildRouter(RouterDeps{
		ServiceName: "contractor-api",
		Config:      cfg,
		Services:    NewServices(cfg, db, nil),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"disabled"`)
	assert.Contains(t, w.Body.String(), `"smtp":"not_configured"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The format is rejected before any project data is loaded; only the
	// identity upsert touches the database.
	mock.ExpectQuery("insert into users").
		WithArgs("alice", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("alice"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/prj-00001-0001/report?format=docx", nil)
	req.Header.Set("X-User-Id", "alice")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported report format")
	assert.NoError(t, mock.ExpectationsWereMet())
}
