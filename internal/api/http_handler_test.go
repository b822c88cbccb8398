package api

import (
	"bytes"
	"cannedreply/internal/config"
	"cannedreply/internal/entity"
	"cannedreply/internal/model"
	gormrepo "cannedreply/internal/model/sql"
	"cannedreply/internal/service"
	"cannedreply/internal/storage"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	storeDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storeDir := t.TempDir()
	cfg := config.Config{
		DBType:               model.DBTypeSQLite,
		DBPath:               "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		TemplatePageSize:     2,
		RegistrationEnabled:  true,
		JWTSecret:            "test-secret",
		JWTIssuer:            "test",
		JWTExpirationMinutes: 60,
		StoragePublicBaseURL: "/files",
	}
	repo, err := model.InitRepository(&cfg)
	require.NoError(t, err)
	store, err := storage.NewLocalStorage(storeDir)
	require.NoError(t, err)

	handler, err := NewHTTPHandler(cfg, repo, store)
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	handler.RegisterRoutes(r)
	return &testServer{t: t, router: r, storeDir: storeDir}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp entity.AuthResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type templateAck struct {
	Message string                      `json:"message"`
	Data    entity.ResponseTemplateItem `json:"data"`
}

type categoryAck struct {
	Message string          `json:"message"`
	Data    entity.Category `json:"data"`
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestHealthReportsUnavailableDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, err := NewHTTPHandler(config.Config{JWTSecret: "test-secret"}, gormrepo.NewGormRepository(nil), nil)
	require.NoError(t, err)

	r := gin.New()
	handler.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeServiceUnavailable, body.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/dashboard", "/api/response-templates", "/api/categories"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := s.do(http.MethodGet, "/api/dashboard", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, ErrCodeSessionExpired, decode[APIError](t, w).Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	status := decode[entity.AuthStatusResponse](t, s.do(http.MethodGet, "/api/auth/status", "", nil))
	assert.False(t, status.HasUser)

	token := s.register("first@example.com")

	w := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[entity.UserSummary](t, w)
	assert.Equal(t, entity.UserRoleAdmin, me.Role)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "first@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "first@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "bad", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(service.CodeValidation), decode[APIError](t, w).Code)
}

func TestResponseTemplateEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.register("owner@example.com")
	intruder := s.register("intruder@example.com")

	w := s.do(http.MethodPost, "/api/categories", token, map[string]string{"name": "Hello, World!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	category := decode[categoryAck](t, w).Data
	assert.Equal(t, "hello-world", category.Slug)

	w = s.do(http.MethodPost, "/api/categories", token, map[string]string{"name": "hello world"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(service.CodeValidation), decode[APIError](t, w).Code)

	w = s.do(http.MethodPost, "/api/response-templates", token, map[string]any{
		"name":         "Welcome",
		"content":      "Hi there",
		"type":         "email",
		"category_ids": []uint{category.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[templateAck](t, w).Data
	require.Len(t, created.Categories, 1)

	w = s.do(http.MethodPost, "/api/response-templates", token, map[string]any{"name": "Bad", "content": "x", "category_ids": []uint{999}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/response-templates", token, map[string]any{"content": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/api/response-templates/%d", created.ID)

	w = s.do(http.MethodPost, path+"/copy", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	copied := decode[entity.CopyResponse](t, w)
	assert.Equal(t, "Hi there", copied.Content)
	assert.Equal(t, int64(1), copied.UsageCount)

	w = s.do(http.MethodPost, path+"/copy", intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(service.CodePermissionDenied), decode[APIError](t, w).Code)

	w = s.do(http.MethodDelete, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, path, token, map[string]any{"name": "Welcome!", "content": "Hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[templateAck](t, w).Data
	assert.Len(t, updated.Categories, 1, "absent category_ids keeps links")
	assert.Nil(t, updated.Type)
	assert.Equal(t, int64(1), updated.UsageCount)

	w = s.do(http.MethodPut, path, token, map[string]any{"name": "Welcome!", "content": "Hello", "category_ids": []uint{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[templateAck](t, w).Data.Categories)

	w = s.do(http.MethodGet, "/api/response-templates/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, path, token, "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "response template deleted", decode[entity.Acknowledgment](t, w).Message)

	w = s.do(http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.register("dash@example.com")

	w := s.do(http.MethodPost, "/api/categories", token, map[string]string{"name": "Billing"})
	require.Equal(t, http.StatusCreated, w.Code)
	billing := decode[categoryAck](t, w).Data

	for i, name := range []string{"Refund", "Invoice", "Greeting"} {
		body := map[string]any{"name": name, "content": name + " body", "type": []string{"chat", "email", "chat"}[i]}
		if name != "Greeting" {
			body["category_ids"] = []uint{billing.ID}
		}
		w := s.do(http.MethodPost, "/api/response-templates", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/api/dashboard?category_id=%d&usage_order=asc&unknown=1", billing.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dashboard := decode[entity.DashboardResponse](t, w)
	assert.Equal(t, int64(2), dashboard.ResponseTemplates.Meta.Total)
	assert.Equal(t, []string{"chat", "email"}, dashboard.Types)
	require.NotNil(t, dashboard.Filters.CategoryID)
	assert.Equal(t, billing.ID, *dashboard.Filters.CategoryID)
	assert.Equal(t, entity.UsageOrderAsc, dashboard.Filters.UsageOrder)

	w = s.do(http.MethodGet, "/api/response-templates?page=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[entity.ResponseTemplatePage](t, w)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(2), page.Meta.Page)
	assert.Equal(t, int64(3), page.Meta.Total)

	w = s.do(http.MethodGet, "/api/dashboard?category_id=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", billing.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/dashboard?name=%20%20", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dashboard = decode[entity.DashboardResponse](t, w)
	assert.Equal(t, int64(3), dashboard.ResponseTemplates.Meta.Total, "deleting a category keeps its templates")
	assert.Empty(t, dashboard.Categories)
}

func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.register("export@example.com")

	w := s.do(http.MethodPost, "/api/response-templates", token, map[string]any{"name": "Hello", "content": "Hello!"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/exports", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ack struct {
		Message string                `json:"message"`
		Data    entity.ExportResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, 1, ack.Data.Templates)
	assert.True(t, strings.HasPrefix(ack.Data.URL, "/files/exports/"), ack.Data.URL)

	raw, err := os.ReadFile(filepath.Join(s.storeDir, filepath.FromSlash(ack.Data.Key)))
	require.NoError(t, err)
	var document entity.LibraryExport
	require.NoError(t, json.Unmarshal(raw, &document))
	require.Len(t, document.Templates, 1)
	assert.Equal(t, "Hello", document.Templates[0].Name)
}
