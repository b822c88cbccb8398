package api

import (
	"cannedreply/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		status         int
		code           string
		message        string
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "BadRequest",
			status:         http.StatusBadRequest,
			code:           ErrCodeInvalidRequest,
			message:        "无效的请求",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidRequest,
			expectedMsg:    "无效的请求",
		},
		{
			name:           "NotFound",
			status:         http.StatusNotFound,
			code:           string(service.CodeNotFound),
			message:        "模板不存在",
			expectedStatus: http.StatusNotFound,
			expectedCode:   string(service.CodeNotFound),
			expectedMsg:    "模板不存在",
		},
		{
			name:           "InternalError",
			status:         http.StatusInternalServerError,
			code:           ErrCodeInternalError,
			message:        "服务器内部错误",
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    "服务器内部错误",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponse(c, tt.status, tt.code, tt.message)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
			if response.Message != tt.expectedMsg {
				t.Errorf("expected message %s, got %s", tt.expectedMsg, response.Message)
			}
		})
	}
}

func TestServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"校验失败", service.ValidationWithDetails("validation failed", map[string]string{"name": "is required"}), http.StatusBadRequest, string(service.CodeValidation)},
		{"不存在", service.NotFound("response template not found"), http.StatusNotFound, string(service.CodeNotFound)},
		{"无权限", service.PermissionDenied("you do not own this response template"), http.StatusForbidden, string(service.CodePermissionDenied)},
		{"冲突", service.Conflict("category slug already exists"), http.StatusConflict, string(service.CodeConflict)},
		{"未知错误", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

			ServiceError(c, tt.err, "fallback message")

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
		})
	}
}

func TestShortcutFunctions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	shortcuts := map[string]struct {
		call   func(c *gin.Context)
		status int
	}{
		"BadRequest":         {func(c *gin.Context) { BadRequest(c, ErrCodeInvalidRequest, "测试错误") }, http.StatusBadRequest},
		"Unauthorized":       {func(c *gin.Context) { Unauthorized(c, "需要登录") }, http.StatusUnauthorized},
		"InternalError":      {func(c *gin.Context) { InternalError(c, "服务器错误") }, http.StatusInternalServerError},
		"ServiceUnavailable": {func(c *gin.Context) { ServiceUnavailable(c, "服务不可用") }, http.StatusServiceUnavailable},
		"InvalidPayload":     {InvalidPayload, http.StatusBadRequest},
	}

	for name, tt := range shortcuts {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.call(c)
			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	h := &HTTPHandler{storagePublicBase: normalisePublicBase("files/")}

	if got := h.publicURL("exports/2026/01/02/a.json"); got != "/files/exports/2026/01/02/a.json" {
		t.Errorf("unexpected url %q", got)
	}
	if got := h.publicURL("https://cdn.example.com/a.json"); got != "https://cdn.example.com/a.json" {
		t.Errorf("absolute urls must pass through, got %q", got)
	}
	if got := h.publicURL("  "); got != "" {
		t.Errorf("expected empty url, got %q", got)
	}

	remote := &HTTPHandler{storagePublicBase: normalisePublicBase("https://cdn.example.com/")}
	if got := remote.publicURL("/exports/a.json"); got != "https://cdn.example.com/exports/a.json" {
		t.Errorf("unexpected url %q", got)
	}
}
