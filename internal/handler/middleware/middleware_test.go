//go:build unit

package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"order-fulfillment/internal/handler/httperr"
	"order-fulfillment/internal/handler/middleware"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/pkg/jwt"
	"order-fulfillment/internal/usecase"
	"order-fulfillment/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "middleware-test-secret"

type AuthMiddlewareTestSuite struct {
	suite.Suite
	jwt    *jwt.Service
	router *gin.Engine
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwt = jwt.NewService(testSecret, time.Hour)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwt))

	s.router = gin.New()
	whoami := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": actor.Role})
	}
	s.router.GET("/me", auth.RequireAuth(), whoami)
	s.router.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), whoami)
	s.router.GET("/admin-only", auth.RequireAdmin(), whoami)
}

func (s *AuthMiddlewareTestSuite) token(role string, issuedAt time.Time) string {
	tok, err := s.jwt.Issue(uuid.New(), role, issuedAt)
	s.Require().NoError(err)
	return tok
}

func (s *AuthMiddlewareTestSuite) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("valid customer token", func() {
		w := s.get("/me", s.token(shared.RoleCustomer, time.Now()))
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"role":"customer"`)
	})

	s.Run("missing token", func() {
		w := s.get("/me", "")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.JSONEq(`{"error":{"message":"Access token required"}}`, w.Body.String())
	})

	s.Run("expired token", func() {
		w := s.get("/me", s.token(shared.RoleCustomer, time.Now().Add(-2*time.Hour)))
		s.Equal(http.StatusUnauthorized, w.Code)
		s.JSONEq(`{"error":{"message":"Invalid or expired token"}}`, w.Body.String())
	})

	s.Run("token signed with another secret", func() {
		other := jwt.NewService("someone-else", time.Hour)
		tok, err := other.Issue(uuid.New(), shared.RoleAdmin, time.Now())
		s.Require().NoError(err)
		s.Equal(http.StatusUnauthorized, s.get("/me", tok).Code)
	})

	s.Run("unknown role", func() {
		s.Equal(http.StatusUnauthorized, s.get("/me", s.token("courier", time.Now())).Code)
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireAdmin() {
	s.Run("admin passes", func() {
		w := s.get("/admin", s.token(shared.RoleAdmin, time.Now()))
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("customer is forbidden", func() {
		w := s.get("/admin", s.token(shared.RoleCustomer, time.Now()))
		s.Equal(http.StatusForbidden, w.Code)
		s.JSONEq(`{"error":{"message":"Insufficient permissions"}}`, w.Body.String())
	})

	s.Run("without RequireAuth there is no actor", func() {
		w := s.get("/admin-only", s.token(shared.RoleAdmin, time.Now()))
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	return r
}

func TestErrorHandler(t *testing.T) {
	r := newErrorRouter()
	r.GET("/missing", func(c *gin.Context) {
		httperr.Abort(c, errs.Wrap(errs.NotFound("order not found"), "order 42"))
	})
	r.GET("/bug", func(c *gin.Context) {
		httperr.Abort(c, errs.New("nil map write"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/silent", func(c *gin.Context) {
		_ = c.Error(errs.New("not rendered"))
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/missing", http.StatusNotFound, `{"error":{"message":"order 42: order not found"},"detail":{"code":"NOT_FOUND"}}`},
		{"/bug", http.StatusInternalServerError, `{"error":{"message":"Internal server error"},"detail":{"code":"INTERNAL_ERROR"}}`},
		{"/panic", http.StatusInternalServerError, `{"error":{"message":"Internal server error"},"detail":{"code":"INTERNAL_ERROR"}}`},
		{"/silent", http.StatusInternalServerError, `{"error":{"message":"Internal server error"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logFile := filepath.Join(t.TempDir(), "service.log")
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	logger := middleware.NewLogger(config.LogConfig{
		Level:          "info",
		TimeZone:       "Asia/Taipei",
		TimeZoneOffset: 8 * 60 * 60,
		TimeFormat:     time.RFC3339,
		File:           logFile,
		FileMaxSizeMB:  1,
	})

	r := gin.New()
	r.Use(logger.LoggingMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("propagates the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-abc", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-abc", w.Body.String())
	})

	t.Run("generates one when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get("X-Request-ID")
		assert.Regexp(t, `^\d{14}-[0-9a-f]{8}$`, id)
		assert.Equal(t, id, w.Body.String())
	})

	require.NoError(t, logger.Close())
	written, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), "Request completed")
	assert.Contains(t, string(written), "request_id=req-abc")
}
