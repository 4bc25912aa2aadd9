package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-contact-api/internal/delivery/http/middleware"
	"portfolio-contact-api/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.POST("/", append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })...)
	return r
}

func doPost(r http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitInMemoryFallback(t *testing.T) {
	cfg := middleware.RateLimitConfig{Limit: 2, Window: time.Minute, KeyPrefix: "rl:test:"}
	r := newEngine(middleware.RateLimitMiddleware(cfg))

	t.Run("Should admit up to the limit", func(t *testing.T) {
		w := doPost(r, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

		w = doPost(r, "10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should reject past the limit", func(t *testing.T) {
		w := doPost(r, "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Should track clients separately", func(t *testing.T) {
		w := doPost(r, "10.0.0.2")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestContactRateLimitConfigDefaults(t *testing.T) {
	cfg := middleware.ContactRateLimitConfig(0)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.False(t, cfg.FailClosed)
}

func TestRequestID(t *testing.T) {
	r := newEngine()

	t.Run("Should generate an id", func(t *testing.T) {
		w := doPost(r, "10.0.0.3")
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})

	t.Run("Should keep the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		c.Error(apperror.BadGateway("Failed to send message. Please try again later.", errors.New("upstream said: token abc")))
	})
	r.GET("/raw", func(c *gin.Context) {
		c.Error(errors.New("database password is hunter2"))
	})

	t.Run("Should render the AppError message only", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to send message. Please try again later.")
		assert.NotContains(t, w.Body.String(), "token abc")
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "hunter2")
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(middleware.SecurityHeadersMiddleware())
	w := doPost(r, "10.0.0.4")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
