//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"carwash-scheduler/internal/handler/httperr"
	"carwash-scheduler/internal/handler/middleware"
	"carwash-scheduler/internal/pkg/config"
	"carwash-scheduler/internal/pkg/errs"
	"carwash-scheduler/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("rejects requests beyond the burst", func(t *testing.T) {
		engine := newEngine(middleware.RateLimitMiddleware(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}, zap.NewNop()))
		engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		for range 2 {
			rec := httptest.PerformRequest(t, engine, http.MethodGet, "/ping", nil)
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}
		rec := httptest.PerformRequest(t, engine, http.MethodGet, "/ping", nil)
		httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Rate limit exceeded")
		httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "1"})
	})

	t.Run("disabled passes everything", func(t *testing.T) {
		engine := newEngine(middleware.RateLimitMiddleware(config.RateLimitConfig{Enabled: false}, zap.NewNop()))
		engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		for range 5 {
			rec := httptest.PerformRequest(t, engine, http.MethodGet, "/ping", nil)
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}
	})
}

func TestErrorHandler_ContentionCarriesRetryAfter(t *testing.T) {
	engine := newEngine(middleware.ErrorHandler(3 * time.Second))
	engine.GET("/busy", func(c *gin.Context) {
		httperr.Abort(c, errs.Contention("SLOT_CONTENDED", "slot is being booked"))
	})

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/busy", nil)

	httptest.AssertErrorResponse(t, rec, http.StatusConflict, "slot is being booked")
	httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "3"})
	assert.Contains(t, rec.Body.String(), `"retryable":true`)
}

func TestCustomRecovery(t *testing.T) {
	engine := newEngine(middleware.CustomRecovery(zap.NewNop()), middleware.LoggingMiddleware(zap.NewNop()))
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/boom", nil)

	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
