package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"agrofleet/internal/core/apperror"
	"agrofleet/pkg/logger"
)

func newEngine(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(Recovery(), Trace(), Logger(logger.FromZap(zap.New(core))), ErrorHandler())
	return r, logs
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_AppError(t *testing.T) {
	r, _ := newEngine(t)
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("maquinaria", "42"))
		c.Abort()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode(t, w)["code"])
}

func TestErrorHandler_UnknownErrorIsHidden(t *testing.T) {
	r, logs := newEngine(t)
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
		c.Abort()
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	assert.Equal(t, 1, logs.FilterMessage("unhandled error").Len())
}

func TestRecovery_WritesResponse(t *testing.T) {
	r, logs := newEngine(t)
	r.GET("/boom", func(c *gin.Context) { panic("nil map") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, decode(t, w)["code"])
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestLogger_RequestEntryCarriesTrace(t *testing.T) {
	r, logs := newEngine(t)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ok?search=deere", nil)
	req.Header.Set(HeaderTraceID, "trace-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "trace-7", ctx["trace_id"])
	assert.Equal(t, "search=deere", ctx["query"])
	assert.EqualValues(t, http.StatusNoContent, ctx["status"])
}
