package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pet-symptom-triage/internal/platform/logger"
)

func newObservedRouter(t *testing.T) (*chi.Mux, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewZap(zap.New(core))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(ExposeRequestID)
	r.Use(RequestLogger(log))
	r.Use(Recover(log))
	return r, logs
}

func TestRequestLogger_LogsStatusAndRequestID(t *testing.T) {
	r, logs := newObservedRouter(t)
	r.Get("/teapot", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "short and stout", http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	reqID := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, reqID)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/teapot", fields["path"])
	assert.Equal(t, reqID, fields["request_id"])
}

func TestRecover_TurnsPanicInto500(t *testing.T) {
	r, logs := newObservedRouter(t)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, "kaboom", logs.FilterMessage("panic recovered").All()[0].ContextMap()["panic"])

	reqLog := logs.FilterMessage("http request").All()
	require.Len(t, reqLog, 1)
	assert.Equal(t, zapcore.ErrorLevel, reqLog[0].Level)
}
