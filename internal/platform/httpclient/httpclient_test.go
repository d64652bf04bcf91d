package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pet-symptom-triage/internal/platform/logger"
)

func TestClient_LogsUpstreamCalls(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(2*time.Second, logger.NewZap(zap.New(core)))

	res, err := c.Get(ts.URL + "/ok")
	require.NoError(t, err)
	_ = res.Body.Close()

	res, err = c.Get(ts.URL + "/boom")
	require.NoError(t, err)
	_ = res.Body.Close()

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusBadGateway, entries[1].ContextMap()["status"])
}

func TestNew_DefaultTimeout(t *testing.T) {
	c := New(0, nil)
	assert.Equal(t, DefaultTimeout, c.Timeout)
}
