package httpclient

import (
	"net/http"
	"time"

	"pet-symptom-triage/internal/platform/logger"
)

const (
	DefaultTimeout = 60 * time.Second
)

// New crea el *http.Client que usan los adapters de generador (openai, gemini).
// El timeout aquí es un techo de seguridad; el timeout real por llamada lo pone
// el gateway vía context.
func New(timeout time.Duration, log logger.Logger) *http.Client {
	return NewWithTransport(timeout, nil, log)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper, log logger.Logger) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingTransport{next: tr, log: log},
	}
}

// loggingTransport deja traza de cada llamada saliente sin tocar headers ni body
// (el Authorization del proveedor nunca se loguea).
type loggingTransport struct {
	next http.RoundTripper
	log  logger.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := map[string]any{
		"method":      req.Method,
		"host":        req.URL.Host,
		"path":        req.URL.Path,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["err"] = err
		t.log.Warn("upstream request failed", fields)
		return nil, err
	}

	fields["status"] = resp.StatusCode
	if resp.StatusCode >= 500 {
		t.log.Warn("upstream request", fields)
	} else {
		t.log.Debug("upstream request", fields)
	}
	return resp, nil
}
