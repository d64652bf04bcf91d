package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"pet-symptom-triage/internal/adapters/generator/gemini"
	"pet-symptom-triage/internal/adapters/generator/openai"
	"pet-symptom-triage/internal/adapters/generator/scripted"
	pg "pet-symptom-triage/internal/adapters/storage/postgres"
	"pet-symptom-triage/internal/gateway"
	"pet-symptom-triage/internal/platform/config"
	"pet-symptom-triage/internal/platform/httpclient"
	"pet-symptom-triage/internal/platform/logger"
	"pet-symptom-triage/internal/platform/metrics"
	"pet-symptom-triage/internal/ports/generator"
	"pet-symptom-triage/internal/router"
)

// @title Pet Symptom Triage API
// @version 1.0
// @description Triage en tres etapas (tips, confirm, plan) para síntomas de mascotas. Orientativo, nunca un diagnóstico.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		// sin config válida no hay logger configurado todavía
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if s, ok := lg.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg, lg)
	if err != nil {
		lg.Error("generator setup failed", map[string]any{"provider": cfg.LLM.Provider, "err": err})
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewTriageMetrics(reg)

	gw, err := gateway.New(gen, gateway.Options{
		Timeout:     cfg.LLM.Timeout,
		Temperature: cfg.LLM.Temperature,
		Logger:      lg,
		Metrics:     m,
	})
	if err != nil {
		lg.Error("gateway setup failed", map[string]any{"err": err})
		os.Exit(1)
	}

	// Postgres es opcional: si no conecta, la auditoría queda in-memory.
	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			lg.Warn("postgres unavailable, audit stays in-memory", map[string]any{"err": err})
		} else {
			db = opened
			defer db.Close()
		}
	}

	r := router.NewRouter(router.Options{
		Gateway:      gw,
		Logger:       lg,
		Registry:     reg,
		Metrics:      m,
		DB:           db,
		MaxBodyBytes: cfg.MaxBodyBytes,
		MaxRetries:   cfg.LLM.MaxRetries,
	})

	// Un request de plan puede esperar timeout * (reintentos + 1) más el backoff.
	writeTimeout := cfg.LLM.Timeout*time.Duration(cfg.LLM.MaxRetries+1) + 15*time.Second

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	lg.Info("starting server", map[string]any{
		"addr":     srv.Addr,
		"provider": gw.Provider(),
		"audit":    auditBackend(db),
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
	lg.Info("server stopped", nil)
}

func newGenerator(ctx context.Context, cfg config.Config, lg logger.Logger) (generator.Generator, error) {
	hc := httpclient.New(cfg.LLM.Timeout, lg)

	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:     cfg.LLM.APIKey,
			Model:      cfg.LLM.Model,
			BaseURL:    cfg.LLM.BaseURL,
			HTTPClient: hc,
		})
	case config.ProviderGemini:
		return gemini.NewClient(ctx, gemini.Config{
			APIKey:     cfg.LLM.APIKey,
			Model:      cfg.LLM.Model,
			BaseURL:    cfg.LLM.BaseURL,
			HTTPClient: hc,
		})
	case config.ProviderScripted:
		return scripted.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.LLM.Provider)
	}
}

func auditBackend(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
