package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	mem "pet-symptom-triage/internal/adapters/storage/memory"
	pg "pet-symptom-triage/internal/adapters/storage/postgres"
	"pet-symptom-triage/internal/domain/triage"
	"pet-symptom-triage/internal/middleware"
	"pet-symptom-triage/internal/platform/logger"
	"pet-symptom-triage/internal/platform/metrics"

	_ "pet-symptom-triage/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const DefaultMaxBodyBytes int64 = 1 << 20

type Options struct {
	Gateway triage.Requester // requerido
	Logger  logger.Logger

	// Registry expuesto en /metrics. Si viene Metrics, tiene que estar registrado acá.
	Registry *prometheus.Registry
	Metrics  *metrics.TriageMetrics

	// Opcional: si viene, la auditoría va a Postgres. Si no, in-memory.
	DB *sql.DB

	MaxBodyBytes int64
	MaxRetries   int
	Backoff      time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewTriageMetrics(opts.Registry)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.ExposeRequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	svc := triage.NewService(opts.Gateway, triage.Options{
		Logger:     log,
		Metrics:    opts.Metrics,
		Audit:      auditRepo(opts.DB, log),
		MaxRetries: opts.MaxRetries,
		Backoff:    opts.Backoff,
	})

	// El límite de body solo aplica a la API; /metrics y /swagger no leen body.
	r.Group(func(api chi.Router) {
		api.Use(chimw.RequestSize(opts.MaxBodyBytes))
		triage.RegisterRoutes(api, svc)
	})

	return r
}

func auditRepo(db *sql.DB, log logger.Logger) triage.AuditRepository {
	if db == nil {
		return mem.NewAuditRepo(mem.DefaultAuditCapacity)
	}

	repo := pg.NewAuditRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Warn("postgres audit unavailable, using in-memory audit", map[string]any{"err": err})
		return mem.NewAuditRepo(mem.DefaultAuditCapacity)
	}
	return repo
}
