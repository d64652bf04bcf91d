package triage

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"pet-symptom-triage/internal/gateway"
	"pet-symptom-triage/internal/platform/logger"
	"pet-symptom-triage/internal/platform/metrics"
	"pet-symptom-triage/internal/ports/generator"
)

const (
	DefaultMaxRetries = 1
	DefaultBackoff    = 300 * time.Millisecond
)

// Requester es lo que el servicio necesita del gateway.
type Requester interface {
	Request(ctx context.Context, c *generator.Contract, system, user string, out any) (gateway.Report, error)
	Provider() string
}

type Options struct {
	Logger  logger.Logger
	Metrics *metrics.TriageMetrics
	Audit   AuditRepository // nil = sin auditoría

	// Reintentos solo ante ErrUpstreamUnavailable. Negativo = DefaultMaxRetries.
	MaxRetries int
	Backoff    time.Duration
}

// Service implementa las tres etapas. No guarda estado de conversación:
// todo lo necesario llega en cada input.
type Service struct {
	gw         Requester
	log        logger.Logger
	metrics    *metrics.TriageMetrics
	audit      AuditRepository
	maxRetries int
	backoff    time.Duration

	now   func() time.Time
	timer func() backoff.Timer // nil = timer real de la librería
}

func NewService(gw Requester, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultBackoff
	}
	return &Service{
		gw:         gw,
		log:        opts.Logger.With(map[string]any{"component": "triage"}),
		metrics:    opts.Metrics,
		audit:      opts.Audit,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		now:        time.Now,
	}
}

// request llama al gateway reintentando solo caídas del upstream, con backoff
// exponencial sin jitter. La salida malformada nunca se reintenta.
// Si el contexto se cancela entre intentos se devuelve el último error del gateway.
func (s *Service) request(ctx context.Context, stage Stage, c *generator.Contract, p Prompt, out any) (gateway.Report, error) {
	var (
		rep     gateway.Report
		last    error
		attempt int
	)
	op := func() error {
		rep, last = s.gw.Request(ctx, c, p.System, p.User, out)
		if last != nil && !errors.Is(last, gateway.ErrUpstreamUnavailable) {
			return backoff.Permanent(last)
		}
		return last
	}
	notify := func(err error, wait time.Duration) {
		attempt++
		s.log.Warn("retrying generator call", map[string]any{
			"stage":   string(stage),
			"attempt": attempt,
			"wait_ms": wait.Milliseconds(),
			"err":     err,
		})
	}

	var t backoff.Timer
	if s.timer != nil {
		t = s.timer()
	}
	// La librería puede devolver ctx.Err(); al caller le sirve el último error del gateway.
	_ = backoff.RetryNotifyWithTimer(op, s.retryPolicy(ctx), notify, t)
	return rep, last
}

func (s *Service) retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.backoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.maxRetries)), ctx)
}

// record cierra una llamada de etapa: métricas, log y auditoría.
// Un fallo del repositorio de auditoría se loguea y nunca afecta la respuesta.
func (s *Service) record(ctx context.Context, e AuditEntry, rep gateway.Report, err error, start time.Time) {
	e.ID = uuid.NewString()
	e.Provider = rep.Provider
	if e.Provider == "" && s.gw != nil {
		e.Provider = s.gw.Provider()
	}
	e.Violations = len(rep.Violations)
	e.DurationMs = s.now().Sub(start).Milliseconds()
	e.CreatedAt = s.now().UTC()
	if e.Status == "" {
		e.Status = statusOf(err, e)
	}

	s.metrics.ObserveStage(string(e.Stage), e.Status)
	for _, f := range e.Healed {
		s.metrics.ObserveHealed(string(e.Stage), f)
	}

	fields := map[string]any{
		"audit_id":    e.ID,
		"stage":       string(e.Stage),
		"status":      e.Status,
		"provider":    e.Provider,
		"violations":  e.Violations,
		"duration_ms": e.DurationMs,
	}
	if e.Stage == StagePlan {
		fields["round"] = e.Round
		fields["result_type"] = string(e.ResultType)
		fields["urgency"] = string(e.Urgency)
		fields["fallback"] = e.Fallback
	}
	if len(e.Healed) > 0 {
		fields["healed"] = e.Healed
	}
	switch {
	case err != nil:
		fields["err"] = err
		s.log.Warn("triage stage failed", fields)
	case e.Fallback:
		s.log.Warn("triage stage fell back to default", fields)
	default:
		s.log.Info("triage stage completed", fields)
	}

	if s.audit == nil {
		return
	}
	// El request puede haberse cancelado; el registro igual se intenta.
	if aerr := s.audit.Append(context.WithoutCancel(ctx), e); aerr != nil {
		s.log.Error("audit append failed", map[string]any{
			"audit_id": e.ID,
			"stage":    string(e.Stage),
			"err":      aerr,
		})
	}
}

// invalid registra un rechazo de input: solo métricas, no hubo llamada al generador.
func (s *Service) invalid(stage Stage, err error) error {
	s.metrics.ObserveStage(string(stage), StatusInvalidInput)
	s.log.Debug("triage input rejected", map[string]any{"stage": string(stage), "err": err})
	return err
}

func statusOf(err error, e AuditEntry) string {
	switch {
	case err == nil && e.Fallback:
		return StatusFallback
	case err == nil && len(e.Healed) > 0:
		return StatusHealed
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInvalidInput):
		return StatusInvalidInput
	case errors.Is(err, gateway.ErrUpstreamUnavailable):
		return StatusUpstreamUnavailable
	case errors.Is(err, gateway.ErrMalformedOutput):
		return StatusMalformedOutput
	default:
		return StatusError
	}
}
