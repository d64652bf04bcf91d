package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pet-symptom-triage/internal/platform/logger"
	"pet-symptom-triage/internal/platform/metrics"
	"pet-symptom-triage/internal/ports/generator"
)

var (
	// ErrUpstreamUnavailable: transporte/auth/timeout contra el generador.
	ErrUpstreamUnavailable = errors.New("upstream generator unavailable")
	// ErrMalformedOutput: el generador respondió, pero no con un JSON decodificable a la forma pedida.
	ErrMalformedOutput = errors.New("malformed generator output")
)

const DefaultTimeout = 45 * time.Second

type Options struct {
	Timeout     time.Duration
	Temperature float32
	Logger      logger.Logger
	Metrics     *metrics.TriageMetrics
	Tracer      trace.Tracer
}

// Gateway es el único punto de integración con el generador de texto.
// No guarda estado entre llamadas y no reintenta: los reintentos son política del caller.
type Gateway struct {
	gen         generator.Generator
	timeout     time.Duration
	temperature float32
	log         logger.Logger
	metrics     *metrics.TriageMetrics
	tracer      trace.Tracer
}

func New(gen generator.Generator, opts Options) (*Gateway, error) {
	if gen == nil {
		return nil, errors.New("gateway: generator is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("pet-symptom-triage/gateway")
	}
	return &Gateway{
		gen:         gen,
		timeout:     opts.Timeout,
		temperature: opts.Temperature,
		log:         opts.Logger.With(map[string]any{"component": "gateway", "provider": gen.Name()}),
		metrics:     opts.Metrics,
		tracer:      opts.Tracer,
	}, nil
}

// Provider devuelve el nombre del generador configurado.
func (g *Gateway) Provider() string {
	return g.gen.Name()
}

// Report describe una llamada exitosa al generador. Violations lista las
// desviaciones respecto del contrato; no son fatales, cada etapa decide qué hacer.
type Report struct {
	Provider   string
	Raw        json.RawMessage
	Violations []string
	Duration   time.Duration
}

// Request envía system/user + contrato al generador, extrae el payload JSON
// del sobre de respuesta, lo valida contra el contrato y lo decodifica en out.
func (g *Gateway) Request(ctx context.Context, c *generator.Contract, system, user string, out any) (Report, error) {
	if c == nil || c.Schema == nil {
		return Report{}, errors.New("gateway: contract is required")
	}

	ctx, span := g.tracer.Start(ctx, "gateway.request", trace.WithAttributes(
		attribute.String("triage.stage", c.Name),
		attribute.String("llm.provider", g.gen.Name()),
	))
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.gen.Generate(callCtx, generator.Prompt{
		Stage:       c.Name,
		System:      system,
		User:        user,
		Contract:    c,
		Temperature: g.temperature,
	})
	elapsed := time.Since(start)
	g.metrics.ObserveGenerator(g.gen.Name(), c.Name, err == nil, elapsed)

	rep := Report{Provider: g.gen.Name(), Duration: elapsed}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream unavailable")
		g.log.Warn("generator call failed", map[string]any{
			"stage":       c.Name,
			"duration_ms": elapsed.Milliseconds(),
			"err":         err,
		})
		return rep, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	raw, err := extractJSON(text)
	if err != nil {
		span.SetStatus(codes.Error, "malformed output")
		g.log.Warn("generator returned unparseable payload", map[string]any{
			"stage": c.Name,
			"bytes": len(text),
		})
		return rep, err
	}
	rep.Raw = raw

	rep.Violations = validate(c.Schema, raw)
	if len(rep.Violations) > 0 {
		g.metrics.ObserveViolations(c.Name, len(rep.Violations))
		span.SetAttributes(attribute.Int("triage.contract_violations", len(rep.Violations)))
		g.log.Info("generator payload violates contract", map[string]any{
			"stage":      c.Name,
			"violations": rep.Violations,
		})
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			span.SetStatus(codes.Error, "malformed output")
			return rep, fmt.Errorf("%w: decode %s: %v", ErrMalformedOutput, c.Name, err)
		}
	}

	g.log.Debug("generator call ok", map[string]any{
		"stage":       c.Name,
		"duration_ms": elapsed.Milliseconds(),
	})
	return rep, nil
}

// extractJSON saca el payload del sobre: texto recortado, opcionalmente
// envuelto en un bloque ```json ... ```. Si quedó prosa alrededor, se toma el
// objeto JSON exterior (primer '{' hasta el último '}'). No reformatea nada más.
func extractJSON(text string) (json.RawMessage, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			// descarta la etiqueta de lenguaje ("json")
			s = s[nl+1:]
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedOutput)
	}
	if !json.Valid([]byte(s)) {
		start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}')
		if start < 0 || end <= start || !json.Valid([]byte(s[start:end+1])) {
			return nil, fmt.Errorf("%w: payload is not valid json", ErrMalformedOutput)
		}
		s = s[start : end+1]
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return buf.Bytes(), nil
}

func validate(schema *generator.Schema, raw json.RawMessage) []string {
	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema.JSON()),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return []string{err.Error()}
	}
	if res.Valid() {
		return nil
	}
	out := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		out = append(out, e.String())
	}
	return out
}
