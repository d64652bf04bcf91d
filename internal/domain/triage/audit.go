package triage

import "time"

// Status de una llamada de etapa, tal como se registra en auditoría y métricas.
const (
	StatusOK                  = "ok"
	StatusHealed              = "healed"
	StatusFallback            = "fallback"
	StatusInvalidInput        = "invalid_input"
	StatusUpstreamUnavailable = "upstream_unavailable"
	StatusMalformedOutput     = "malformed_output"
	StatusError               = "error"
)

// AuditEntry es el registro estructural de una decisión del pipeline.
// No lleva texto del usuario (síntomas, respuestas) ni del generador.
type AuditEntry struct {
	ID         string
	Stage      Stage
	Round      int        // solo plan
	ResultType ResultType // solo plan
	Urgency    Urgency    // solo si hubo PLAN
	Healed     []string
	Fallback   bool
	Provider   string
	Violations int
	Status     string
	DurationMs int64
	CreatedAt  time.Time
}
