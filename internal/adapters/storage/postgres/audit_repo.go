package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-symptom-triage/internal/domain/triage"
)

const auditSchema = `
	CREATE TABLE IF NOT EXISTS triage_audit (
		id           UUID PRIMARY KEY,
		stage        TEXT NOT NULL,
		round        SMALLINT NOT NULL DEFAULT 0,
		result_type  TEXT NOT NULL DEFAULT '',
		urgency      TEXT NOT NULL DEFAULT '',
		healed       TEXT NOT NULL DEFAULT '',
		fallback     BOOLEAN NOT NULL DEFAULT FALSE,
		provider     TEXT NOT NULL,
		violations   INTEGER NOT NULL DEFAULT 0,
		status       TEXT NOT NULL,
		duration_ms  BIGINT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	)
`

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// EnsureSchema crea la tabla si no existe. Idempotente.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, auditSchema); err != nil {
		return fmt.Errorf("ensure triage_audit: %w", err)
	}
	return nil
}

func (r *AuditRepo) Append(ctx context.Context, e triage.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO triage_audit (
			id, stage,
			round, result_type, urgency,
			healed, fallback,
			provider, violations,
			status, duration_ms,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		e.ID,
		string(e.Stage),
		e.Round,
		string(e.ResultType),
		string(e.Urgency),
		strings.Join(e.Healed, ","),
		e.Fallback,
		e.Provider,
		e.Violations,
		e.Status,
		e.DurationMs,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert triage_audit: %w", err)
	}
	return nil
}
