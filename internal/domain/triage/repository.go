package triage

import "context"

// AuditRepository es de solo escritura: el pipeline nunca lee lo que registra.
type AuditRepository interface {
	Append(ctx context.Context, e AuditEntry) error
}
