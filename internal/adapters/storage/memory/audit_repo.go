package memory

import (
	"context"
	"errors"
	"sync"

	"pet-symptom-triage/internal/domain/triage"
)

// DefaultAuditCapacity: cuántos registros conserva el repo in-memory.
const DefaultAuditCapacity = 1000

// AuditRepo guarda los últimos N registros en un ring buffer. Sirve para dev y
// tests; no sobrevive reinicios.
type AuditRepo struct {
	mu      sync.Mutex
	entries []triage.AuditEntry
	next    int
	full    bool
}

func NewAuditRepo(capacity int) *AuditRepo {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditRepo{entries: make([]triage.AuditEntry, capacity)}
}

func (r *AuditRepo) Append(ctx context.Context, e triage.AuditEntry) error {
	if e.ID == "" {
		return errors.New("audit entry id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e.Healed = append([]string(nil), e.Healed...)
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	return nil
}
