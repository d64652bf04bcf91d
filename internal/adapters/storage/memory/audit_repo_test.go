package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-symptom-triage/internal/domain/triage"
)

func entry(i int) triage.AuditEntry {
	return triage.AuditEntry{ID: fmt.Sprintf("e%d", i), Stage: triage.StageTips}
}

func ids(es []triage.AuditEntry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestAuditRepo_KeepsInsertionOrder(t *testing.T) {
	r := NewAuditRepo(5)
	for i := 1; i <= 3; i++ {
		require.NoError(t, r.Append(context.Background(), entry(i)))
	}

	assert.Equal(t, []string{"e1", "e2", "e3"}, ids(recent(r, 0)))
	assert.Equal(t, []string{"e2", "e3"}, ids(recent(r, 2)))
}

func TestAuditRepo_DropsOldestWhenFull(t *testing.T) {
	r := NewAuditRepo(3)
	for i := 1; i <= 7; i++ {
		require.NoError(t, r.Append(context.Background(), entry(i)))
	}

	assert.Equal(t, []string{"e5", "e6", "e7"}, ids(recent(r, 10)))
}

func TestAuditRepo_RequiresID(t *testing.T) {
	r := NewAuditRepo(3)
	assert.Error(t, r.Append(context.Background(), triage.AuditEntry{}))
	assert.Empty(t, recent(r, 0))
}

func TestAuditRepo_ConcurrentAppend(t *testing.T) {
	r := NewAuditRepo(100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = r.Append(context.Background(), entry(i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, recent(r, 0), 50)
}

// recent devuelve hasta n registros, del más viejo al más nuevo.
func recent(r *AuditRepo, n int) []triage.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	start := 0
	if r.full {
		size = len(r.entries)
		start = r.next
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]triage.AuditEntry, 0, n)
	for i := size - n; i < size; i++ {
		out = append(out, r.entries[(start+i)%len(r.entries)])
	}
	return out
}
