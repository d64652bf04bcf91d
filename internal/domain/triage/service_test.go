package triage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-symptom-triage/internal/adapters/generator/scripted"
	"pet-symptom-triage/internal/domain/profile"
	"pet-symptom-triage/internal/gateway"
	"pet-symptom-triage/internal/platform/metrics"
)

// -------------------------
// Test audit repo (in-memory)
// -------------------------

type testAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error
}

func (a *testAudit) Append(_ context.Context, e AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, e)
	return nil
}

func (a *testAudit) all() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AuditEntry(nil), a.entries...)
}

type testEnv struct {
	svc     *Service
	gen     *scripted.Generator
	audit   *testAudit
	metrics *metrics.TriageMetrics
	sleeps  []time.Duration
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		gen:     scripted.New(),
		audit:   &testAudit{},
		metrics: metrics.NewTriageMetrics(prometheus.NewRegistry()),
	}
	gw, err := gateway.New(env.gen, gateway.Options{Timeout: time.Second, Metrics: env.metrics})
	require.NoError(t, err)

	env.svc = NewService(gw, Options{
		Metrics:    env.metrics,
		Audit:      env.audit,
		MaxRetries: 1,
		Backoff:    300 * time.Millisecond,
	})
	env.svc.now = func() time.Time { return time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC) }
	env.svc.timer = func() backoff.Timer { return &instantTimer{waits: &env.sleeps} }
	return env
}

// instantTimer registra cada espera y dispara en el acto.
type instantTimer struct {
	waits  *[]time.Duration
	c      chan time.Time
	onWait func()
}

func (t *instantTimer) Start(d time.Duration) {
	*t.waits = append(*t.waits, d)
	if t.c == nil {
		t.c = make(chan time.Time, 1)
	}
	if t.onWait != nil {
		t.onWait()
		return
	}
	t.c <- time.Time{}
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time { return t.c }

func dogProfile() profile.Profile {
	return profile.Normalize(map[string]any{"species": "dog", "ageYears": 3})
}

// -------------------------
// Tests
// -------------------------

func TestService_RetriesUpstreamFailureOnce(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("tips", scripted.Reply{Err: scripted.ErrScriptedUpstream})

	res, err := env.svc.Tips(context.Background(), TipsInput{Profile: dogProfile(), Symptoms: "vomiting"})
	require.NoError(t, err)
	assert.Len(t, res.Issues, 3)

	assert.Len(t, env.gen.Calls(), 2)
	assert.Equal(t, []time.Duration{300 * time.Millisecond}, env.sleeps)
}

func TestService_GivesUpAfterMaxRetries(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("tips",
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
	)

	_, err := env.svc.Tips(context.Background(), TipsInput{Profile: dogProfile(), Symptoms: "vomiting"})
	require.ErrorIs(t, err, gateway.ErrUpstreamUnavailable)
	assert.Len(t, env.gen.Calls(), 2)

	entries := env.audit.all()
	require.Len(t, entries, 1)
	assert.Equal(t, StatusUpstreamUnavailable, entries[0].Status)
}

func TestService_MalformedOutputIsNotRetried(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("tips", scripted.Reply{Text: "not json at all"})

	_, err := env.svc.Tips(context.Background(), TipsInput{Profile: dogProfile(), Symptoms: "vomiting"})
	require.ErrorIs(t, err, gateway.ErrMalformedOutput)
	assert.Len(t, env.gen.Calls(), 1)
	assert.Empty(t, env.sleeps)
}

func TestService_BackoffDoubles(t *testing.T) {
	env := newTestEnv(t)
	env.svc.maxRetries = 3
	env.gen.Script("tips",
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
	)

	_, err := env.svc.Tips(context.Background(), TipsInput{Profile: dogProfile(), Symptoms: "vomiting"})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{
		300 * time.Millisecond,
		600 * time.Millisecond,
		1200 * time.Millisecond,
	}, env.sleeps)
}

func TestService_CancelledContextStopsRetrying(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env.svc.timer = func() backoff.Timer { return &instantTimer{waits: &env.sleeps, onWait: cancel} }
	env.gen.Script("tips", scripted.Reply{Err: scripted.ErrScriptedUpstream})

	_, err := env.svc.Tips(ctx, TipsInput{Profile: dogProfile(), Symptoms: "vomiting"})
	require.ErrorIs(t, err, gateway.ErrUpstreamUnavailable)
	assert.Len(t, env.gen.Calls(), 1)
	assert.Len(t, env.sleeps, 1)
}

func TestService_AuditFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	env.audit.err = errors.New("db down")

	res, err := env.svc.Tips(context.Background(), TipsInput{Profile: dogProfile(), Symptoms: "vomiting"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Issues)
}

func TestService_AuditEntryCarriesNoUserText(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Confirm(context.Background(), ConfirmInput{
		Profile:            dogProfile(),
		Symptoms:           "secret vomiting details",
		SelectedIssueTitle: "Possible dietary upset",
	})
	require.NoError(t, err)

	entries := env.audit.all()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, StageConfirm, e.Stage)
	assert.Equal(t, "scripted", e.Provider)
	assert.Equal(t, StatusOK, e.Status)
	assert.Equal(t, time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC), e.CreatedAt)
	assert.NotContains(t, e.Healed, "secret vomiting details")
}
