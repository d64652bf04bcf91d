package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-symptom-triage/internal/gateway"
)

// Plan decide el siguiente paso. A diferencia de Tips/Confirm, acá se cura:
// el único error de servicio posible (además del input) es la caída del
// upstream en la ronda 1. En la ronda 2 siempre hay un PLAN.
func (s *Service) Plan(ctx context.Context, in PlanInput) (PlanResult, error) {
	if strings.TrimSpace(in.Symptoms) == "" {
		return PlanResult{}, s.invalid(StagePlan, errMissingSymptoms)
	}
	if strings.TrimSpace(in.SelectedIssueTitle) == "" {
		return PlanResult{}, s.invalid(StagePlan, errMissingIssue)
	}
	if in.Round < MinRound || in.Round > MaxRound {
		return PlanResult{}, s.invalid(StagePlan, errInvalidRound)
	}

	start := s.now()
	p := BuildPlanPrompt(in)

	var raw rawOutcome
	rep, err := s.request(ctx, StagePlan, planContract, p, &raw)

	var got *rawOutcome
	switch {
	case err == nil:
		got = &raw
	case errors.Is(err, gateway.ErrMalformedOutput):
		// se cura en ambas rondas
	case errors.Is(err, gateway.ErrUpstreamUnavailable) && in.Round >= MaxRound:
		// ronda final: nunca se deja al usuario sin plan
	default:
		s.record(ctx, AuditEntry{Stage: StagePlan, Round: in.Round}, rep, err, start)
		return PlanResult{}, fmt.Errorf("plan: %w", err)
	}

	res := Enforce(in.Round, in.SelectedIssueTitle, got)

	e := AuditEntry{
		Stage:      StagePlan,
		Round:      in.Round,
		ResultType: res.Outcome.Type,
		Healed:     res.Healed,
		Fallback:   res.Fallback,
	}
	if res.Outcome.Plan != nil {
		e.Urgency = res.Outcome.Plan.Urgency
	}
	s.record(ctx, e, rep, nil, start)

	return res, nil
}
