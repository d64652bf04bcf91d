package triage

import (
	"context"
	"fmt"
	"strings"

	"pet-symptom-triage/internal/gateway"
)

type rawConfirm struct {
	SelectedIssueTitle string        `json:"selected_issue_title"`
	Questions          []rawQuestion `json:"questions"`
}

// Confirm pide de 2 a 4 preguntas para acotar la urgencia del issue elegido.
func (s *Service) Confirm(ctx context.Context, in ConfirmInput) (ConfirmResult, error) {
	if strings.TrimSpace(in.Symptoms) == "" {
		return ConfirmResult{}, s.invalid(StageConfirm, errMissingSymptoms)
	}
	if strings.TrimSpace(in.SelectedIssueTitle) == "" && strings.TrimSpace(in.SelectedIssueID) == "" {
		return ConfirmResult{}, s.invalid(StageConfirm, errMissingIssue)
	}

	start := s.now()
	p := BuildConfirmPrompt(in.Profile, in.Symptoms, in.SelectedIssueTitle, in.SelectedIssueID)

	var raw rawConfirm
	rep, err := s.request(ctx, StageConfirm, confirmContract, p, &raw)
	if err != nil {
		s.record(ctx, AuditEntry{Stage: StageConfirm}, rep, err, start)
		return ConfirmResult{}, fmt.Errorf("confirm: %w", err)
	}

	res, healed, err := shapeConfirm(raw, in)
	s.record(ctx, AuditEntry{Stage: StageConfirm, Healed: healed}, rep, err, start)
	if err != nil {
		return ConfirmResult{}, fmt.Errorf("confirm: %w", err)
	}
	return res, nil
}

// shapeConfirm sanea las preguntas; menos de MinConfirmQuestions es salida malformada.
// El título elegido por el usuario manda sobre el que devuelva el generador.
func shapeConfirm(raw rawConfirm, in ConfirmInput) (ConfirmResult, []string, error) {
	var healed []string

	qs := sanitizeQuestions(raw.Questions, MaxConfirmQuestions, "q")
	if len(qs) < MinConfirmQuestions {
		return ConfirmResult{}, nil, fmt.Errorf("%w: %d usable questions, need at least %d", gateway.ErrMalformedOutput, len(qs), MinConfirmQuestions)
	}
	for _, rq := range raw.Questions {
		if strings.TrimSpace(rq.Text) == "" && strings.TrimSpace(rq.ID) != "" {
			healed = append(healed, "question_text")
			break
		}
	}

	title := strings.TrimSpace(in.SelectedIssueTitle)
	if title == "" {
		title = strings.TrimSpace(raw.SelectedIssueTitle)
	}
	if title == "" {
		title = issueLabel("", in.SelectedIssueID)
		healed = append(healed, "selected_issue_title")
	}

	return ConfirmResult{SelectedIssueTitle: title, Questions: qs}, healed, nil
}
