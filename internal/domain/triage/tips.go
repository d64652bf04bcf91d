package triage

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"pet-symptom-triage/internal/gateway"
)

type rawTips struct {
	Title      string     `json:"title"`
	Intro      string     `json:"intro"`
	Issues     []rawIssue `json:"issues"`
	Disclaimer string     `json:"disclaimer"`
}

// Rank va como float64: algunos modelos mandan 1.0 o ranks repetidos.
type rawIssue struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Rank         float64   `json:"rank"`
	ConcernLevel string    `json:"concern_level"`
	Why          looseList `json:"why"`
	DoToday      looseList `json:"do_today"`
	Watch        looseList `json:"watch"`
}

// Tips devuelve entre 3 y 5 posibles causas ordenadas. Los errores del gateway
// (caída o salida malformada) se devuelven tal cual: esta etapa no se cura.
func (s *Service) Tips(ctx context.Context, in TipsInput) (TipsResult, error) {
	if strings.TrimSpace(in.Symptoms) == "" {
		return TipsResult{}, s.invalid(StageTips, errMissingSymptoms)
	}

	start := s.now()
	p := BuildTipsPrompt(in.Profile, in.Symptoms)

	var raw rawTips
	rep, err := s.request(ctx, StageTips, tipsContract, p, &raw)
	if err != nil {
		s.record(ctx, AuditEntry{Stage: StageTips}, rep, err, start)
		return TipsResult{}, fmt.Errorf("tips: %w", err)
	}

	res, healed, err := shapeTips(raw)
	s.record(ctx, AuditEntry{Stage: StageTips, Healed: healed}, rep, err, start)
	if err != nil {
		return TipsResult{}, fmt.Errorf("tips: %w", err)
	}
	return res, nil
}

// shapeTips filtra, ordena, renumera y acota los issues. Devuelve los campos que tuvo que completar.
// Menos de MinIssues utilizables es salida malformada: en esta etapa no se cura.
func shapeTips(raw rawTips) (TipsResult, []string, error) {
	var healed []string

	// Se descartan issues sin título, repetidos (mismo título ya reformulado) o con
	// listas por debajo del mínimo. Las listas quedan ya saneadas.
	issues := make([]rawIssue, 0, len(raw.Issues))
	seen := map[string]struct{}{}
	for _, is := range raw.Issues {
		if strings.TrimSpace(is.Title) == "" {
			continue
		}
		key := strings.ToLower(possibleTitle(is.Title))
		if _, dup := seen[key]; dup {
			continue
		}

		is.Why = cleanList(is.Why, MaxIssueWhy)
		is.DoToday = cleanList(is.DoToday, MaxIssueDoToday)
		is.Watch = cleanList(is.Watch, MaxIssueWatch)
		if len(is.Why) < MinIssueWhy || len(is.DoToday) < MinIssueDoToday || len(is.Watch) < MinIssueWatch {
			continue
		}

		seen[key] = struct{}{}
		issues = append(issues, is)
	}

	// Ranks no positivos van al final; empates conservan el orden recibido.
	sortKey := func(r float64) float64 {
		if r <= 0 || math.IsNaN(r) {
			return math.Inf(1)
		}
		return r
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return sortKey(issues[i].Rank) < sortKey(issues[j].Rank)
	})

	if len(issues) > MaxIssues {
		issues = issues[:MaxIssues]
	}
	if len(issues) < MinIssues {
		return TipsResult{}, nil, fmt.Errorf("%w: %d usable issues, need at least %d", gateway.ErrMalformedOutput, len(issues), MinIssues)
	}

	out := TipsResult{
		Title:      strings.TrimSpace(raw.Title),
		Intro:      strings.TrimSpace(raw.Intro),
		Disclaimer: strings.TrimSpace(raw.Disclaimer),
		Issues:     make([]Issue, 0, len(issues)),
	}
	if out.Title == "" {
		out.Title = defaultTipsTitle
		healed = append(healed, "title")
	}
	if out.Intro == "" {
		out.Intro = defaultTipsIntro
		healed = append(healed, "intro")
	}
	if out.Disclaimer == "" {
		out.Disclaimer = DefaultDisclaimer
		healed = append(healed, "disclaimer")
	}

	usedIDs := map[string]struct{}{}
	for i, is := range issues {
		rank := i + 1

		cl, ok := ParseConcernLevel(is.ConcernLevel)
		if !ok {
			cl = ConcernModerate
			healed = append(healed, "concern_level")
		}

		id := strings.TrimSpace(is.ID)
		if _, dup := usedIDs[id]; id == "" || dup {
			id = fmt.Sprintf("issue-%d", rank)
		}
		usedIDs[id] = struct{}{}

		out.Issues = append(out.Issues, Issue{
			ID:           id,
			Title:        possibleTitle(is.Title),
			Rank:         rank,
			ConcernLevel: cl,
			Why:          is.Why,
			DoToday:      is.DoToday,
			Watch:        is.Watch,
		})
	}

	return out, healed, nil
}

// possibleTitle fuerza la redacción no diagnóstica: "Gastroenteritis" => "Possible gastroenteritis".
// Títulos que ya arrancan con "possible"/"possibly" se respetan. Siglas ("UTI") no se pasan a minúscula.
func possibleTitle(title string) string {
	t := strings.TrimSpace(title)
	if strings.HasPrefix(strings.ToLower(t), "possibl") {
		r, size := utf8.DecodeRuneInString(t)
		return string(unicode.ToUpper(r)) + t[size:]
	}

	first, size := utf8.DecodeRuneInString(t)
	rest := t[size:]
	if next, _ := utf8.DecodeRuneInString(rest); rest == "" || !unicode.IsUpper(next) {
		first = unicode.ToLower(first)
	}
	return "Possible " + string(first) + rest
}
