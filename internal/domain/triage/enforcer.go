package triage

import "strings"

// rawOutcome es lo que decodifica el gateway para la etapa plan: las dos formas
// del outcome en un mismo objeto, todo opcional. Las listas son looseList para
// que un campo mal tipado no tire el resto de la respuesta.
type rawOutcome struct {
	ResultType string `json:"result_type"`

	Urgency    string    `json:"urgency"`
	Headline   string    `json:"headline"`
	Why        looseList `json:"why"`
	DoNow      looseList `json:"do_now"`
	Avoid      looseList `json:"avoid"`
	RedFlags   looseList `json:"red_flags"`
	Disclaimer string    `json:"disclaimer"`

	SelectedIssueTitle string        `json:"selected_issue_title"`
	Reason             string        `json:"reason"`
	Questions          []rawQuestion `json:"questions"`
}

// Enforce convierte la salida best-effort del generador en un outcome bien formado.
//
// raw == nil significa "no hubo salida utilizable" (malformada, o caída del
// upstream en la ronda final). Reglas:
//   - ronda 2: todo lo que no sea un PLAN bien formado se reemplaza por SafeDefaultPlan.
//   - ronda 1: NEED_MORE_INFO con al menos una pregunta pasa; cualquier otra cosa
//     se cura campo a campo desde la tabla de la urgencia.
func Enforce(round int, selectedIssue string, raw *rawOutcome) PlanResult {
	if round >= MaxRound {
		return enforceFinalRound(raw)
	}

	if raw == nil {
		return PlanResult{
			Outcome:  planOutcome(defaultsFor(UrgencyMonitor24h)),
			Healed:   []string{"*"},
			Fallback: true,
		}
	}

	rt, _ := ParseResultType(raw.ResultType)

	if rt == ResultNeedMoreInfo {
		qs := sanitizeQuestions(raw.Questions, MaxFollowUpQuestions, "r2q")
		if len(qs) >= MinFollowUpQuestions {
			var healed []string
			nmi := NeedMoreInfo{
				SelectedIssueTitle: strings.TrimSpace(raw.SelectedIssueTitle),
				Reason:             strings.TrimSpace(raw.Reason),
				Questions:          qs,
			}
			if nmi.SelectedIssueTitle == "" {
				nmi.SelectedIssueTitle = strings.TrimSpace(selectedIssue)
				healed = append(healed, "selected_issue_title")
			}
			if nmi.Reason == "" {
				nmi.Reason = defaultNeedMoreInfoReason
				healed = append(healed, "reason")
			}
			return PlanResult{
				Outcome: Outcome{Type: ResultNeedMoreInfo, NeedMoreInfo: &nmi},
				Healed:  healed,
			}
		}
		// Pidió más info sin preguntas utilizables: no hay a qué responder.
		plan, healed := healPlan(raw)
		return PlanResult{
			Outcome: planOutcome(plan),
			Healed:  append([]string{"result_type"}, healed...),
		}
	}

	plan, healed := healPlan(raw)
	if rt != ResultPlan {
		healed = append([]string{"result_type"}, healed...)
	}
	return PlanResult{Outcome: planOutcome(plan), Healed: healed}
}

func enforceFinalRound(raw *rawOutcome) PlanResult {
	if raw != nil {
		if rt, _ := ParseResultType(raw.ResultType); rt == ResultPlan {
			if plan, ok := wellFormedPlan(raw); ok {
				return PlanResult{Outcome: planOutcome(plan)}
			}
		}
	}
	return PlanResult{
		Outcome:  planOutcome(SafeDefaultPlan()),
		Healed:   []string{"*"},
		Fallback: true,
	}
}

// wellFormedPlan: urgencia reconocida, headline/disclaimer no vacíos y cada lista
// con al menos su mínimo. Lo que exceda el máximo se trunca.
func wellFormedPlan(raw *rawOutcome) (Plan, bool) {
	u, ok := ParseUrgency(raw.Urgency)
	if !ok {
		return Plan{}, false
	}
	p := Plan{
		Urgency:    u,
		Headline:   strings.TrimSpace(raw.Headline),
		Why:        cleanList(raw.Why, MaxPlanWhy),
		DoNow:      cleanList(raw.DoNow, MaxPlanDoNow),
		Avoid:      cleanList(raw.Avoid, MaxPlanAvoid),
		RedFlags:   cleanList(raw.RedFlags, MaxPlanRedFlags),
		Disclaimer: strings.TrimSpace(raw.Disclaimer),
	}
	if p.Headline == "" || p.Disclaimer == "" ||
		len(p.Why) < MinPlanWhy ||
		len(p.DoNow) < MinPlanDoNow ||
		len(p.Avoid) < MinPlanAvoid ||
		len(p.RedFlags) < MinPlanRedFlags {
		return Plan{}, false
	}
	return p, true
}

// healPlan completa cada campo faltante o corto desde la tabla de la urgencia,
// preservando tal cual lo que el generador sí mandó. Devuelve los campos tocados.
func healPlan(raw *rawOutcome) (Plan, []string) {
	var healed []string

	u, ok := ParseUrgency(raw.Urgency)
	if !ok {
		u = UrgencyMonitor24h
		healed = append(healed, "urgency")
	}
	def := defaultsFor(u)

	p := Plan{
		Urgency:    u,
		Headline:   strings.TrimSpace(raw.Headline),
		Disclaimer: strings.TrimSpace(raw.Disclaimer),
	}
	if p.Headline == "" {
		p.Headline = def.Headline
		healed = append(healed, "headline")
	}
	if p.Disclaimer == "" {
		p.Disclaimer = def.Disclaimer
		healed = append(healed, "disclaimer")
	}

	heal := func(name string, in []string, defaults []string, min, max int) []string {
		list := cleanList(in, max)
		switch {
		case len(list) == 0:
			healed = append(healed, name)
			return defaults
		case len(list) < min:
			healed = append(healed, name)
			return topUp(list, defaults, min)
		default:
			return list
		}
	}
	p.Why = heal("why", raw.Why, def.Why, MinPlanWhy, MaxPlanWhy)
	p.DoNow = heal("do_now", raw.DoNow, def.DoNow, MinPlanDoNow, MaxPlanDoNow)
	p.Avoid = heal("avoid", raw.Avoid, def.Avoid, MinPlanAvoid, MaxPlanAvoid)
	p.RedFlags = heal("red_flags", raw.RedFlags, def.RedFlags, MinPlanRedFlags, MaxPlanRedFlags)

	return p, healed
}

func planOutcome(p Plan) Outcome {
	return Outcome{Type: ResultPlan, Plan: &p}
}
