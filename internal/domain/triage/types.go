package triage

import "strings"

// Stage identifica la etapa del pipeline. También es el nombre del contrato
// que viaja al generador y la etiqueta de métricas.
type Stage string

const (
	StageTips    Stage = "tips"
	StageConfirm Stage = "confirm"
	StagePlan    Stage = "plan"
)

// ConcernLevel es ordenado: mild < moderate < somewhat_concerning < severe < urgent.
type ConcernLevel string

const (
	ConcernMild               ConcernLevel = "mild"
	ConcernModerate           ConcernLevel = "moderate"
	ConcernSomewhatConcerning ConcernLevel = "somewhat_concerning"
	ConcernSevere             ConcernLevel = "severe"
	ConcernUrgent             ConcernLevel = "urgent"
)

var concernLevels = []ConcernLevel{
	ConcernMild,
	ConcernModerate,
	ConcernSomewhatConcerning,
	ConcernSevere,
	ConcernUrgent,
}

// Rank devuelve la posición en la escala (0 = mild). -1 si no es válido.
func (c ConcernLevel) Rank() int {
	for i, v := range concernLevels {
		if v == c {
			return i
		}
	}
	return -1
}

// ParseConcernLevel tolera mayúsculas, espacios y guiones ("Somewhat concerning").
func ParseConcernLevel(s string) (ConcernLevel, bool) {
	c := ConcernLevel(canonical(s, "_"))
	return c, c.Rank() >= 0
}

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionYesNo        QuestionType = "yes_no"
	QuestionShortText    QuestionType = "short_text"
)

func ParseQuestionType(s string) (QuestionType, bool) {
	switch q := QuestionType(canonical(s, "_")); q {
	case QuestionSingleChoice, QuestionYesNo, QuestionShortText:
		return q, true
	default:
		return "", false
	}
}

type Urgency string

const (
	UrgencyHome       Urgency = "HOME"
	UrgencyMonitor24h Urgency = "MONITOR_24H"
	UrgencyVetNow     Urgency = "VET_NOW"
)

func ParseUrgency(s string) (Urgency, bool) {
	switch u := Urgency(strings.ToUpper(canonical(s, "_"))); u {
	case UrgencyHome, UrgencyMonitor24h, UrgencyVetNow:
		return u, true
	default:
		return "", false
	}
}

type ResultType string

const (
	ResultPlan         ResultType = "PLAN"
	ResultNeedMoreInfo ResultType = "NEED_MORE_INFO"
)

func ParseResultType(s string) (ResultType, bool) {
	switch r := ResultType(strings.ToUpper(canonical(s, "_"))); r {
	case ResultPlan, ResultNeedMoreInfo:
		return r, true
	default:
		return "", false
	}
}

// canonical: trim + lower + espacios/guiones => sep.
func canonical(s, sep string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", sep, "-", sep).Replace(s)
}
