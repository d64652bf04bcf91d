package triage

import "pet-symptom-triage/internal/domain/profile"

// Límites de los contratos. Se usan tanto para los schemas como para sanear.
const (
	MinIssues = 3
	MaxIssues = 5

	MinIssueWhy     = 1
	MaxIssueWhy     = 3
	MinIssueDoToday = 2
	MaxIssueDoToday = 4
	MinIssueWatch   = 2
	MaxIssueWatch   = 4

	MinConfirmQuestions = 2
	MaxConfirmQuestions = 4

	MinFollowUpQuestions = 1
	MaxFollowUpQuestions = 3
	MaxQuestionOptions   = 6

	MinPlanWhy      = 2
	MaxPlanWhy      = 4
	MinPlanDoNow    = 3
	MaxPlanDoNow    = 6
	MinPlanAvoid    = 2
	MaxPlanAvoid    = 4
	MinPlanRedFlags = 3
	MaxPlanRedFlags = 6

	MinRound = 1
	MaxRound = 2
)

// Issue es una posible causa (nunca un diagnóstico) ordenada por probabilidad.
type Issue struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Rank         int          `json:"rank"`
	ConcernLevel ConcernLevel `json:"concern_level"`
	Why          []string     `json:"why"`
	DoToday      []string     `json:"do_today"`
	Watch        []string     `json:"watch"`
}

type TipsResult struct {
	Title      string  `json:"title"`
	Intro      string  `json:"intro"`
	Issues     []Issue `json:"issues"`
	Disclaimer string  `json:"disclaimer"`
}

type FollowUpQuestion struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options"`
}

type ConfirmResult struct {
	SelectedIssueTitle string             `json:"selected_issue_title"`
	Questions          []FollowUpQuestion `json:"questions"`
}

type Plan struct {
	Urgency    Urgency  `json:"urgency"`
	Headline   string   `json:"headline"`
	Why        []string `json:"why"`
	DoNow      []string `json:"do_now"`
	Avoid      []string `json:"avoid"`
	RedFlags   []string `json:"red_flags"`
	Disclaimer string   `json:"disclaimer"`
}

type NeedMoreInfo struct {
	SelectedIssueTitle string             `json:"selected_issue_title"`
	Reason             string             `json:"reason"`
	Questions          []FollowUpQuestion `json:"questions"`
}

// Outcome es la unión etiquetada que devuelve Plan: exactamente uno de
// Plan / NeedMoreInfo viene seteado, según Type.
type Outcome struct {
	Type         ResultType
	Plan         *Plan
	NeedMoreInfo *NeedMoreInfo
}

// PlanResult agrega al Outcome lo que hizo el enforcer, para logs y auditoría.
type PlanResult struct {
	Outcome Outcome

	// Campos rellenados desde las tablas por urgencia.
	Healed []string
	// true si se descartó la salida del generador y se usó un plan por defecto completo.
	Fallback bool
}

type TipsInput struct {
	Profile  profile.Profile
	Symptoms string
}

type ConfirmInput struct {
	Profile            profile.Profile
	Symptoms           string
	SelectedIssueTitle string
	SelectedIssueID    string
}

// PlanInput lleva todo el estado de conversación: el servidor no guarda nada entre requests.
type PlanInput struct {
	Profile            profile.Profile
	Symptoms           string
	SelectedIssueTitle string
	Round              int
	AskedQuestions     []FollowUpQuestion
	PreviousAnswers    map[string]any
	Answers            map[string]any
}
