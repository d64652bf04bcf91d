package scripted

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-symptom-triage/internal/ports/generator"
)

// Reply es una respuesta encolada: texto crudo o error de transporte.
type Reply struct {
	Text string
	Err  error
}

var ErrScriptedUpstream = errors.New("scripted upstream failure")

// Generator implementa generator.Generator sin red.
// Sirve para desarrollo local (LLM_PROVIDER=scripted) y para tests:
// primero consume las respuestas encoladas por etapa y después cae a las canned.
type Generator struct {
	mu      sync.Mutex
	byStage map[string][]Reply
	calls   []generator.Prompt
}

func New() *Generator {
	return &Generator{byStage: map[string][]Reply{}}
}

func (g *Generator) Name() string { return "scripted" }

// Script encola respuestas para una etapa (tips, confirm, plan).
func (g *Generator) Script(stage string, replies ...Reply) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byStage[stage] = append(g.byStage[stage], replies...)
	return g
}

// Calls devuelve copia de los prompts recibidos (para asserts en tests).
func (g *Generator) Calls() []generator.Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]generator.Prompt, len(g.calls))
	copy(out, g.calls)
	return out
}

func (g *Generator) Generate(ctx context.Context, p generator.Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.mu.Lock()
	g.calls = append(g.calls, p)
	var (
		r      Reply
		queued bool
	)
	if q := g.byStage[p.Stage]; len(q) > 0 {
		r, queued = q[0], true
		g.byStage[p.Stage] = q[1:]
	}
	g.mu.Unlock()

	if queued {
		return r.Text, r.Err
	}
	return canned(p), nil
}

func canned(p generator.Prompt) string {
	switch p.Stage {
	case "tips":
		return cannedTips
	case "confirm":
		return cannedConfirm
	case "plan":
		if strings.Contains(p.User, "Current round: 2") {
			return cannedPlan
		}
		return cannedNeedMoreInfo
	default:
		return `{}`
	}
}

const cannedTips = `{
  "title": "Possible causes to keep in mind",
  "intro": "These are some possibilities that could fit what you described. They are not a diagnosis.",
  "issues": [
    {"id": "diet", "title": "Possible dietary upset", "rank": 1, "concern_level": "mild",
     "why": ["Sudden stomach upset can happen after eating something unusual"],
     "do_today": ["Offer small amounts of water often", "Skip treats for the rest of the day"],
     "watch": ["Repeated vomiting", "Refusing water"]},
    {"id": "gastritis", "title": "Possible mild stomach irritation", "rank": 2, "concern_level": "moderate",
     "why": ["Irritation of the stomach lining may cause vomiting"],
     "do_today": ["Offer a bland meal in small portions", "Keep activity calm"],
     "watch": ["Blood in vomit", "Lethargy"]},
    {"id": "foreign-body", "title": "Possible swallowed object", "rank": 3, "concern_level": "severe",
     "why": ["Objects that are swallowed might block the gut"],
     "do_today": ["Check toys and household items for missing pieces", "Avoid giving food until you see how things go"],
     "watch": ["Swollen or painful belly", "Unable to keep anything down"]}
  ],
  "disclaimer": "This is general guidance, not a diagnosis. Contact a veterinarian if you are worried."
}`

const cannedConfirm = `{
  "selected_issue_title": "Possible dietary upset",
  "questions": [
    {"id": "q1", "text": "How many times has your pet vomited today?", "type": "single_choice", "options": ["Once", "2-3 times", "More than 3 times"]},
    {"id": "q2", "text": "Is your pet drinking water and keeping it down?", "type": "yes_no", "options": []},
    {"id": "q3", "text": "Did your pet eat anything unusual recently?", "type": "short_text", "options": []}
  ]
}`

const cannedNeedMoreInfo = `{
  "result_type": "NEED_MORE_INFO",
  "selected_issue_title": "Possible dietary upset",
  "reason": "A couple more details could help choose the safest next step.",
  "questions": [
    {"id": "r2q1", "text": "Has your pet had diarrhea as well?", "type": "yes_no", "options": []},
    {"id": "r2q2", "text": "How is your pet's energy compared to normal?", "type": "single_choice", "options": ["Normal", "A bit lower", "Much lower"]}
  ]
}`

const cannedPlan = `{
  "result_type": "PLAN",
  "urgency": "MONITOR_24H",
  "headline": "Monitor closely at home for the next 24 hours",
  "why": ["The signs described may fit a mild stomach upset", "Your pet seems to be drinking and alert"],
  "do_now": ["Offer small sips of water often", "Feed a small bland meal later today", "Keep your pet calm and rested"],
  "avoid": ["Rich foods and treats", "Human medications"],
  "red_flags": ["Vomiting more than 3 times", "Blood in vomit or stool", "Weakness or collapse"],
  "disclaimer": "This is general guidance, not a diagnosis. Contact a veterinarian if you are worried."
}`
