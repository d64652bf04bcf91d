package triage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"pet-symptom-triage/internal/domain/profile"
)

// Prompt es el par instrucción/contexto de una etapa. Solo texto: no ejecuta nada.
type Prompt struct {
	System string
	User   string
}

// toneRule va en TODAS las instrucciones. Los consumidores dependen de este tono
// para la garantía de "no diagnóstico"; no es un detalle de estilo.
const toneRule = `Tone and safety rules (always apply):
- You are not a veterinarian and you never give a diagnosis.
- Use cautious, non-certain language: "may", "might", "could", "possible".
- Never state that the pet definitely has a condition.
- Stay calm and reassuring; do not use alarming or dramatic wording.
- If something could be an emergency, say calmly that contacting a veterinarian is the safest choice.`

const jsonRule = `Respond only with a JSON object that matches the provided schema. No prose outside JSON.`

func BuildTipsPrompt(p profile.Profile, symptoms string) Prompt {
	system := strings.Join([]string{
		"You help pet owners understand what might be going on with their pet.",
		toneRule,
		fmt.Sprintf(`Task: list between %d and %d distinct possible concerns that could explain the symptoms, ordered by likelihood.
- rank 1 is the most likely; ranks are unique and consecutive.
- Every title must start with "Possible" (for example "Possible stomach upset").
- concern_level is one of: mild, moderate, somewhat_concerning, severe, urgent.
- why: 1 to %d short reasons; do_today: 2 to %d simple actions; watch: 2 to %d signs to watch.
- Include a short title, a one-sentence intro and a disclaimer.`, MinIssues, MaxIssues, MaxIssueWhy, MaxIssueDoToday, MaxIssueWatch),
		jsonRule,
	}, "\n\n")

	user := strings.Join([]string{
		p.Render(),
		symptomsBlock(symptoms),
	}, "\n\n")

	return Prompt{System: system, User: user}
}

func BuildConfirmPrompt(p profile.Profile, symptoms, issueTitle, issueID string) Prompt {
	system := strings.Join([]string{
		"You help pet owners decide how urgently their pet may need care.",
		toneRule,
		fmt.Sprintf(`Task: write between %d and %d short follow-up questions that would help judge how urgent the selected concern might be.
- Each question has a unique id, a text and a type: single_choice, yes_no or short_text.
- Only single_choice questions have options (2 to %d); other types use an empty options list.
- Ask about duration, frequency, eating/drinking, energy and warning signs. Do not repeat what the owner already said.`, MinConfirmQuestions, MaxConfirmQuestions, MaxQuestionOptions),
		jsonRule,
	}, "\n\n")

	user := strings.Join([]string{
		p.Render(),
		symptomsBlock(symptoms),
		"Selected concern: " + issueLabel(issueTitle, issueID),
	}, "\n\n")

	return Prompt{System: system, User: user}
}

func BuildPlanPrompt(in PlanInput) Prompt {
	roundRule := fmt.Sprintf(`- This is round %d of at most %d.`, in.Round, MaxRound)
	if in.Round >= MaxRound {
		roundRule += "\n- This is the final round: you MUST return result_type PLAN. NEED_MORE_INFO is not allowed."
	} else {
		roundRule += fmt.Sprintf("\n- If the answers are not enough to choose safely, you may return result_type NEED_MORE_INFO with %d to %d new questions that were not asked before.", MinFollowUpQuestions, MaxFollowUpQuestions)
	}

	system := strings.Join([]string{
		"You help pet owners choose a safe next step for their pet.",
		toneRule,
		fmt.Sprintf(`Task: decide the next step for the selected concern.
- result_type PLAN: urgency is HOME, MONITOR_24H or VET_NOW; headline; why (%d-%d); do_now (%d-%d); avoid (%d-%d); red_flags (%d-%d); disclaimer.
- result_type NEED_MORE_INFO: selected_issue_title, reason and questions.
%s
- When unsure between two urgency levels, choose the more cautious one.`,
			MinPlanWhy, MaxPlanWhy, MinPlanDoNow, MaxPlanDoNow, MinPlanAvoid, MaxPlanAvoid, MinPlanRedFlags, MaxPlanRedFlags, roundRule),
		jsonRule,
	}, "\n\n")

	user := strings.Join([]string{
		in.Profile.Render(),
		symptomsBlock(in.Symptoms),
		"Selected concern: " + strings.TrimSpace(in.SelectedIssueTitle),
		fmt.Sprintf("Current round: %d", in.Round),
		"Questions asked so far:\n" + renderQuestions(in.AskedQuestions),
		"Previous answers:\n" + renderAnswers(in.PreviousAnswers),
		"Answers this round:\n" + renderAnswers(in.Answers),
	}, "\n\n")

	return Prompt{System: system, User: user}
}

func symptomsBlock(symptoms string) string {
	return "Owner's description of the symptoms:\n" + strings.TrimSpace(symptoms)
}

func issueLabel(title, id string) string {
	title, id = strings.TrimSpace(title), strings.TrimSpace(id)
	switch {
	case title != "" && id != "":
		return fmt.Sprintf("%s (id: %s)", title, id)
	case title != "":
		return title
	default:
		return "id " + id
	}
}

func renderQuestions(qs []FollowUpQuestion) string {
	if len(qs) == 0 {
		return "- none"
	}
	lines := make([]string, 0, len(qs))
	for _, q := range qs {
		line := fmt.Sprintf("- [%s] %s", strings.TrimSpace(q.ID), strings.TrimSpace(q.Text))
		if len(q.Options) > 0 {
			line += " (options: " + strings.Join(q.Options, " / ") + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderAnswers ordena por key para que el mismo estado produzca el mismo texto.
func renderAnswers(m map[string]any) string {
	if len(m) == 0 {
		return "- none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %s", k, answerText(m[k])))
	}
	return strings.Join(lines, "\n")
}

func answerText(v any) string {
	switch t := v.(type) {
	case nil:
		return "(no answer)"
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
		return "(no answer)"
	case bool:
		if t {
			return "yes"
		}
		return "no"
	case []any:
		parts := make([]string, 0, len(t))
		for _, x := range t {
			parts = append(parts, answerText(x))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
