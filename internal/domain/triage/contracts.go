package triage

import "pet-symptom-triage/internal/ports/generator"

func stringEnum[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func questionSchema() *generator.Schema {
	return generator.Object(map[string]*generator.Schema{
		"id":   generator.String("short unique id"),
		"text": generator.String("question shown to the owner"),
		"type": generator.Enum("answer type", stringEnum([]QuestionType{
			QuestionSingleChoice, QuestionYesNo, QuestionShortText,
		})...),
		"options": generator.ArrayOf(generator.String("choice"), 0, MaxQuestionOptions),
	}, "id", "text", "type", "options")
}

var tipsContract = &generator.Contract{
	Name:        string(StageTips),
	Description: "Ranked possible concerns for the described pet symptoms",
	Schema: generator.Object(map[string]*generator.Schema{
		"title": generator.String("short heading"),
		"intro": generator.String("one calm sentence"),
		"issues": generator.ArrayOf(generator.Object(map[string]*generator.Schema{
			"id":            generator.String("short unique id"),
			"title":         generator.String(`starts with "Possible"`),
			"rank":          generator.Integer("1 = most likely", 1, MaxIssues),
			"concern_level": generator.Enum("concern tier", stringEnum(concernLevels)...),
			"why":           generator.ArrayOf(generator.String("reason"), 1, MaxIssueWhy),
			"do_today":      generator.ArrayOf(generator.String("action"), 2, MaxIssueDoToday),
			"watch":         generator.ArrayOf(generator.String("sign to watch"), 2, MaxIssueWatch),
		}, "id", "title", "rank", "concern_level", "why", "do_today", "watch"), MinIssues, MaxIssues),
		"disclaimer": generator.String("not a diagnosis"),
	}, "title", "intro", "issues", "disclaimer"),
}

var confirmContract = &generator.Contract{
	Name:        string(StageConfirm),
	Description: "Follow-up questions to narrow urgency for the selected concern",
	Schema: generator.Object(map[string]*generator.Schema{
		"selected_issue_title": generator.String("the selected concern"),
		"questions":            generator.ArrayOf(questionSchema(), MinConfirmQuestions, MaxConfirmQuestions),
	}, "selected_issue_title", "questions"),
}

// planContract admite las dos formas del outcome en el mismo objeto:
// el generador elige result_type y completa los campos de esa forma.
var planContract = &generator.Contract{
	Name:        string(StagePlan),
	Description: "Either a PLAN or a NEED_MORE_INFO outcome",
	Schema: generator.Object(map[string]*generator.Schema{
		"result_type": generator.Enum("outcome kind", string(ResultPlan), string(ResultNeedMoreInfo)),

		"urgency": generator.Enum("urgency bucket", stringEnum([]Urgency{
			UrgencyHome, UrgencyMonitor24h, UrgencyVetNow,
		})...),
		"headline":   generator.String("one calm sentence"),
		"why":        generator.ArrayOf(generator.String("reason"), MinPlanWhy, MaxPlanWhy),
		"do_now":     generator.ArrayOf(generator.String("action"), MinPlanDoNow, MaxPlanDoNow),
		"avoid":      generator.ArrayOf(generator.String("thing to avoid"), MinPlanAvoid, MaxPlanAvoid),
		"red_flags":  generator.ArrayOf(generator.String("warning sign"), MinPlanRedFlags, MaxPlanRedFlags),
		"disclaimer": generator.String("not a diagnosis"),

		"selected_issue_title": generator.String("the selected concern"),
		"reason":               generator.String("why more information is needed"),
		"questions":            generator.ArrayOf(questionSchema(), MinFollowUpQuestions, MaxFollowUpQuestions),
	}, "result_type"),
}
