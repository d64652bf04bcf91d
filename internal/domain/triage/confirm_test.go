package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-symptom-triage/internal/adapters/generator/scripted"
	"pet-symptom-triage/internal/gateway"
)

func TestConfirm_ReturnsSanitizedQuestions(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("confirm", scripted.Reply{Text: `{
		"selected_issue_title": "Something else",
		"questions": [
			{"id": "", "text": "How long has it been going on?", "type": "short_text", "options": ["ignored"]},
			{"id": "q9", "text": "", "type": "yes_no", "options": []},
			{"id": "q3", "text": "Which best describes the vomit?", "type": "single_choice", "options": ["Food", "Foam", "Food", " "]},
			{"id": "q4", "text": "Pick one", "type": "single_choice", "options": ["only"]},
			{"id": "q5", "text": "Any blood?", "type": "YES-NO", "options": []}
		]
	}`})

	res, err := env.svc.Confirm(context.Background(), ConfirmInput{
		Profile:            dogProfile(),
		Symptoms:           "vomiting",
		SelectedIssueTitle: "Possible dietary upset",
	})
	require.NoError(t, err)

	assert.Equal(t, "Possible dietary upset", res.SelectedIssueTitle)
	require.Len(t, res.Questions, MaxConfirmQuestions)

	assert.Equal(t, "q1", res.Questions[0].ID)
	assert.Empty(t, res.Questions[0].Options)
	assert.NotNil(t, res.Questions[0].Options)

	assert.Equal(t, "q9", res.Questions[1].ID)
	assert.Equal(t, fallbackQuestionText, res.Questions[1].Text)

	assert.Equal(t, QuestionSingleChoice, res.Questions[2].Type)
	assert.Equal(t, []string{"Food", "Foam"}, res.Questions[2].Options)

	assert.Equal(t, QuestionShortText, res.Questions[3].Type)
}

func TestConfirm_UsesIssueIDWhenNoTitle(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("confirm", scripted.Reply{Text: `{"selected_issue_title": "", "questions": [
		{"id": "a", "text": "One?", "type": "yes_no", "options": []},
		{"id": "b", "text": "Two?", "type": "yes_no", "options": []}
	]}`})

	res, err := env.svc.Confirm(context.Background(), ConfirmInput{
		Profile:         dogProfile(),
		Symptoms:        "vomiting",
		SelectedIssueID: "issue-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "id issue-2", res.SelectedIssueTitle)
	assert.Contains(t, env.gen.Calls()[0].User, "Selected concern: id issue-2")
}

func TestConfirm_InvalidInput(t *testing.T) {
	cases := map[string]ConfirmInput{
		"blank symptoms": {Symptoms: "  ", SelectedIssueTitle: "Possible x"},
		"no issue":       {Symptoms: "vomiting", SelectedIssueTitle: " ", SelectedIssueID: ""},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.svc.Confirm(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, env.gen.Calls())
		})
	}
}

func TestConfirm_FewerThanTwoQuestionsIsMalformed(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("confirm", scripted.Reply{Text: `{"selected_issue_title": "x", "questions": [
		{"id": "a", "text": "Only one?", "type": "yes_no", "options": []},
		{}
	]}`})

	_, err := env.svc.Confirm(context.Background(), ConfirmInput{
		Profile: dogProfile(), Symptoms: "vomiting", SelectedIssueTitle: "Possible x",
	})
	require.ErrorIs(t, err, gateway.ErrMalformedOutput)
}

func TestConfirm_UpstreamFailureSurfaces(t *testing.T) {
	env := newTestEnv(t)
	env.gen.Script("confirm",
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
		scripted.Reply{Err: scripted.ErrScriptedUpstream},
	)

	_, err := env.svc.Confirm(context.Background(), ConfirmInput{
		Profile: dogProfile(), Symptoms: "vomiting", SelectedIssueTitle: "Possible x",
	})
	require.ErrorIs(t, err, gateway.ErrUpstreamUnavailable)
}
