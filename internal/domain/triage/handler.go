package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-symptom-triage/internal/domain/profile"
	"pet-symptom-triage/internal/gateway"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/triage", func(tr chi.Router) {
		tr.Post("/tips", tipsHandler(svc))
		tr.Post("/confirm", confirmHandler(svc))
		tr.Post("/plan", planHandler(svc))
	})
}

// baseRequest: campos comunes a las tres etapas.
// El perfil llega como objeto libre; "pet" y "notes" son alias aceptados.
type baseRequest struct {
	Profile  map[string]any `json:"profile"`
	Pet      map[string]any `json:"pet,omitempty"`
	Symptoms string         `json:"symptoms"`
	Notes    string         `json:"notes,omitempty"`
}

func (b baseRequest) profile() profile.Profile {
	if b.Profile == nil {
		return profile.Normalize(b.Pet)
	}
	return profile.Normalize(b.Profile)
}

func (b baseRequest) symptoms() string {
	if strings.TrimSpace(b.Symptoms) != "" {
		return b.Symptoms
	}
	return b.Notes
}

// tipsRequest es el cuerpo de la etapa 1.
type tipsRequest struct {
	baseRequest
}

// confirmRequest es el cuerpo de la etapa 2. Alcanza con el título o el id del issue.
type confirmRequest struct {
	baseRequest
	SelectedIssueTitle string `json:"selected_issue_title"`
	SelectedIssueID    string `json:"selected_issue_id"`
}

// planRequest es el cuerpo de la etapa 3. El cliente reenvía todo el historial.
type planRequest struct {
	baseRequest
	SelectedIssueTitle string             `json:"selected_issue_title"`
	Round              *int               `json:"round"` // ausente = 1
	AskedQuestions     []FollowUpQuestion `json:"asked_questions"`
	PreviousAnswers    map[string]any     `json:"previous_answers"`
	Answers            map[string]any     `json:"answers"`
}

// planResponse aplana el outcome: result_type más los campos de la forma elegida.
type planResponse struct {
	ResultType ResultType `json:"result_type" enums:"PLAN,NEED_MORE_INFO"`

	Urgency    Urgency  `json:"urgency,omitempty" enums:"HOME,MONITOR_24H,VET_NOW"`
	Headline   string   `json:"headline,omitempty"`
	Why        []string `json:"why,omitempty"`
	DoNow      []string `json:"do_now,omitempty"`
	Avoid      []string `json:"avoid,omitempty"`
	RedFlags   []string `json:"red_flags,omitempty"`
	Disclaimer string   `json:"disclaimer,omitempty"`

	SelectedIssueTitle string             `json:"selected_issue_title,omitempty"`
	Reason             string             `json:"reason,omitempty"`
	Questions          []FollowUpQuestion `json:"questions,omitempty"`
}

// tipsHandler godoc
// @Summary Posibles causas de los síntomas
// @Description Devuelve entre 3 y 5 posibles causas ordenadas por probabilidad, con acciones para hoy y señales a vigilar. Nunca es un diagnóstico. `symptoms` también se acepta como `notes`.
// @Tags triage
// @Accept json
// @Produce json
// @Param payload body tipsRequest true "Perfil de la mascota y descripción de los síntomas"
// @Success 200 {object} TipsResult
// @Failure 400 {string} string "invalid json / symptoms are required"
// @Failure 413 {string} string "request body too large"
// @Failure 502 {string} string "malformed generator output"
// @Failure 503 {string} string "upstream generator unavailable"
// @Router /triage/tips [post]
func tipsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tipsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		res, err := svc.Tips(r.Context(), TipsInput{
			Profile:  req.profile(),
			Symptoms: req.symptoms(),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// confirmHandler godoc
// @Summary Preguntas de seguimiento
// @Description Para el issue elegido (por título o id), devuelve de 2 a 4 preguntas cortas que ayudan a estimar la urgencia.
// @Tags triage
// @Accept json
// @Produce json
// @Param payload body confirmRequest true "Perfil, síntomas e issue elegido"
// @Success 200 {object} ConfirmResult
// @Failure 400 {string} string "invalid json / symptoms are required / selected issue is required"
// @Failure 413 {string} string "request body too large"
// @Failure 502 {string} string "malformed generator output"
// @Failure 503 {string} string "upstream generator unavailable"
// @Router /triage/confirm [post]
func confirmHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmRequest
		if !decodeBody(w, r, &req) {
			return
		}

		res, err := svc.Confirm(r.Context(), ConfirmInput{
			Profile:            req.profile(),
			Symptoms:           req.symptoms(),
			SelectedIssueTitle: req.SelectedIssueTitle,
			SelectedIssueID:    req.SelectedIssueID,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// planHandler godoc
// @Summary Plan de acción o más preguntas
// @Description Devuelve un PLAN (HOME, MONITOR_24H o VET_NOW) o, solo en la ronda 1, NEED_MORE_INFO con 1 a 3 preguntas nuevas. En la ronda 2 la respuesta es siempre un PLAN completo. El servidor no guarda estado: el cliente reenvía preguntas y respuestas previas.
// @Tags triage
// @Accept json
// @Produce json
// @Param payload body planRequest true "Estado de la conversación; round es 1 o 2"
// @Success 200 {object} planResponse
// @Failure 400 {string} string "invalid json / round must be 1 or 2 / reglas de input"
// @Failure 413 {string} string "request body too large"
// @Failure 503 {string} string "upstream generator unavailable (solo ronda 1)"
// @Router /triage/plan [post]
func planHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req planRequest
		if !decodeBody(w, r, &req) {
			return
		}

		round := MinRound
		if req.Round != nil {
			round = *req.Round
		}

		res, err := svc.Plan(r.Context(), PlanInput{
			Profile:            req.profile(),
			Symptoms:           req.symptoms(),
			SelectedIssueTitle: req.SelectedIssueTitle,
			Round:              round,
			AskedQuestions:     req.AskedQuestions,
			PreviousAnswers:    req.PreviousAnswers,
			Answers:            req.Answers,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPlanResponse(res.Outcome))
	}
}

func toPlanResponse(o Outcome) planResponse {
	out := planResponse{ResultType: o.Type}
	if p := o.Plan; p != nil {
		out.Urgency = p.Urgency
		out.Headline = p.Headline
		out.Why = p.Why
		out.DoNow = p.DoNow
		out.Avoid = p.Avoid
		out.RedFlags = p.RedFlags
		out.Disclaimer = p.Disclaimer
	}
	if n := o.NeedMoreInfo; n != nil {
		out.SelectedIssueTitle = n.SelectedIssueTitle
		out.Reason = n.Reason
		out.Questions = n.Questions
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError mapea los errores de servicio a status HTTP.
// Nunca expone el detalle del upstream, solo la categoría.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "), http.StatusBadRequest)
	case errors.Is(err, gateway.ErrUpstreamUnavailable):
		http.Error(w, gateway.ErrUpstreamUnavailable.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, gateway.ErrMalformedOutput):
		http.Error(w, gateway.ErrMalformedOutput.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
