package triage

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fallbackQuestionText = "Is there anything else about how your pet is doing that you would like to share?"

// Reemplazos para preguntas sin texto, en orden. Cada uno se usa una sola vez.
var fallbackQuestionTexts = []string{
	fallbackQuestionText,
	"Has your pet's appetite or energy changed since this started?",
	"When did you first notice these signs?",
}

// rawQuestion es la pregunta tal como la manda el generador, antes de sanear.
type rawQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// looseList decodifica una lista de strings tolerando lo que los modelos suelen
// mandar mal: un string suelto cuenta como lista de uno, los items que no son
// string se ignoran y cualquier otro tipo deja la lista vacía.
type looseList []string

func (l *looseList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err == nil {
		out := make(looseList, 0, len(items))
		for _, it := range items {
			var s *string
			if json.Unmarshal(it, &s) == nil && s != nil {
				out = append(out, *s)
			}
		}
		*l = out
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = looseList{s}
		return nil
	}
	*l = nil
	return nil
}

// cleanList recorta, descarta vacíos y duplicados (case-insensitive) y trunca a max.
// Nunca devuelve nil.
func cleanList(in []string, max int) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// sanitizeQuestions garantiza id/text/type no vacíos en cada pregunta.
// Se descartan objetos totalmente vacíos y preguntas con texto repetido
// (case-insensitive). Sin texto se usa el siguiente reemplazo libre; agotados, se descarta.
// idPrefix se usa para sintetizar ids: "q1", "q2"...
func sanitizeQuestions(in []rawQuestion, max int, idPrefix string) []FollowUpQuestion {
	out := make([]FollowUpQuestion, 0, len(in))
	usedIDs := map[string]struct{}{}
	usedTexts := map[string]struct{}{}

	for _, rq := range in {
		id := strings.TrimSpace(rq.ID)
		text := strings.TrimSpace(rq.Text)
		opts := cleanList(rq.Options, MaxQuestionOptions)
		if id == "" && text == "" && len(opts) == 0 {
			continue
		}

		if text == "" {
			for _, f := range fallbackQuestionTexts {
				if _, used := usedTexts[strings.ToLower(f)]; !used {
					text = f
					break
				}
			}
			if text == "" {
				continue
			}
		}
		if _, dup := usedTexts[strings.ToLower(text)]; dup {
			continue
		}
		usedTexts[strings.ToLower(text)] = struct{}{}

		qt, ok := ParseQuestionType(rq.Type)
		if !ok {
			qt = QuestionShortText
			if len(opts) >= 2 {
				qt = QuestionSingleChoice
			}
		}
		switch qt {
		case QuestionSingleChoice:
			if len(opts) < 2 {
				qt, opts = QuestionShortText, []string{}
			}
		default:
			opts = []string{}
		}

		n := len(out) + 1
		if id == "" {
			id = fmt.Sprintf("%s%d", idPrefix, n)
		}
		for base, i := id, 2; ; i++ {
			if _, dup := usedIDs[id]; !dup {
				break
			}
			id = fmt.Sprintf("%s-%d", base, i)
		}
		usedIDs[id] = struct{}{}

		out = append(out, FollowUpQuestion{ID: id, Text: text, Type: qt, Options: opts})
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// topUp completa list hasta min con items de defaults que no estén ya presentes.
func topUp(list []string, defaults []string, min int) []string {
	if len(list) >= min {
		return list
	}
	out := append([]string{}, list...)
	seen := map[string]struct{}{}
	for _, s := range out {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, d := range defaults {
		if len(out) >= min {
			break
		}
		if _, dup := seen[strings.ToLower(d)]; dup {
			continue
		}
		seen[strings.ToLower(d)] = struct{}{}
		out = append(out, d)
	}
	return out
}
