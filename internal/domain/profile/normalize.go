package profile

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize canoniza un perfil con forma arbitraria (lo que mande el cliente).
// Acepta variantes históricas de nombres (camelCase / snake_case) y nunca falla:
// lo que falte o no se entienda queda como Unknown / nil.
func Normalize(raw map[string]any) Profile {
	p := Profile{
		Name:    textOr(raw, "name", "petName", "pet_name"),
		Species: strings.ToLower(textOr(raw, "species", "type", "animal")),
		Breed:   textOr(raw, "breed"),
		Sex:     strings.ToLower(textOr(raw, "sex", "gender")),
		Weight:  weightText(raw),
		City:    textOr(raw, "city"),
		Country: textOr(raw, "country"),
	}
	if p.Species == strings.ToLower(Unknown) {
		p.Species = Unknown
	}
	if p.Sex == strings.ToLower(Unknown) {
		p.Sex = Unknown
	}

	p.AgeYears, p.AgeMonths = ages(raw)

	// "location" puede venir como texto libre o como objeto {city, country}.
	if loc, ok := raw["location"]; ok {
		switch v := loc.(type) {
		case map[string]any:
			if p.City == Unknown {
				p.City = textOr(v, "city")
			}
			if p.Country == Unknown {
				p.Country = textOr(v, "country")
			}
		default:
			if p.City == Unknown {
				p.City = textOr(raw, "location")
			}
		}
	}

	return p
}

func ages(raw map[string]any) (*int, *int) {
	var (
		years, months     float64
		hasYears, hasMons bool
	)

	if v, ok := number(raw, "ageYears", "age_years", "years"); ok {
		years, hasYears = v, true
	}
	if v, ok := number(raw, "ageMonths", "age_months", "months"); ok {
		months, hasMons = v, true
	}

	// "age" es el campo más viejo: número (años) u objeto {years, months}.
	if age, ok := raw["age"]; ok {
		if obj, isObj := age.(map[string]any); isObj {
			if !hasYears {
				years, hasYears = number(obj, "years", "ageYears", "age_years")
			}
			if !hasMons {
				months, hasMons = number(obj, "months", "ageMonths", "age_months")
			}
		} else if !hasYears {
			years, hasYears = number(raw, "age")
		}
	}

	var y, m *int
	if hasYears {
		v := clampAge(years, MaxAgeYears)
		y = &v
	}
	if hasMons {
		v := clampAge(months, MaxAgeMonths)
		m = &v
	}
	return y, m
}

func weightText(raw map[string]any) string {
	type variant struct {
		key  string
		unit string
	}
	for _, k := range []variant{
		{"weight", ""},
		{"weightKg", "kg"},
		{"weight_kg", "kg"},
		{"weightLbs", "lb"},
		{"weight_lbs", "lb"},
	} {
		v, ok := raw[k.key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			// "12" con key de unidad => "12 kg"; "12 lbs" queda tal cual.
			if _, err := strconv.ParseFloat(s, 64); err == nil && k.unit != "" {
				return s + " " + k.unit
			}
			return s
		}
		n, ok := toFloat(v)
		if !ok || n <= 0 {
			continue
		}
		txt := strconv.FormatFloat(n, 'f', -1, 64)
		if k.unit != "" {
			txt += " " + k.unit
		}
		return txt
	}
	return Unknown
}

func textOr(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64, int, int64, json.Number:
			if n, ok := toFloat(t); ok {
				return strconv.FormatFloat(n, 'f', -1, 64)
			}
		}
	}
	return Unknown
}

func number(raw map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if n, ok := toFloat(v); ok {
			return n, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// clampAge recorta en float antes de convertir para no desbordar int.
func clampAge(v float64, hi int) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(hi) {
		return hi
	}
	return int(math.Floor(v))
}
