package profile

import (
	"fmt"
	"strings"
)

const Unknown = "Unknown"

const (
	MaxAgeYears  = 50
	MaxAgeMonths = 11
)

// Profile es la forma canónica del perfil de mascota que manda el cliente.
// Los campos de texto nunca quedan vacíos: si faltan valen "Unknown".
type Profile struct {
	Name    string
	Species string
	Breed   string
	Sex     string

	// nil = no informado. Si vienen, ya están dentro de rango.
	AgeYears  *int
	AgeMonths *int

	Weight  string
	City    string
	Country string
}

// AgeText arma la edad legible: "3 years 2 months", "1 year", "5 months" o "Unknown".
func (p Profile) AgeText() string {
	if p.AgeYears == nil && p.AgeMonths == nil {
		return Unknown
	}

	y, m := 0, 0
	if p.AgeYears != nil {
		y = *p.AgeYears
	}
	if p.AgeMonths != nil {
		m = *p.AgeMonths
	}

	switch {
	case y > 0 && m > 0:
		return plural(y, "year") + " " + plural(m, "month")
	case y > 0:
		return plural(y, "year")
	default:
		return plural(m, "month")
	}
}

// Location combina ciudad y país, omitiendo lo que sea Unknown.
func (p Profile) Location() string {
	parts := make([]string, 0, 2)
	if p.City != Unknown {
		parts = append(parts, p.City)
	}
	if p.Country != Unknown {
		parts = append(parts, p.Country)
	}
	if len(parts) == 0 {
		return Unknown
	}
	return strings.Join(parts, ", ")
}

// Render devuelve el bloque de perfil que va en los prompts. Determinístico.
func (p Profile) Render() string {
	var b strings.Builder
	b.WriteString("Pet profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Species: %s\n", p.Species)
	fmt.Fprintf(&b, "- Breed: %s\n", p.Breed)
	fmt.Fprintf(&b, "- Sex: %s\n", p.Sex)
	fmt.Fprintf(&b, "- Age: %s\n", p.AgeText())
	fmt.Fprintf(&b, "- Weight: %s\n", p.Weight)
	fmt.Fprintf(&b, "- Location: %s", p.Location())
	return b.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
