package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalize_EmptyProfileIsAllUnknown(t *testing.T) {
	p := Normalize(nil)

	assert.Equal(t, Unknown, p.Name)
	assert.Equal(t, Unknown, p.Species)
	assert.Equal(t, Unknown, p.Breed)
	assert.Equal(t, Unknown, p.Sex)
	assert.Equal(t, Unknown, p.Weight)
	assert.Equal(t, Unknown, p.AgeText())
	assert.Equal(t, Unknown, p.Location())
	assert.Nil(t, p.AgeYears)
	assert.Nil(t, p.AgeMonths)
}

func TestNormalize_AgeVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"camel", `{"ageYears": 3, "ageMonths": 2}`, "3 years 2 months"},
		{"snake", `{"age_years": "1", "age_months": 0}`, "1 year"},
		{"months only", `{"age_months": 5}`, "5 months"},
		{"legacy number", `{"age": 7}`, "7 years"},
		{"legacy object", `{"age": {"years": 2, "months": 1}}`, "2 years 1 month"},
		{"clamped high", `{"ageYears": 120, "ageMonths": 30}`, "50 years 11 months"},
		{"clamped negative", `{"ageYears": -2, "ageMonths": -1}`, "0 months"},
		{"garbage", `{"ageYears": "old", "ageMonths": null}`, Unknown},
		{"fraction floors", `{"ageYears": 2.9}`, "2 years"},
		{"explicit beats legacy", `{"ageYears": 4, "age": 9}`, "4 years"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(decode(t, tc.in)).AgeText())
		})
	}
}

func TestNormalize_AgeRangesAreClamped(t *testing.T) {
	p := Normalize(decode(t, `{"ageYears": 99, "ageMonths": 12}`))
	require.NotNil(t, p.AgeYears)
	require.NotNil(t, p.AgeMonths)
	assert.Equal(t, MaxAgeYears, *p.AgeYears)
	assert.Equal(t, MaxAgeMonths, *p.AgeMonths)
}

func TestNormalize_FieldAliases(t *testing.T) {
	p := Normalize(decode(t, `{
		"petName": " Milo ",
		"type": "Dog",
		"gender": "Male",
		"breed": "",
		"weight_kg": 12.5,
		"location": {"city": "Lima", "country": "Peru"}
	}`))

	assert.Equal(t, "Milo", p.Name)
	assert.Equal(t, "dog", p.Species)
	assert.Equal(t, "male", p.Sex)
	assert.Equal(t, Unknown, p.Breed)
	assert.Equal(t, "12.5 kg", p.Weight)
	assert.Equal(t, "Lima, Peru", p.Location())
}

func TestNormalize_WeightVariants(t *testing.T) {
	assert.Equal(t, "8 lbs", Normalize(decode(t, `{"weight": "8 lbs"}`)).Weight)
	assert.Equal(t, "20 lb", Normalize(decode(t, `{"weightLbs": "20"}`)).Weight)
	assert.Equal(t, "4", Normalize(decode(t, `{"weight": 4}`)).Weight)
	assert.Equal(t, Unknown, Normalize(decode(t, `{"weight": 0}`)).Weight)
}

func TestNormalize_LocationTextFallback(t *testing.T) {
	p := Normalize(decode(t, `{"location": "Madrid", "country": "Spain"}`))
	assert.Equal(t, "Madrid, Spain", p.Location())
}

func TestRender_IsDeterministic(t *testing.T) {
	p := Normalize(decode(t, `{"species": "dog", "ageYears": 3}`))

	want := "Pet profile:\n" +
		"- Name: Unknown\n" +
		"- Species: dog\n" +
		"- Breed: Unknown\n" +
		"- Sex: Unknown\n" +
		"- Age: 3 years\n" +
		"- Weight: Unknown\n" +
		"- Location: Unknown"
	assert.Equal(t, want, p.Render())
	assert.Equal(t, p.Render(), Normalize(decode(t, `{"species": "dog", "ageYears": 3}`)).Render())
}
