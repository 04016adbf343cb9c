package momfitdomain

import (
	"fmt"
	"strings"
)

// Symptom is a code reported through the daily symptom check.
type Symptom string

const (
	SymptomBellyTightening Symptom = "BELLY_TIGHTENING"
	SymptomPelvicPain      Symptom = "PELVIC_PAIN"
	SymptomBackPain        Symptom = "BACK_PAIN"
	SymptomLegSwelling     Symptom = "LEG_SWELLING"
	SymptomNumbness        Symptom = "NUMBNESS"
	SymptomIndigestion     Symptom = "INDIGESTION"
	SymptomInsomnia        Symptom = "INSOMNIA"
	SymptomFatigue         Symptom = "FATIGUE"
)

// AllSymptoms lists the codes in display order.
var AllSymptoms = []Symptom{
	SymptomBellyTightening,
	SymptomPelvicPain,
	SymptomBackPain,
	SymptomLegSwelling,
	SymptomNumbness,
	SymptomIndigestion,
	SymptomInsomnia,
	SymptomFatigue,
}

// ParseSymptom accepts a code in any case, with dashes or underscores.
func ParseSymptom(s string) (Symptom, error) {
	code := Symptom(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	for _, known := range AllSymptoms {
		if code == known {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown symptom %q", s)
}

// SymptomReport is the wire form of a symptom submission.
type SymptomReport struct {
	Symptoms []Symptom `json:"symptoms"`
}
