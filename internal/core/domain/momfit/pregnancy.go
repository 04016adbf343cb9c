package momfitdomain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format the backend accepts.
const DateLayout = "2006-01-02"

// FitnessLevel describes how active the user was before pregnancy.
type FitnessLevel string

const (
	FitnessActive    FitnessLevel = "ACTIVE"
	FitnessSedentary FitnessLevel = "SEDENTARY"
)

// ParseFitnessLevel accepts a level name in any case.
func ParseFitnessLevel(s string) (FitnessLevel, error) {
	switch lvl := FitnessLevel(strings.ToUpper(strings.TrimSpace(s))); lvl {
	case FitnessActive, FitnessSedentary:
		return lvl, nil
	default:
		return "", fmt.Errorf("unknown fitness level %q (want ACTIVE or SEDENTARY)", s)
	}
}

// Condition is a pregnancy-related health condition code.
type Condition string

const (
	ConditionHypertension        Condition = "HYPERTENSION"
	ConditionThyroidDisease      Condition = "THYROID_DISEASE"
	ConditionGestationalDiabetes Condition = "GESTATIONAL_DIABETES"
	ConditionAnemia              Condition = "ANEMIA"
	ConditionBMIRisk             Condition = "BMI_RISK"
)

var knownConditions = map[Condition]bool{
	ConditionHypertension:        true,
	ConditionThyroidDisease:      true,
	ConditionGestationalDiabetes: true,
	ConditionAnemia:              true,
	ConditionBMIRisk:             true,
}

// ParseCondition accepts a condition code in any case.
func ParseCondition(s string) (Condition, error) {
	c := Condition(strings.ToUpper(strings.TrimSpace(s)))
	if !knownConditions[c] {
		return "", fmt.Errorf("unknown condition %q", s)
	}
	return c, nil
}

// PregnancyRegistration is what the user enters during onboarding.
type PregnancyRegistration struct {
	LastMenstrualPeriod string
	Height              float64
	PreWeight           float64
	IsMultiple          bool
	FitnessLevel        FitnessLevel
	Conditions          []Condition
}

// Validate checks the registration before it is sent.
func (r PregnancyRegistration) Validate() error {
	if _, err := time.Parse(DateLayout, r.LastMenstrualPeriod); err != nil {
		return fmt.Errorf("last menstrual period must be a %s date: %w", DateLayout, err)
	}
	if r.Height <= 0 {
		return fmt.Errorf("height must be positive")
	}
	if r.PreWeight <= 0 {
		return fmt.Errorf("pre-pregnancy weight must be positive")
	}
	if _, err := ParseFitnessLevel(string(r.FitnessLevel)); err != nil {
		return err
	}
	for _, c := range r.Conditions {
		if !knownConditions[c] {
			return fmt.Errorf("unknown condition %q", c)
		}
	}
	return nil
}

// RegistrationPayload is the wire form of a registration.
type RegistrationPayload struct {
	LastMenstrualPeriod string       `json:"last_menstrual_period"`
	Height              float64      `json:"height"`
	PreWeight           float64      `json:"pre_weight"`
	IsMultiple          bool         `json:"is_multiple"`
	FitnessLevel        FitnessLevel `json:"fitness_level"`
	Conditions          []Condition  `json:"conditions"`
}

// Payload converts r to its wire form. Conditions is never null.
func (r PregnancyRegistration) Payload() RegistrationPayload {
	conditions := r.Conditions
	if conditions == nil {
		conditions = []Condition{}
	}
	return RegistrationPayload{
		LastMenstrualPeriod: r.LastMenstrualPeriod,
		Height:              r.Height,
		PreWeight:           r.PreWeight,
		IsMultiple:          r.IsMultiple,
		FitnessLevel:        r.FitnessLevel,
		Conditions:          conditions,
	}
}

// PregnancyInfo is the backend's view of a registered pregnancy.
type PregnancyInfo struct {
	PregnancyID         int64        `json:"pregnancy_id"`
	UserID              string       `json:"user_id"`
	LastMenstrualPeriod string       `json:"last_menstrual_period"`
	PregnancyStartDate  string       `json:"pregnancy_start_date"`
	DueDate             string       `json:"due_date"`
	IsMultiple          bool         `json:"is_multiple"`
	Height              float64      `json:"height"`
	PreWeight           float64      `json:"pre_weight"`
	BMI                 float64      `json:"bmi"`
	FitnessLevel        FitnessLevel `json:"fitness_level"`
	MaxAllowedBPM       int          `json:"max_allowed_bpm"`
	Conditions          []Condition  `json:"conditions"`
	CreatedAt           string       `json:"created_at"`
	UpdatedAt           string       `json:"updated_at"`
}

// WeekOn returns the completed gestational week on day, counted from the
// last menstrual period. It returns 0 when the date cannot be parsed.
func (p PregnancyInfo) WeekOn(day time.Time) int {
	lmp, err := time.Parse(DateLayout, p.LastMenstrualPeriod)
	if err != nil || day.Before(lmp) {
		return 0
	}
	return int(day.Sub(lmp).Hours() / 24 / 7)
}
