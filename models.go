package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"lg/wellness-coach-go-api/internal/coach"
	"lg/wellness-coach-go-api/internal/content"
)

/* ─── Requests ───────────────────────────────────────────────────────── */

// profileRequest is the questionnaire form. Range checks live here, not in
// the coach package, which accepts anything and degrades to absent metrics.
// Name is checked by hand so whitespace-only names are rejected too.
type profileRequest struct {
	Name            string                `json:"name"`
	Gender          coach.Gender          `json:"gender"           binding:"required,oneof=female male unspecified"`
	WeightKG        float64               `json:"weight_kg"        binding:"required,min=30,max=200"`
	HeightCM        float64               `json:"height_cm"        binding:"required,min=100,max=250"`
	AgeYears        int                   `json:"age_years"        binding:"min=0,max=120"`
	WaistCM         int                   `json:"waist_cm"         binding:"min=0,max=250"`
	DietPreference  coach.DietPreference  `json:"diet_preference"  binding:"required,oneof=vegetarian eggetarian non_vegetarian"`
	LivingSituation coach.LivingSituation `json:"living_situation" binding:"required,oneof=with_family cooks_alone pg_hostel"`
}

var errNameRequired = errors.New("name is required")

// validate runs the checks binding tags can't express.
func (r profileRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errNameRequired
	}
	return nil
}

func (r profileRequest) toProfile() coach.UserProfile {
	return coach.UserProfile{
		Name:            strings.TrimSpace(r.Name),
		Gender:          r.Gender,
		WeightKG:        r.WeightKG,
		HeightCM:        r.HeightCM,
		AgeYears:        r.AgeYears,
		WaistCM:         r.WaistCM,
		DietPreference:  r.DietPreference,
		LivingSituation: r.LivingSituation,
	}
}

// fieldLabels maps struct fields to the JSON names clients send.
var fieldLabels = map[string]string{
	"Gender":          "gender",
	"WeightKG":        "weight_kg",
	"HeightCM":        "height_cm",
	"AgeYears":        "age_years",
	"WaistCM":         "waist_cm",
	"DietPreference":  "diet_preference",
	"LivingSituation": "living_situation",
}

// bindingMessage turns a gin binding error into one readable sentence.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	field := fieldLabels[fe.Field()]
	if field == "" {
		field = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return field + " is invalid"
}

/* ─── Responses ──────────────────────────────────────────────────────── */

type recommendationsResponse struct {
	Metrics   coach.HealthMetrics           `json:"metrics"`
	Selection coach.RecommendationSelection `json:"selection"`
}

type planResponse struct {
	Metrics   coach.HealthMetrics           `json:"metrics"`
	Selection coach.RecommendationSelection `json:"selection"`
	Plan      content.Plan                  `json:"plan"`
}

// snapshot is the preview shown right after the form is submitted: BMI,
// category and the 20-day target, before the full plan is unlocked.
type snapshot struct {
	Title         string               `json:"title"`
	FirstName     string               `json:"first_name"`
	BMI           float64              `json:"bmi"`
	Category      coach.BMICategory    `json:"bmi_category"`
	CategoryLabel string               `json:"bmi_category_label"`
	Goal          coach.GoalProjection `json:"goal"`
	GoalText      string               `json:"goal_text"`
}

type sessionSnapshotResponse struct {
	Session  coach.Session `json:"session"`
	Snapshot snapshot      `json:"snapshot"`
}

type sessionPlanResponse struct {
	Session coach.Session `json:"session"`
	planResponse
}

type variantsResponse struct {
	Version     int                `json:"version"`
	FeatureSet  coach.Features     `json:"feature_set"`
	Variants    []coach.VariantKey `json:"variants"`
	MissingKeys []coach.VariantKey `json:"missing_keys"`
}
