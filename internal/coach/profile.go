// Package coach holds the pure core of the wellness questionnaire: the body
// metrics calculator, the recommendation selector, the 20-day goal projection
// and the questionnaire step state. Nothing in here does I/O.
package coach

import "strings"

// Gender is the self-reported gender used to branch BMR, IBW and content.
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderUnspecified Gender = "unspecified"
)

// DietPreference selects the meal-plan family.
type DietPreference string

const (
	DietVegetarian    DietPreference = "vegetarian"
	DietEggetarian    DietPreference = "eggetarian"
	DietNonVegetarian DietPreference = "non_vegetarian"
)

// LivingSituation describes how much control the user has over their meals.
type LivingSituation string

const (
	LivingWithFamily LivingSituation = "with_family"
	LivingCooksAlone LivingSituation = "cooks_alone"
	LivingPGHostel   LivingSituation = "pg_hostel"
)

// Genders, DietPreferences and LivingSituations list the valid values in
// display order. Used by input validation and the CLI prompts.
var (
	Genders          = []Gender{GenderFemale, GenderMale, GenderUnspecified}
	DietPreferences  = []DietPreference{DietVegetarian, DietEggetarian, DietNonVegetarian}
	LivingSituations = []LivingSituation{LivingWithFamily, LivingCooksAlone, LivingPGHostel}
)

// Input ranges enforced by the form collectors. The metric functions accept
// anything; these only keep answers plausible.
const (
	MinWeightKG = 30.0
	MaxWeightKG = 200.0
	MinHeightCM = 100.0
	MaxHeightCM = 250.0
	MaxAgeYears = 120
	MaxWaistCM  = 250
)

func (g Gender) Valid() bool {
	return g == GenderFemale || g == GenderMale || g == GenderUnspecified
}

func (d DietPreference) Valid() bool {
	return d == DietVegetarian || d == DietEggetarian || d == DietNonVegetarian
}

func (l LivingSituation) Valid() bool {
	return l == LivingWithFamily || l == LivingCooksAlone || l == LivingPGHostel
}

// Label is the display name used in content.
func (d DietPreference) Label() string {
	switch d {
	case DietEggetarian:
		return "Eggetarian"
	case DietNonVegetarian:
		return "Non-Vegetarian"
	default:
		return "Vegetarian"
	}
}

// UserProfile is the questionnaire answer set. AgeYears and WaistCM use 0 for
// "not provided". Range checks belong to whoever collects the input.
type UserProfile struct {
	Name            string          `json:"name"`
	Gender          Gender          `json:"gender"`
	WeightKG        float64         `json:"weight_kg"`
	HeightCM        float64         `json:"height_cm"`
	AgeYears        int             `json:"age_years"`
	WaistCM         int             `json:"waist_cm"`
	DietPreference  DietPreference  `json:"diet_preference"`
	LivingSituation LivingSituation `json:"living_situation"`
}

// FirstName returns the first word of Name, which is how every content block
// addresses the user.
func (p UserProfile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
