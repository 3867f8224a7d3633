package coach

import (
	"fmt"
	"sort"
	"time"
)

// Topic is one section of the rendered plan.
type Topic string

const (
	TopicDiet           Topic = "diet"
	TopicWorkout        Topic = "workout"
	TopicHabits         Topic = "habits"
	TopicGenderInsights Topic = "gender_insights"
	TopicStress         Topic = "stress"
	TopicGoal           Topic = "goal"
)

// Topics lists every topic in display order.
var Topics = []Topic{TopicGoal, TopicDiet, TopicWorkout, TopicHabits, TopicGenderInsights, TopicStress}

// VariantKey identifies a static content block, e.g. "diet/obese/vegetarian".
type VariantKey string

// MetricCard names an advanced metric the UI should surface.
type MetricCard string

const (
	CardBMI             MetricCard = "bmi"
	CardBSA             MetricCard = "bsa"
	CardPonderalIndex   MetricCard = "ponderal_index"
	CardIdealBodyWeight MetricCard = "ideal_body_weight"
	CardBMR             MetricCard = "bmr"
	CardWHtR            MetricCard = "waist_to_height_ratio"
)

// MetricCards lists every card in display order.
var MetricCards = []MetricCard{CardBMI, CardBSA, CardPonderalIndex, CardIdealBodyWeight, CardBMR, CardWHtR}

// Fallback keys used whenever an input falls outside the known variants.
const (
	MaintenanceDietKey VariantKey = "diet/healthy_weight/vegetarian"
	DefaultLivingKey   VariantKey = "living/with_family"
	DefaultGenderKey   VariantKey = "gender/unspecified"
	MaintenanceWorkout VariantKey = "workout/healthy_weight"
	MaintenanceGoalKey VariantKey = "goal/healthy_weight"
	UniversalHabitsKey VariantKey = "habits/universal"
	UniversalStressKey VariantKey = "stress/universal"
)

const (
	workoutLowImpactSufx = "low_impact"
	workoutStrengthSufx  = "strength"
)

// Features toggles the optional parts of a plan. Each named feature set
// corresponds to one generation of the questionnaire.
type Features struct {
	Version             string `json:"version"`
	GenderInsights      bool   `json:"gender_insights"`
	GenderSplitWorkouts bool   `json:"gender_split_workouts"`
	StressManagement    bool   `json:"stress_management"`
	AdvancedMetrics     bool   `json:"advanced_metrics"`
}

// DefaultFeatureSet is the newest generation.
const DefaultFeatureSet = "v3"

var featureSets = map[string]Features{
	"v1": {Version: "v1"},
	"v2": {Version: "v2", GenderInsights: true, GenderSplitWorkouts: true},
	"v3": {Version: "v3", GenderInsights: true, GenderSplitWorkouts: true, StressManagement: true, AdvancedMetrics: true},
}

// FeatureSet looks up a named feature set.
func FeatureSet(version string) (Features, error) {
	f, ok := featureSets[version]
	if !ok {
		return Features{}, fmt.Errorf("unknown feature set %q (want one of %v)", version, FeatureSetNames())
	}
	return f, nil
}

// FeatureSetNames returns the known feature set names, sorted.
func FeatureSetNames() []string {
	names := make([]string, 0, len(featureSets))
	for name := range featureSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecommendationSelection is the selector's output: variant keys per topic
// plus the values the goal and metric cards need. It carries no prose.
type RecommendationSelection struct {
	FirstName   string                 `json:"first_name"`
	Category    BMICategory            `json:"bmi_category"`
	FeatureSet  string                 `json:"feature_set"`
	Variants    map[Topic][]VariantKey `json:"variants"`
	Goal        GoalProjection         `json:"goal"`
	MetricCards []MetricCard           `json:"metric_cards"`
}

// Keys returns the variant keys for one topic, or nil when the topic is not
// part of this selection.
func (s RecommendationSelection) Keys(t Topic) []VariantKey {
	return s.Variants[t]
}

// Selector maps metrics and profile attributes to content variants.
type Selector struct {
	features Features
	dietPlan map[BMICategory]map[DietPreference]VariantKey
}

// NewSelector builds a selector for the given feature set.
func NewSelector(f Features) *Selector {
	table := make(map[BMICategory]map[DietPreference]VariantKey, len(Categories))
	for _, c := range Categories {
		table[c] = make(map[DietPreference]VariantKey, len(DietPreferences))
		for _, d := range DietPreferences {
			table[c][d] = VariantKey(fmt.Sprintf("diet/%s/%s", c, d))
		}
	}
	return &Selector{features: f, dietPlan: table}
}

// Features returns the feature set the selector was built with.
func (s *Selector) Features() Features {
	return s.features
}

// SelectRecommendations selects with the default feature set and today's date.
func SelectRecommendations(m HealthMetrics, p UserProfile) RecommendationSelection {
	f, _ := FeatureSet(DefaultFeatureSet)
	return NewSelector(f).Select(m, p, time.Now())
}

// Select picks exactly one variant per enabled topic (the diet topic gets a
// living-situation tip appended). Unknown enum values never error; they fall
// back to the maintenance variants.
func (s *Selector) Select(m HealthMetrics, p UserProfile, today time.Time) RecommendationSelection {
	category := m.Category
	if !category.Valid() {
		category = CategoryHealthyWeight
	}

	variants := map[Topic][]VariantKey{
		TopicGoal:    {VariantKey("goal/" + string(category))},
		TopicDiet:    {s.dietKey(category, p.DietPreference), livingKey(p.LivingSituation)},
		TopicWorkout: {s.workoutKey(category, p.Gender)},
		TopicHabits:  {UniversalHabitsKey},
	}
	if s.features.GenderInsights {
		variants[TopicGenderInsights] = []VariantKey{genderKey(p.Gender)}
	}
	if s.features.StressManagement {
		variants[TopicStress] = []VariantKey{UniversalStressKey}
	}

	return RecommendationSelection{
		FirstName:   p.FirstName(),
		Category:    category,
		FeatureSet:  s.features.Version,
		Variants:    variants,
		Goal:        ProjectGoal(category, p.WeightKG, today),
		MetricCards: s.metricCards(m, p),
	}
}

func (s *Selector) dietKey(c BMICategory, d DietPreference) VariantKey {
	if byDiet, ok := s.dietPlan[c]; ok {
		if key, ok := byDiet[d]; ok {
			return key
		}
	}
	return MaintenanceDietKey
}

// workoutKey splits the overweight and obese tracks by gender when enabled:
// male gets the compound-strength progression, everyone else low impact.
func (s *Selector) workoutKey(c BMICategory, g Gender) VariantKey {
	base := "workout/" + string(c)
	if !s.features.GenderSplitWorkouts || !g.Valid() {
		return VariantKey(base)
	}
	if c != CategoryOverweight && c != CategoryObese {
		return VariantKey(base)
	}
	if g == GenderMale {
		return VariantKey(base + "/" + workoutStrengthSufx)
	}
	return VariantKey(base + "/" + workoutLowImpactSufx)
}

func livingKey(l LivingSituation) VariantKey {
	if !l.Valid() {
		return DefaultLivingKey
	}
	return VariantKey("living/" + string(l))
}

func genderKey(g Gender) VariantKey {
	if !g.Valid() {
		return DefaultGenderKey
	}
	return VariantKey("gender/" + string(g))
}

// metricCardRules decides which advanced cards are worth showing. BMR needs a
// real age and WHtR a real waist measurement; the rest only need a value.
var metricCardRules = []struct {
	card     MetricCard
	provided func(HealthMetrics, UserProfile) bool
}{
	{CardBMI, func(m HealthMetrics, _ UserProfile) bool { return m.BMI > 0 }},
	{CardBSA, func(m HealthMetrics, _ UserProfile) bool { return m.BSA != nil }},
	{CardPonderalIndex, func(m HealthMetrics, _ UserProfile) bool { return m.PonderalIndex != nil }},
	{CardIdealBodyWeight, func(m HealthMetrics, _ UserProfile) bool { return m.IdealBodyWeight != nil }},
	{CardBMR, func(m HealthMetrics, p UserProfile) bool { return p.AgeYears > 0 && m.BMR != nil }},
	{CardWHtR, func(m HealthMetrics, p UserProfile) bool { return p.WaistCM > 0 && m.WaistToHeightRatio != nil }},
}

func (s *Selector) metricCards(m HealthMetrics, p UserProfile) []MetricCard {
	cards := []MetricCard{}
	for _, rule := range metricCardRules {
		if !s.features.AdvancedMetrics && rule.card != CardBMI {
			continue
		}
		if rule.provided(m, p) {
			cards = append(cards, rule.card)
		}
	}
	return cards
}

// AllVariantKeys enumerates every key any feature set can emit, sorted. Used
// to check a content catalog is complete.
func AllVariantKeys() []VariantKey {
	seen := map[VariantKey]bool{
		DefaultLivingKey:   true,
		UniversalHabitsKey: true,
		UniversalStressKey: true,
	}
	for _, c := range Categories {
		seen[VariantKey("goal/"+string(c))] = true
		seen[VariantKey("workout/"+string(c))] = true
		for _, d := range DietPreferences {
			seen[VariantKey(fmt.Sprintf("diet/%s/%s", c, d))] = true
		}
	}
	for _, c := range []BMICategory{CategoryOverweight, CategoryObese} {
		seen[VariantKey("workout/"+string(c)+"/"+workoutLowImpactSufx)] = true
		seen[VariantKey("workout/"+string(c)+"/"+workoutStrengthSufx)] = true
	}
	for _, l := range LivingSituations {
		seen[livingKey(l)] = true
	}
	for _, g := range Genders {
		seen[genderKey(g)] = true
	}

	keys := make([]VariantKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
