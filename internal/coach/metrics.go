package coach

import "math"

// BMICategory is the WHO-style weight class derived from BMI.
type BMICategory string

const (
	CategoryUnderweight   BMICategory = "underweight"
	CategoryHealthyWeight BMICategory = "healthy_weight"
	CategoryOverweight    BMICategory = "overweight"
	CategoryObese         BMICategory = "obese"
)

// Categories lists every BMI category from lightest to heaviest.
var Categories = []BMICategory{CategoryUnderweight, CategoryHealthyWeight, CategoryOverweight, CategoryObese}

func (c BMICategory) Valid() bool {
	switch c {
	case CategoryUnderweight, CategoryHealthyWeight, CategoryOverweight, CategoryObese:
		return true
	}
	return false
}

// Label is the human-readable category name used in content.
func (c BMICategory) Label() string {
	switch c {
	case CategoryUnderweight:
		return "Underweight"
	case CategoryOverweight:
		return "Overweight"
	case CategoryObese:
		return "Obese"
	default:
		return "Healthy Weight"
	}
}

// HealthMetrics is the derived metric bundle. Pointer fields are nil when the
// inputs needed to compute them are missing or out of domain, so JSON shows
// null instead of a misleading zero.
type HealthMetrics struct {
	BMI                float64     `json:"bmi"`
	Category           BMICategory `json:"bmi_category"`
	BSA                *float64    `json:"bsa"`
	PonderalIndex      *float64    `json:"ponderal_index"`
	BMR                *int        `json:"bmr"`
	IdealBodyWeight    *int        `json:"ideal_body_weight"`
	WaistToHeightRatio *float64    `json:"waist_to_height_ratio"`
}

const (
	bmiUnderweightBelow = 18.5
	bmiOverweightFrom   = 25.0
	bmiObeseFrom        = 30.0

	inchesPerCM = 0.393701
)

// ComputeMetrics derives every metric straight from the profile. No metric is
// computed from another rounded metric.
func ComputeMetrics(p UserProfile) HealthMetrics {
	bmi := ComputeBMI(p.WeightKG, p.HeightCM)
	return HealthMetrics{
		BMI:                bmi,
		Category:           ClassifyBMI(bmi),
		BSA:                ComputeBSA(p.WeightKG, p.HeightCM),
		PonderalIndex:      ComputePonderalIndex(p.WeightKG, p.HeightCM),
		BMR:                ComputeBMR(p.WeightKG, p.HeightCM, p.AgeYears, p.Gender),
		IdealBodyWeight:    ComputeIdealBodyWeight(p.HeightCM, p.Gender),
		WaistToHeightRatio: ComputeWHtR(p.WaistCM, p.HeightCM),
	}
}

// ComputeBMI returns weight / height(m)^2 rounded to one decimal, or 0 when
// either input is non-positive.
func ComputeBMI(weightKG, heightCM float64) float64 {
	if !positive(weightKG) || !positive(heightCM) {
		return 0
	}
	m := heightCM / 100
	bmi := roundTo(weightKG/(m*m), 1)
	if !finite(bmi) {
		return 0
	}
	return bmi
}

// ClassifyBMI maps a BMI to its category. The table is 18.5 / 25.0 / 30.0 with
// inclusive lower bounds, so 24.9 < bmi < 25.0 stays HealthyWeight.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < bmiUnderweightBelow:
		return CategoryUnderweight
	case bmi < bmiOverweightFrom:
		return CategoryHealthyWeight
	case bmi < bmiObeseFrom:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// ComputeBSA estimates body surface area (m^2) with the Du Bois formula.
func ComputeBSA(weightKG, heightCM float64) *float64 {
	if !positive(weightKG) || !positive(heightCM) {
		return nil
	}
	bsa := 0.007184 * math.Pow(weightKG, 0.425) * math.Pow(heightCM, 0.725)
	return floatOrNil(roundTo(bsa, 2))
}

// ComputePonderalIndex returns weight / height(m)^3 rounded to one decimal.
func ComputePonderalIndex(weightKG, heightCM float64) *float64 {
	if !positive(weightKG) || !positive(heightCM) {
		return nil
	}
	m := heightCM / 100
	return floatOrNil(roundTo(weightKG/(m*m*m), 1))
}

// ComputeBMR estimates basal metabolic rate (kcal/day) via Mifflin-St Jeor.
// Needs weight, height and age; unspecified gender uses the female constant.
func ComputeBMR(weightKG, heightCM float64, ageYears int, gender Gender) *int {
	if !positive(weightKG) || !positive(heightCM) || ageYears <= 0 {
		return nil
	}
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(ageYears)
	if gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return intOrNil(bmr)
}

// ComputeIdealBodyWeight returns the Devine ideal body weight in kg. Heights at
// or under five feet have no defined value.
func ComputeIdealBodyWeight(heightCM float64, gender Gender) *int {
	if !positive(heightCM) {
		return nil
	}
	inches := heightCM * inchesPerCM
	if inches <= 60 {
		return nil
	}
	var ibw float64
	if gender == GenderMale {
		ibw = 52 + 1.9*(inches-60)
	} else {
		ibw = 49 + 1.7*(inches-60)
	}
	return intOrNil(ibw)
}

// ComputeWHtR returns waist / height rounded to two decimals.
func ComputeWHtR(waistCM int, heightCM float64) *float64 {
	if waistCM <= 0 || !positive(heightCM) {
		return nil
	}
	return floatOrNil(roundTo(float64(waistCM)/heightCM, 2))
}

/* ─── Numeric helpers ────────────────────────────────────────────────── */

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func floatOrNil(v float64) *float64 {
	if !finite(v) {
		return nil
	}
	return &v
}

func intOrNil(v float64) *int {
	if !finite(v) {
		return nil
	}
	n := int(math.Round(v))
	return &n
}
