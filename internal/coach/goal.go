package coach

import "time"

// GoalHorizonDays is the length of the short-horizon goal window.
const GoalHorizonDays = 20

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON shadows the embedded time.Time decoder, which only accepts
// RFC 3339 and would reject the dates MarshalJSON writes. Clients decoding a
// plan response rely on it.
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateOnly) String() string {
	return d.Time.Format("2006-01-02")
}

// GoalDirection says which way the projected weight moves.
type GoalDirection string

const (
	GoalLose     GoalDirection = "lose"
	GoalGain     GoalDirection = "gain"
	GoalMaintain GoalDirection = "maintain"
)

// GoalProjection is the 20-day target shown next to the BMI snapshot.
type GoalProjection struct {
	CurrentWeightKG float64       `json:"current_weight_kg"`
	TargetWeightKG  float64       `json:"target_weight_kg"`
	DeltaKG         float64       `json:"delta_kg"`
	Direction       GoalDirection `json:"direction"`
	Days            int           `json:"days"`
	TargetDate      DateOnly      `json:"target_date"`
}

// goalDeltaKG is the per-category weight change over the goal window.
// Categories not listed (including HealthyWeight) maintain.
var goalDeltaKG = map[BMICategory]float64{
	CategoryUnderweight: 1.0,
	CategoryOverweight:  -1.5,
	CategoryObese:       -2.0,
}

// ProjectGoal computes the target weight and date for the next GoalHorizonDays
// calendar days, starting from today's date in today's location.
func ProjectGoal(category BMICategory, weightKG float64, today time.Time) GoalProjection {
	delta := goalDeltaKG[category]
	direction := GoalMaintain
	switch {
	case delta < 0:
		direction = GoalLose
	case delta > 0:
		direction = GoalGain
	}

	current := weightKG
	if !finite(current) {
		current = 0
	}
	return GoalProjection{
		CurrentWeightKG: current,
		TargetWeightKG:  roundTo(current+delta, 1),
		DeltaKG:         delta,
		Direction:       direction,
		Days:            GoalHorizonDays,
		TargetDate:      DateOnly{addCalendarDays(today, GoalHorizonDays)},
	}
}

// addCalendarDays truncates t to midnight in its own location and adds days
// with AddDate, so month/year rollover and DST shifts land on the right date.
func addCalendarDays(t time.Time, days int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, days)
}
