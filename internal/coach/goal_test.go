package coach

import (
	"encoding/json"
	"testing"
	"time"
)

func TestProjectGoal_Deltas(t *testing.T) {
	cases := []struct {
		category  BMICategory
		weight    float64
		want      float64
		direction GoalDirection
	}{
		{CategoryObese, 80.0, 78.0, GoalLose},
		{CategoryOverweight, 80.0, 78.5, GoalLose},
		{CategoryUnderweight, 48.2, 49.2, GoalGain},
		{CategoryHealthyWeight, 65.0, 65.0, GoalMaintain},
		{BMICategory(""), 65.0, 65.0, GoalMaintain},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			g := ProjectGoal(tc.category, tc.weight, fixedToday)
			if g.TargetWeightKG != tc.want {
				t.Errorf("target = %v, want %v", g.TargetWeightKG, tc.want)
			}
			if g.Direction != tc.direction {
				t.Errorf("direction = %s, want %s", g.Direction, tc.direction)
			}
			if g.Days != GoalHorizonDays {
				t.Errorf("days = %d, want %d", g.Days, GoalHorizonDays)
			}
		})
	}
}

// TestProjectGoal_CalendarRollover verifies the target date uses calendar-day
// addition across month, year and leap-day boundaries.
func TestProjectGoal_CalendarRollover(t *testing.T) {
	cases := []struct {
		name  string
		today time.Time
		want  string
	}{
		{"30-day month", time.Date(2026, 9, 25, 18, 0, 0, 0, time.UTC), "2026-10-15"},
		{"31-day month", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), "2026-11-04"},
		{"year end", time.Date(2026, 12, 20, 23, 59, 0, 0, time.UTC), "2027-01-09"},
		{"leap february", time.Date(2028, 2, 15, 12, 0, 0, 0, time.UTC), "2028-03-06"},
		{"non-leap february", time.Date(2027, 2, 15, 12, 0, 0, 0, time.UTC), "2027-03-07"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := ProjectGoal(CategoryObese, 80, tc.today)
			if got := g.TargetDate.String(); got != tc.want {
				t.Errorf("target date = %s, want %s", got, tc.want)
			}
		})
	}
}

// TestProjectGoal_DSTBoundary verifies a late-evening submission across a DST
// change still lands exactly 20 calendar days out.
func TestProjectGoal_DSTBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	today := time.Date(2026, 10, 20, 23, 30, 0, 0, loc)
	g := ProjectGoal(CategoryOverweight, 80, today)
	if got := g.TargetDate.String(); got != "2026-11-09" {
		t.Errorf("target date = %s, want 2026-11-09", got)
	}
}

func TestDateOnly_JSON(t *testing.T) {
	d := DateOnly{time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-11-04"` {
		t.Errorf("marshal = %s, want \"2026-11-04\"", b)
	}

	var back DateOnly
	if err := json.Unmarshal([]byte(`"2026-11-04"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time.Equal(d.Time) {
		t.Errorf("unmarshal = %v, want %v", back.Time, d.Time)
	}
	if err := json.Unmarshal([]byte(`"04/11/2026"`), &back); err == nil {
		t.Error("expected an error for a non ISO date")
	}
}

// TestGoalProjection_RoundTrip verifies a projection written to a client can
// be decoded back with the same target date.
func TestGoalProjection_RoundTrip(t *testing.T) {
	g := ProjectGoal(CategoryObese, 80, time.Date(2026, 9, 25, 10, 0, 0, 0, time.UTC))
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back GoalProjection
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}
	if back.TargetDate.String() != "2026-10-15" || back.TargetWeightKG != 78 {
		t.Errorf("round trip = %+v, want 78 kg by 2026-10-15", back)
	}
}
