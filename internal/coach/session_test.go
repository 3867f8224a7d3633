package coach

import (
	"errors"
	"testing"
	"time"
)

func TestSession_LinearFlow(t *testing.T) {
	t0 := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	s := NewSession("abc", t0)
	if s.Step != StepCollectingInput || s.Profile != nil {
		t.Fatalf("new session = %+v, want collecting_input with no profile", s)
	}

	p := makeProfile(GenderFemale, 65, 165, 30, 0)
	previewed, err := s.SubmitProfile(p, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
	if previewed.Step != StepPreviewShown || previewed.Profile == nil || previewed.Profile.Name != p.Name {
		t.Errorf("after submit = %+v", previewed)
	}
	// The receiver is untouched.
	if s.Step != StepCollectingInput || s.Profile != nil {
		t.Errorf("SubmitProfile mutated the receiver: %+v", s)
	}

	full, err := previewed.ShowFullPlan(t0.Add(2 * time.Minute))
	if err != nil {
		t.Fatalf("ShowFullPlan: %v", err)
	}
	if full.Step != StepFullPlanShown {
		t.Errorf("step = %s, want %s", full.Step, StepFullPlanShown)
	}
	if !full.UpdatedAt.Equal(t0.Add(2 * time.Minute)) {
		t.Errorf("UpdatedAt = %v", full.UpdatedAt)
	}

	again, err := full.ShowFullPlan(t0.Add(3 * time.Minute))
	if err != nil || again.Step != StepFullPlanShown {
		t.Errorf("re-showing the full plan: step=%s err=%v", again.Step, err)
	}

	reset := full.StartOver(t0.Add(4 * time.Minute))
	if reset.Step != StepCollectingInput || reset.Profile != nil {
		t.Errorf("after start over = %+v", reset)
	}
	if reset.ID != "abc" || !reset.CreatedAt.Equal(t0) {
		t.Errorf("start over should keep identity, got %+v", reset)
	}
}

// TestSession_ProfileIsCopied verifies later edits to the caller's profile do
// not leak into the submitted session.
func TestSession_ProfileIsCopied(t *testing.T) {
	p := makeProfile(GenderMale, 80, 175, 30, 0)
	s, err := NewSession("x", time.Now()).SubmitProfile(p, time.Now())
	if err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
	p.WeightKG = 120
	if s.Profile.WeightKG != 80 {
		t.Errorf("profile weight = %v, want 80", s.Profile.WeightKG)
	}
}

func TestSession_InvalidTransitions(t *testing.T) {
	now := time.Now()
	fresh := NewSession("x", now)
	p := makeProfile(GenderMale, 80, 175, 30, 0)
	previewed, _ := fresh.SubmitProfile(p, now)

	cases := []struct {
		name string
		run  func() error
	}{
		{"full plan before profile", func() error { _, err := fresh.ShowFullPlan(now); return err }},
		{"submit twice", func() error { _, err := previewed.SubmitProfile(p, now); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}
