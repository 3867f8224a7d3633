package coach

import (
	"errors"
	"fmt"
	"time"
)

// Step is the questionnaire's position in its linear flow.
type Step string

const (
	StepCollectingInput Step = "collecting_input"
	StepPreviewShown    Step = "preview_shown"
	StepFullPlanShown   Step = "full_plan_shown"
)

// ErrInvalidTransition is returned when a step change is not allowed from the
// session's current step.
var ErrInvalidTransition = errors.New("invalid step transition")

// Session is an immutable snapshot of one questionnaire run. Transitions
// return a new value and leave the receiver untouched.
type Session struct {
	ID        string       `json:"id"`
	Step      Step         `json:"step"`
	Profile   *UserProfile `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSession starts a run at StepCollectingInput.
func NewSession(id string, now time.Time) Session {
	return Session{ID: id, Step: StepCollectingInput, CreatedAt: now, UpdatedAt: now}
}

// SubmitProfile records the answers and moves to the preview.
// CollectingInput -> PreviewShown.
func (s Session) SubmitProfile(p UserProfile, now time.Time) (Session, error) {
	if s.Step != StepCollectingInput {
		return s, fmt.Errorf("%w: cannot submit a profile from %s", ErrInvalidTransition, s.Step)
	}
	next := s
	profile := p
	next.Profile = &profile
	next.Step = StepPreviewShown
	next.UpdatedAt = now
	return next, nil
}

// ShowFullPlan moves from the preview to the full plan.
// PreviewShown -> FullPlanShown. Re-showing the full plan is allowed.
func (s Session) ShowFullPlan(now time.Time) (Session, error) {
	if s.Profile == nil || (s.Step != StepPreviewShown && s.Step != StepFullPlanShown) {
		return s, fmt.Errorf("%w: cannot show the full plan from %s", ErrInvalidTransition, s.Step)
	}
	next := s
	next.Step = StepFullPlanShown
	next.UpdatedAt = now
	return next, nil
}

// StartOver discards the answers and returns to input collection.
func (s Session) StartOver(now time.Time) Session {
	next := s
	next.Profile = nil
	next.Step = StepCollectingInput
	next.UpdatedAt = now
	return next
}
