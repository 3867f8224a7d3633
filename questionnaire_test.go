package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lg/wellness-coach-go-api/internal/coach"
)

// createTestSession starts a session and returns its ID.
func createTestSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doRequest(router, "POST", "/api/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	s := decode[coach.Session](t, w)
	if s.Step != coach.StepCollectingInput {
		t.Fatalf("expected step %s, got %s", coach.StepCollectingInput, s.Step)
	}
	return s.ID
}

func TestQuestionnaire_FullFlow(t *testing.T) {
	router, _ := setupTest(t)
	id := createTestSession(t, router)

	// Submit the form -> snapshot preview
	w := doRequest(router, "POST", "/api/sessions/"+id+"/profile", obeseProfileJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	preview := decode[sessionSnapshotResponse](t, w)
	if preview.Session.Step != coach.StepPreviewShown {
		t.Errorf("expected step %s, got %s", coach.StepPreviewShown, preview.Session.Step)
	}
	snap := preview.Snapshot
	if snap.FirstName != "Priya" || snap.BMI != 33.3 || snap.Category != coach.CategoryObese {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}
	if snap.CategoryLabel != "Obese" {
		t.Errorf("expected label 'Obese', got '%s'", snap.CategoryLabel)
	}
	if !strings.Contains(snap.GoalText, "78.0 kg") || !strings.Contains(snap.GoalText, "2026-10-15") {
		t.Errorf("unexpected goal text: %q", snap.GoalText)
	}

	// Session state reflects the submitted profile
	w = doRequest(router, "GET", "/api/sessions/"+id, "")
	got := decode[coach.Session](t, w)
	if got.Step != coach.StepPreviewShown || got.Profile == nil || got.Profile.Name != "Priya Sharma" {
		t.Errorf("unexpected stored session: %+v", got)
	}

	// Unlock the full plan
	w = doRequest(router, "POST", "/api/sessions/"+id+"/plan", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	full := decode[sessionPlanResponse](t, w)
	if full.Session.Step != coach.StepFullPlanShown {
		t.Errorf("expected step %s, got %s", coach.StepFullPlanShown, full.Session.Step)
	}
	if len(full.Plan.Sections) != len(coach.Topics) {
		t.Errorf("expected %d sections, got %d", len(coach.Topics), len(full.Plan.Sections))
	}

	// Start over clears the answers
	w = doRequest(router, "DELETE", "/api/sessions/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	reset := decode[coach.Session](t, w)
	if reset.Step != coach.StepCollectingInput || reset.Profile != nil || reset.ID != id {
		t.Errorf("unexpected session after start over: %+v", reset)
	}
}

func TestQuestionnaire_InvalidTransitions(t *testing.T) {
	router, _ := setupTest(t)

	t.Run("full plan before profile", func(t *testing.T) {
		id := createTestSession(t, router)
		w := doRequest(router, "POST", "/api/sessions/"+id+"/plan", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("submit twice", func(t *testing.T) {
		id := createTestSession(t, router)
		doRequest(router, "POST", "/api/sessions/"+id+"/profile", obeseProfileJSON)
		w := doRequest(router, "POST", "/api/sessions/"+id+"/profile", healthyProfileJSON)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}

		// The first answers are kept.
		w = doRequest(router, "GET", "/api/sessions/"+id, "")
		s := decode[coach.Session](t, w)
		if s.Profile == nil || s.Profile.Name != "Priya Sharma" {
			t.Errorf("expected the first profile to be kept, got %+v", s.Profile)
		}
	})
}

func TestQuestionnaire_InvalidProfileKeepsStep(t *testing.T) {
	router, _ := setupTest(t)
	id := createTestSession(t, router)

	w := doRequest(router, "POST", "/api/sessions/"+id+"/profile", `{"name":"","gender":"female","weight_kg":60,"height_cm":160,"diet_preference":"vegetarian","living_situation":"with_family"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[map[string]string](t, w)
	if resp["error"] != "name is required" {
		t.Errorf("expected 'name is required', got '%s'", resp["error"])
	}

	w = doRequest(router, "GET", "/api/sessions/"+id, "")
	if s := decode[coach.Session](t, w); s.Step != coach.StepCollectingInput {
		t.Errorf("expected step %s, got %s", coach.StepCollectingInput, s.Step)
	}
}

func TestQuestionnaire_UnknownSession(t *testing.T) {
	router, _ := setupTest(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/sessions/00000000-0000-0000-0000-000000000000"},
		{"GET", "/api/sessions/not-a-uuid"},
		{"POST", "/api/sessions/00000000-0000-0000-0000-000000000000/plan"},
		{"DELETE", "/api/sessions/00000000-0000-0000-0000-000000000000"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := doRequest(router, p.method, p.path, "")
			if w.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}
