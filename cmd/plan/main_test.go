package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"lg/wellness-coach-go-api/internal/coach"
	"lg/wellness-coach-go-api/internal/content"
)

func TestAskProfile(t *testing.T) {
	// Each bad answer is re-asked: blank name, out-of-range or non-finite
	// weight, unknown diet.
	input := strings.Join([]string{
		"", "Kabir Singh",
		"male",
		"500", "NaN", "Inf", "-Inf", "92.5",
		"178",
		"41",
		"",
		"vegan", "non_vegetarian",
		"cooks_alone",
	}, "\n") + "\n"

	var out bytes.Buffer
	p, err := askProfile(bufio.NewReader(strings.NewReader(input)), &out)
	if err != nil {
		t.Fatalf("askProfile: %v", err)
	}

	want := coach.UserProfile{
		Name:            "Kabir Singh",
		Gender:          coach.GenderMale,
		WeightKG:        92.5,
		HeightCM:        178,
		AgeYears:        41,
		WaistCM:         0,
		DietPreference:  coach.DietNonVegetarian,
		LivingSituation: coach.LivingCooksAlone,
	}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
	for _, msg := range []string{"name is required", "enter a number between 30 and 200", "choose one of: vegetarian, eggetarian, non_vegetarian"} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("expected prompt output to contain %q", msg)
		}
	}
}

func TestAskProfile_EOF(t *testing.T) {
	_, err := askProfile(bufio.NewReader(strings.NewReader("Asha\nfemale\n")), &bytes.Buffer{})
	if err == nil {
		t.Error("expected an error when input ends early")
	}
}

func TestPrintPlan(t *testing.T) {
	p := coach.UserProfile{Name: "Asha", Gender: coach.GenderFemale, WeightKG: 50, HeightCM: 170, DietPreference: coach.DietVegetarian, LivingSituation: coach.LivingWithFamily}
	m := coach.ComputeMetrics(p)
	features, _ := coach.FeatureSet("v1")
	sel := coach.NewSelector(features).Select(m, p, fixedDay())

	var out bytes.Buffer
	printPlan(&out, renderDefault(t, p, m, sel))
	for _, want := range []string{"Alright Asha", "Body Mass Index:", "17.3", "Your 20-Day Target"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func fixedDay() time.Time {
	return time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
}

func renderDefault(t *testing.T, p coach.UserProfile, m coach.HealthMetrics, sel coach.RecommendationSelection) content.Plan {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return c.Render(p, m, sel)
}
