// CLI tool that runs the wellness questionnaire in the terminal and prints
// the full plan. Reads FEATURE_SET and CONTENT_PATH from .env if present.
// Usage: go run ./cmd/plan
package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lg/wellness-coach-go-api/internal/coach"
	"lg/wellness-coach-go-api/internal/content"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	features, err := coach.FeatureSet(envOr("FEATURE_SET", coach.DefaultFeatureSet))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid FEATURE_SET: %v\n", err)
		os.Exit(1)
	}

	catalog, err := content.Default()
	if path := os.Getenv("CONTENT_PATH"); path != "" {
		catalog, err = content.LoadFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	p, err := askProfile(bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError reading answers: %v\n", err)
		os.Exit(1)
	}

	m := coach.ComputeMetrics(p)
	sel := coach.NewSelector(features).Select(m, p, time.Now())
	printPlan(os.Stdout, catalog.Render(p, m, sel))
}

// askProfile prompts for every field, re-asking until the answer is valid.
func askProfile(r *bufio.Reader, w io.Writer) (coach.UserProfile, error) {
	var p coach.UserProfile
	var err error

	if p.Name, err = ask(r, w, "Name", func(s string) error {
		if s == "" {
			return fmt.Errorf("name is required")
		}
		return nil
	}); err != nil {
		return p, err
	}

	gender, err := askChoice(r, w, "Gender", names(coach.Genders))
	if err != nil {
		return p, err
	}
	p.Gender = coach.Gender(gender)

	if p.WeightKG, err = askFloat(r, w, "Weight (kg)", coach.MinWeightKG, coach.MaxWeightKG); err != nil {
		return p, err
	}
	if p.HeightCM, err = askFloat(r, w, "Height (cm)", coach.MinHeightCM, coach.MaxHeightCM); err != nil {
		return p, err
	}
	if p.AgeYears, err = askInt(r, w, "Age in years (0 to skip)", coach.MaxAgeYears); err != nil {
		return p, err
	}
	if p.WaistCM, err = askInt(r, w, "Waist (cm, 0 to skip)", coach.MaxWaistCM); err != nil {
		return p, err
	}

	diet, err := askChoice(r, w, "Diet preference", names(coach.DietPreferences))
	if err != nil {
		return p, err
	}
	p.DietPreference = coach.DietPreference(diet)

	living, err := askChoice(r, w, "Living situation", names(coach.LivingSituations))
	if err != nil {
		return p, err
	}
	p.LivingSituation = coach.LivingSituation(living)

	return p, nil
}

// ask prints a prompt and reads one trimmed line, repeating on validation
// errors. EOF before a valid answer is an error.
func ask(r *bufio.Reader, w io.Writer, prompt string, check func(string) error) (string, error) {
	for {
		fmt.Fprintf(w, "%s: ", prompt)
		line, readErr := r.ReadString('\n')
		answer := strings.TrimSpace(line)
		err := check(answer)
		if err == nil {
			return answer, nil
		}
		if readErr != nil {
			return "", fmt.Errorf("%s: %w", prompt, readErr)
		}
		fmt.Fprintf(w, "  %v\n", err)
	}
}

func askChoice(r *bufio.Reader, w io.Writer, prompt string, options []string) (string, error) {
	return ask(r, w, fmt.Sprintf("%s [%s]", prompt, strings.Join(options, "/")), func(s string) error {
		for _, o := range options {
			if s == o {
				return nil
			}
		}
		return fmt.Errorf("choose one of: %s", strings.Join(options, ", "))
	})
}

func askFloat(r *bufio.Reader, w io.Writer, prompt string, lo, hi float64) (float64, error) {
	var v float64
	_, err := ask(r, w, prompt, func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || f < lo || f > hi {
			return fmt.Errorf("enter a number between %g and %g", lo, hi)
		}
		v = f
		return nil
	})
	return v, err
}

func askInt(r *bufio.Reader, w io.Writer, prompt string, hi int) (int, error) {
	var v int
	_, err := ask(r, w, prompt, func(s string) error {
		if s == "" {
			v = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > hi {
			return fmt.Errorf("enter a whole number between 0 and %d", hi)
		}
		v = n
		return nil
	})
	return v, err
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func printPlan(w io.Writer, plan content.Plan) {
	fmt.Fprintf(w, "\n%s\n\n", plan.Title)
	for _, card := range plan.Cards {
		fmt.Fprintf(w, "  %-22s %s\n", card.Label+":", card.Value)
	}
	for _, s := range plan.Sections {
		fmt.Fprintf(w, "\n── %s\n\n%s\n", s.Title, s.Body)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
