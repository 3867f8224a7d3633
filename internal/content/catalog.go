// Package content turns the selector's variant keys into readable plan text.
// The copy lives in YAML so it can be edited without touching the core.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"lg/wellness-coach-go-api/internal/coach"
)

//go:embed default.yaml
var defaultCatalog []byte

// TopicCopy is the heading (and optional preamble) of one plan section.
type TopicCopy struct {
	Title string `yaml:"title"`
	Intro string `yaml:"intro"`
}

// CardCopy describes how a metric card is labelled and formatted.
// Format is a fmt verb string applied to the metric value.
type CardCopy struct {
	Label  string `yaml:"label"`
	Format string `yaml:"format"`
	Help   string `yaml:"help"`
}

// Catalog is the static copy keyed by variant, topic and metric card.
type Catalog struct {
	Version  int                           `yaml:"version"`
	Title    string                        `yaml:"title"`
	Topics   map[coach.Topic]TopicCopy     `yaml:"topics"`
	Cards    map[coach.MetricCard]CardCopy `yaml:"cards"`
	Variants map[coach.VariantKey]string   `yaml:"variants"`
}

// Section is one rendered topic of the plan.
type Section struct {
	Topic    coach.Topic        `json:"topic"`
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	Variants []coach.VariantKey `json:"variants"`
}

// Card is one rendered metric card.
type Card struct {
	Card  coach.MetricCard `json:"card"`
	Label string           `json:"label"`
	Value string           `json:"value"`
	Help  string           `json:"help,omitempty"`
}

// Plan is the fully rendered output handed to the client.
type Plan struct {
	Title    string    `json:"title"`
	Cards    []Card    `json:"cards"`
	Sections []Section `json:"sections"`
}

// Default parses the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile parses a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Variants) == 0 {
		return nil, errors.New("decode catalog: no variants defined")
	}
	return &c, nil
}

// MissingKeys lists every variant key the selector can emit that this catalog
// has no text for.
func (c *Catalog) MissingKeys() []coach.VariantKey {
	var missing []coach.VariantKey
	for _, k := range coach.AllVariantKeys() {
		if strings.TrimSpace(c.Variants[k]) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// Keys returns the variant keys this catalog serves, in selector order.
func (c *Catalog) Keys() []coach.VariantKey {
	var keys []coach.VariantKey
	for _, k := range coach.AllVariantKeys() {
		if _, ok := c.Variants[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// fallbackKeys is the maintenance variant used when a catalog lacks the
// selected key, keyed by the key's leading segment.
var fallbackKeys = map[string]coach.VariantKey{
	"goal":    coach.MaintenanceGoalKey,
	"diet":    coach.MaintenanceDietKey,
	"living":  coach.DefaultLivingKey,
	"workout": coach.MaintenanceWorkout,
	"gender":  coach.DefaultGenderKey,
	"habits":  coach.UniversalHabitsKey,
	"stress":  coach.UniversalStressKey,
}

// Render fills the copy for every topic in the selection. Topics are emitted
// in coach.Topics order and skipped when the selection does not include them.
func (c *Catalog) Render(p coach.UserProfile, m coach.HealthMetrics, sel coach.RecommendationSelection) Plan {
	r := c.replacer(p, sel)

	plan := Plan{
		Title:    r.Replace(c.Title),
		Cards:    c.renderCards(m, sel.MetricCards),
		Sections: []Section{},
	}
	for _, topic := range coach.Topics {
		keys := sel.Keys(topic)
		if len(keys) == 0 {
			continue
		}
		tc := c.Topics[topic]
		var parts []string
		if intro := strings.TrimSpace(tc.Intro); intro != "" {
			parts = append(parts, intro)
		}
		for _, k := range keys {
			if text, ok := c.lookup(k); ok {
				parts = append(parts, strings.TrimSpace(text))
			}
		}
		plan.Sections = append(plan.Sections, Section{
			Topic:    topic,
			Title:    r.Replace(tc.Title),
			Body:     r.Replace(strings.Join(parts, "\n\n")),
			Variants: keys,
		})
	}
	return plan
}

// lookup finds the text for k. A missing key falls back to its parents
// (workout/obese/strength -> workout/obese), then to the maintenance variant
// of the same family.
func (c *Catalog) lookup(k coach.VariantKey) (string, bool) {
	if text, ok := c.Variants[k]; ok {
		return text, true
	}
	for _, fallback := range fallbackChain(k) {
		if text, ok := c.Variants[fallback]; ok {
			log.Warn().Str("variant", string(k)).Str("fallback", string(fallback)).Msg("content variant missing, using fallback")
			return text, true
		}
	}
	log.Error().Str("variant", string(k)).Msg("content variant missing with no fallback")
	return "", false
}

// fallbackChain lists the keys to try after k, most specific first. The bare
// family ("workout") is never a key.
func fallbackChain(k coach.VariantKey) []coach.VariantKey {
	var chain []coach.VariantKey
	key := string(k)
	for {
		i := strings.LastIndex(key, "/")
		if i < 0 {
			break
		}
		key = key[:i]
		if !strings.Contains(key, "/") {
			break
		}
		chain = append(chain, coach.VariantKey(key))
	}
	family, _, _ := strings.Cut(string(k), "/")
	if fallback, ok := fallbackKeys[family]; ok && fallback != k {
		chain = append(chain, fallback)
	}
	return chain
}

func (c *Catalog) replacer(p coach.UserProfile, sel coach.RecommendationSelection) *strings.Replacer {
	g := sel.Goal
	return strings.NewReplacer(
		"{name}", sel.FirstName,
		"{category}", sel.Category.Label(),
		"{diet}", p.DietPreference.Label(),
		"{days}", fmt.Sprintf("%d", g.Days),
		"{current_weight}", fmt.Sprintf("%.1f", g.CurrentWeightKG),
		"{target_weight}", fmt.Sprintf("%.1f", g.TargetWeightKG),
		"{delta}", fmt.Sprintf("%.1f", math.Abs(g.DeltaKG)),
		"{target_date}", g.TargetDate.String(),
	)
}

func (c *Catalog) renderCards(m coach.HealthMetrics, cards []coach.MetricCard) []Card {
	out := make([]Card, 0, len(cards))
	for _, card := range cards {
		value, ok := cardValue(m, card)
		if !ok {
			continue
		}
		cc := c.Cards[card]
		label := cc.Label
		if label == "" {
			label = string(card)
		}
		format := cc.Format
		if format == "" {
			format = "%v"
		}
		out = append(out, Card{
			Card:  card,
			Label: label,
			Value: fmt.Sprintf(format, value),
			Help:  cc.Help,
		})
	}
	return out
}

// cardValue pulls the raw value behind a card; ints stay ints so "%d"
// formats work.
func cardValue(m coach.HealthMetrics, card coach.MetricCard) (any, bool) {
	switch card {
	case coach.CardBMI:
		return m.BMI, true
	case coach.CardBSA:
		if m.BSA != nil {
			return *m.BSA, true
		}
	case coach.CardPonderalIndex:
		if m.PonderalIndex != nil {
			return *m.PonderalIndex, true
		}
	case coach.CardIdealBodyWeight:
		if m.IdealBodyWeight != nil {
			return *m.IdealBodyWeight, true
		}
	case coach.CardBMR:
		if m.BMR != nil {
			return *m.BMR, true
		}
	case coach.CardWHtR:
		if m.WaistToHeightRatio != nil {
			return *m.WaistToHeightRatio, true
		}
	}
	return nil, false
}
