// Package scorer implements the multi-factor lead-quality scoring
// engine: per-record sub-scorers, composite scoring with adjustments,
// and batch-relative percentile normalization.
package scorer

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Weights holds the composite weights for the five core sub-scores.
// They should sum to 1.0.
type Weights struct {
	CompanySize    float64 `yaml:"company_size"`
	Industry       float64 `yaml:"industry"`
	Financial      float64 `yaml:"financial"`
	Website        float64 `yaml:"website"`
	MarketPosition float64 `yaml:"market_position"`
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.CompanySize + w.Industry + w.Financial + w.Website + w.MarketPosition
}

// IndustryTier maps an industry name to its base attractiveness score.
type IndustryTier struct {
	Name  string  `yaml:"name"`
	Score float64 `yaml:"score"`
}

// EmployeeRange is a half-open range [Min, Max) of employee counts
// mapped to a base score. Ranges are scanned in declared order and the
// first match wins; the table deliberately encodes a non-monotonic
// investment-size preference curve, so order is load-bearing.
type EmployeeRange struct {
	Min   int     `yaml:"min"`
	Max   int     `yaml:"max"`
	Score float64 `yaml:"score"`
}

// ExtensionBonus maps a set of domain extensions to a website bonus.
// Entries are checked in declared order; an entry with no extensions
// is the catch-all.
type ExtensionBonus struct {
	Extensions []string `yaml:"extensions"`
	Bonus      float64  `yaml:"bonus"`
}

// RevenueBracket maps a minimum annual revenue to a financial base
// score. Brackets are ordered by descending Min; first match wins.
type RevenueBracket struct {
	Min   float64 `yaml:"min"`
	Score float64 `yaml:"score"`
}

// GrowthBracket maps a minimum growth percentage to a signed financial
// adjustment. Ordered by descending Min; first match wins; the final
// bracket catches everything below.
type GrowthBracket struct {
	Min   float64 `yaml:"min"`
	Delta float64 `yaml:"delta"`
}

// Config is the immutable configuration of the scoring engine. Tables
// are ordered slices, never maps: first-match semantics depend on the
// declared order.
type Config struct {
	Weights Weights `yaml:"weights"`

	IndustryTiers    []IndustryTier   `yaml:"industry_tiers"`
	EmployeeRanges   []EmployeeRange  `yaml:"employee_ranges"`
	ExtensionBonuses []ExtensionBonus `yaml:"extension_bonuses"`
	RevenueBrackets  []RevenueBracket `yaml:"revenue_brackets"`
	GrowthBrackets   []GrowthBracket  `yaml:"growth_brackets"`

	TechKeywords         []string `yaml:"tech_keywords"`
	IndustryTechBonus    []string `yaml:"industry_tech_bonus"`
	IndustryServiceBonus []string `yaml:"industry_service_bonus"`
	LeadershipTerms      []string `yaml:"leadership_terms"`
	InnovationTerms      []string `yaml:"innovation_terms"`

	// Concurrency bounds the per-record scoring workers in ScoreBatch.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the engine configuration with the standard
// tables. Weights sum to 1.0.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			CompanySize:    0.25,
			Industry:       0.30,
			Financial:      0.25,
			Website:        0.10,
			MarketPosition: 0.10,
		},

		IndustryTiers: []IndustryTier{
			// Tier 1 — high priority.
			{Name: "SaaS", Score: 95},
			{Name: "Software", Score: 92},
			{Name: "Technology", Score: 90},
			{Name: "Fintech", Score: 88},
			{Name: "Healthcare Technology", Score: 87},
			{Name: "E-commerce", Score: 85},
			// Tier 2 — good targets.
			{Name: "Healthcare", Score: 82},
			{Name: "Medical Devices", Score: 80},
			{Name: "Biotechnology", Score: 78},
			{Name: "Professional Services", Score: 75},
			{Name: "Business Services", Score: 73},
			{Name: "Manufacturing", Score: 70},
			{Name: "Industrial", Score: 72},
			// Tier 3 — moderate interest.
			{Name: "Education", Score: 65},
			{Name: "EdTech", Score: 68},
			{Name: "Real Estate", Score: 60},
			{Name: "Financial Services", Score: 63},
			{Name: "Insurance", Score: 58},
			{Name: "Retail", Score: 55},
			// Tier 4 — lower priority.
			{Name: "Construction", Score: 50},
			{Name: "Agriculture", Score: 45},
			{Name: "Transportation", Score: 48},
			{Name: "Energy", Score: 52},
			{Name: "Utilities", Score: 40},
			{Name: "Government", Score: 35},
		},

		EmployeeRanges: []EmployeeRange{
			{Min: 100, Max: 300, Score: 95},
			{Min: 50, Max: 100, Score: 90},
			{Min: 300, Max: 500, Score: 85},
			{Min: 25, Max: 50, Score: 80},
			{Min: 500, Max: 1000, Score: 75},
			{Min: 15, Max: 25, Score: 70},
			{Min: 1000, Max: 2000, Score: 60},
			{Min: 5, Max: 15, Score: 50},
			{Min: 2000, Max: 5000, Score: 40},
			{Min: 0, Max: 5, Score: 30},
		},

		ExtensionBonuses: []ExtensionBonus{
			{Extensions: []string{".com"}, Bonus: 20},
			{Extensions: []string{".io", ".ai", ".tech", ".co"}, Bonus: 25},
			{Extensions: []string{".net", ".org"}, Bonus: 10},
			{Bonus: 5}, // catch-all
		},

		RevenueBrackets: []RevenueBracket{
			{Min: 100_000_000, Score: 95},
			{Min: 50_000_000, Score: 90},
			{Min: 25_000_000, Score: 85},
			{Min: 10_000_000, Score: 80},
			{Min: 5_000_000, Score: 75},
			{Min: 1_000_000, Score: 70},
			{Min: 500_000, Score: 60},
			{Min: math.Inf(-1), Score: 50},
		},

		GrowthBrackets: []GrowthBracket{
			{Min: 100, Delta: 25},
			{Min: 50, Delta: 20},
			{Min: 25, Delta: 15},
			{Min: 10, Delta: 10},
			{Min: 0, Delta: 5},
			{Min: -10, Delta: -5},
			{Min: math.Inf(-1), Delta: -15},
		},

		TechKeywords: []string{
			"tech", "soft", "data", "cloud", "ai", "digital", "app", "platform",
		},
		IndustryTechBonus: []string{
			"tech", "software", "digital", "ai", "data",
		},
		IndustryServiceBonus: []string{
			"service", "consulting", "solution",
		},
		LeadershipTerms: []string{
			"leader", "leading", "premier", "top", "best", "first", "#1", "market leader",
		},
		InnovationTerms: []string{
			"ai", "tech", "digital", "cloud", "data", "analytics", "automation", "platform", "saas",
		},

		Concurrency: 4,
	}
}

// Validate checks that a Config is internally consistent.
func Validate(c Config) error {
	var errs []string

	weights := map[string]float64{
		"company_size":    c.Weights.CompanySize,
		"industry":        c.Weights.Industry,
		"financial":       c.Weights.Financial,
		"website":         c.Weights.Website,
		"market_position": c.Weights.MarketPosition,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s weight must be >= 0", name))
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > 0.01 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1.0, got %.3f", sum))
	}

	if len(c.IndustryTiers) == 0 {
		errs = append(errs, "industry_tiers must not be empty")
	}
	for _, t := range c.IndustryTiers {
		if t.Score < 0 || t.Score > 100 {
			errs = append(errs, fmt.Sprintf("industry tier %q score must be in [0,100]", t.Name))
		}
	}

	if len(c.EmployeeRanges) == 0 {
		errs = append(errs, "employee_ranges must not be empty")
	}
	for _, r := range c.EmployeeRanges {
		if r.Min < 0 || r.Max <= r.Min {
			errs = append(errs, fmt.Sprintf("employee range [%d,%d) is invalid", r.Min, r.Max))
		}
	}

	if len(c.RevenueBrackets) == 0 {
		errs = append(errs, "revenue_brackets must not be empty")
	}
	if len(c.GrowthBrackets) == 0 {
		errs = append(errs, "growth_brackets must not be empty")
	}

	if c.Concurrency < 1 {
		errs = append(errs, "concurrency must be >= 1")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadTables reads table overrides from a YAML file and applies them
// on top of the default config. Only keys present in the file are
// overridden; omitted tables keep their defaults.
func LoadTables(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "scorer: read tables %s", path)
	}

	var override struct {
		Scoring Config `yaml:"scoring"`
	}
	override.Scoring = cfg
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg, eris.Wrap(err, "scorer: parse tables")
	}

	cfg = override.Scoring
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
