package scorer

import (
	"math"

	"github.com/sells-group/lead-ranker/internal/model"
)

// computeComposite folds the sub-scores into the pre-normalization
// composite: weighted average of the five core components, scaled by
// data completeness, then the ordered bonus/penalty adjustments.
// Result is rounded to one decimal and clamped to [0, 100].
func computeComposite(sub map[string]float64, cfg *Config) float64 {
	weighted := sub[model.SubCompanySize]*cfg.Weights.CompanySize +
		sub[model.SubIndustry]*cfg.Weights.Industry +
		sub[model.SubFinancial]*cfg.Weights.Financial +
		sub[model.SubWebsite]*cfg.Weights.Website +
		sub[model.SubMarketPosition]*cfg.Weights.MarketPosition

	base := float64(financialBaseScore)
	if total := cfg.Weights.Sum(); total > 0 {
		base = weighted / total
	}

	// Sparse records get dampened, complete records keep full credit.
	base *= 0.85 + 0.15*(sub[model.SubCompleteness]/100)

	final := applyAdjustments(base, sub)
	return math.Round(clamp(final)*10) / 10
}

// applyAdjustments applies the bonus/penalty ladder on top of the
// weighted base. Mutually-exclusive branches resolve highest first.
func applyAdjustments(base float64, sub map[string]float64) float64 {
	adjusted := base

	// Consistent excellence bonus across all seven components.
	high := 0
	for _, v := range sub {
		if v >= 85 {
			high++
		}
	}
	switch {
	case high >= 3:
		adjusted += 8
	case high >= 2:
		adjusted += 4
	}

	// Balanced profiles (low spread across positive components) earn a
	// small consistency bonus.
	var positive []float64
	for _, v := range sub {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) >= 4 {
		switch sd := popStdDev(positive); {
		case sd < 12:
			adjusted += 5
		case sd < 20:
			adjusted += 2
		}
	}

	// Critical component failures.
	for _, key := range []string{model.SubIndustry, model.SubCompanySize} {
		if sub[key] < 40 {
			adjusted -= 8
		}
	}

	if sub[model.SubWebsite] < 25 {
		adjusted -= 12
	}
	if sub[model.SubCompleteness] < 40 {
		adjusted -= 8
	}

	// Both headline components strong: prime target.
	if sub[model.SubIndustry] >= 80 && sub[model.SubCompanySize] >= 80 {
		adjusted += 6
	}

	return adjusted
}

// popStdDev returns the population standard deviation.
func popStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
