package scorer

import (
	"strconv"
	"strings"

	"github.com/sells-group/lead-ranker/internal/model"
)

// Fallback phrases used when no rule triggers.
const (
	fallbackRationale = "Standard analysis applied"
	fallbackRisks     = "Low risk profile"
	fallbackGrowth    = "Standard growth potential"
)

// buildRationale assembles the human-readable scoring explanation from
// sub-score thresholds and raw field values.
func buildRationale(sub map[string]float64, lead model.Lead) string {
	var parts []string

	emp := strings.TrimSpace(lead.EmployeeCount)
	if emp == "" {
		emp = "0"
	}
	switch size := sub[model.SubCompanySize]; {
	case size >= 85:
		parts = append(parts, "Optimal size ("+emp+" employees) for PE investment")
	case size >= 70:
		parts = append(parts, "Good company size ("+emp+" employees)")
	case size < 50:
		parts = append(parts, "Size concerns ("+emp+" employees)")
	}

	industry := strings.TrimSpace(lead.Industry)
	if industry == "" {
		industry = "Unknown"
	}
	switch is := sub[model.SubIndustry]; {
	case is >= 85:
		parts = append(parts, "High-priority industry ("+industry+")")
	case is >= 70:
		parts = append(parts, "Attractive industry ("+industry+")")
	case is < 55:
		parts = append(parts, "Lower-priority industry ("+industry+")")
	}

	switch fin := sub[model.SubFinancial]; {
	case fin >= 80:
		parts = append(parts, "Strong financial profile")
	case fin < 50:
		parts = append(parts, "Limited financial data")
	}

	switch web := sub[model.SubWebsite]; {
	case web >= 70:
		parts = append(parts, "Strong digital presence")
	case web < 40:
		parts = append(parts, "Weak digital footprint")
	}

	return joinOrFallback(parts, fallbackRationale)
}

// buildRiskFactors lists the weaknesses an outreach team should know
// about before prioritizing the lead.
func buildRiskFactors(sub map[string]float64) string {
	var risks []string

	if sub[model.SubCompanySize] < 40 {
		risks = append(risks, "Size mismatch")
	}
	if sub[model.SubIndustry] < 50 {
		risks = append(risks, "Industry challenges")
	}
	if sub[model.SubFinancial] < 50 {
		risks = append(risks, "Financial uncertainty")
	}
	if sub[model.SubCompleteness] < 60 {
		risks = append(risks, "Limited data")
	}

	return joinOrFallback(risks, fallbackRisks)
}

// buildGrowthIndicators lists growth-potential signals.
func buildGrowthIndicators(sub map[string]float64, lead model.Lead) string {
	var indicators []string

	if sub[model.SubIndustry] >= 85 {
		indicators = append(indicators, "High-growth industry")
	}
	if sub[model.SubMarketPosition] >= 70 {
		indicators = append(indicators, "Strong market position")
	}
	if g, ok := model.FloatField(lead.Growth); ok && g > 25 {
		indicators = append(indicators, "High growth rate ("+strconv.FormatFloat(g, 'g', -1, 64)+"%)")
	}

	return joinOrFallback(indicators, fallbackGrowth)
}

func joinOrFallback(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, "; ")
}

// Band classifies a final score into the outreach quality bands used
// by summaries: high (>=80), medium (>=60), low.
func Band(score float64) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}
