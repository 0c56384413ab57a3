package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/lead-ranker/internal/model"
)

func TestBuildRationale(t *testing.T) {
	t.Run("nothing triggers fallback", func(t *testing.T) {
		sub := map[string]float64{
			model.SubCompanySize: 60,
			model.SubIndustry:    60,
			model.SubFinancial:   60,
			model.SubWebsite:     50,
		}
		got := buildRationale(sub, model.Lead{Company: "Acme"})
		assert.Equal(t, fallbackRationale, got)
	})

	t.Run("strong lead", func(t *testing.T) {
		sub := map[string]float64{
			model.SubCompanySize: 92,
			model.SubIndustry:    95,
			model.SubFinancial:   85,
			model.SubWebsite:     80,
		}
		lead := model.Lead{Company: "TechCorp", Industry: "SaaS", EmployeeCount: "150"}
		got := buildRationale(sub, lead)
		assert.Equal(t,
			"Optimal size (150 employees) for PE investment; High-priority industry (SaaS); Strong financial profile; Strong digital presence",
			got)
	})

	t.Run("weak lead with blank fields", func(t *testing.T) {
		sub := map[string]float64{
			model.SubCompanySize: 30,
			model.SubIndustry:    45,
			model.SubFinancial:   40,
			model.SubWebsite:     20,
		}
		got := buildRationale(sub, model.Lead{Company: "Acme"})
		assert.Equal(t,
			"Size concerns (0 employees); Lower-priority industry (Unknown); Limited financial data; Weak digital footprint",
			got)
	})
}

func TestBuildRiskFactors(t *testing.T) {
	t.Run("healthy lead", func(t *testing.T) {
		sub := map[string]float64{
			model.SubCompanySize:  80,
			model.SubIndustry:     80,
			model.SubFinancial:    70,
			model.SubCompleteness: 80,
		}
		assert.Equal(t, fallbackRisks, buildRiskFactors(sub))
	})

	t.Run("all risks fire", func(t *testing.T) {
		sub := map[string]float64{
			model.SubCompanySize:  30,
			model.SubIndustry:     40,
			model.SubFinancial:    45,
			model.SubCompleteness: 40,
		}
		assert.Equal(t,
			"Size mismatch; Industry challenges; Financial uncertainty; Limited data",
			buildRiskFactors(sub))
	})
}

func TestBuildGrowthIndicators(t *testing.T) {
	t.Run("no signals", func(t *testing.T) {
		sub := map[string]float64{
			model.SubIndustry:       70,
			model.SubMarketPosition: 60,
		}
		assert.Equal(t, fallbackGrowth, buildGrowthIndicators(sub, model.Lead{}))
	})

	t.Run("all signals", func(t *testing.T) {
		sub := map[string]float64{
			model.SubIndustry:       90,
			model.SubMarketPosition: 75,
		}
		lead := model.Lead{Growth: "30"}
		assert.Equal(t,
			"High-growth industry; Strong market position; High growth rate (30%)",
			buildGrowthIndicators(sub, lead))
	})

	t.Run("growth threshold is strict", func(t *testing.T) {
		got := buildGrowthIndicators(map[string]float64{}, model.Lead{Growth: "25"})
		assert.Equal(t, fallbackGrowth, got)
	})
}

func TestBand(t *testing.T) {
	assert.Equal(t, "high", Band(100))
	assert.Equal(t, "high", Band(80))
	assert.Equal(t, "medium", Band(79.9))
	assert.Equal(t, "medium", Band(60))
	assert.Equal(t, "low", Band(59.9))
	assert.Equal(t, "low", Band(0))
}
