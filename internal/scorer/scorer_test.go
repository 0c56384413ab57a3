package scorer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-ranker/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func testScorer() *LeadScorer {
	s := New(testConfig())
	s.now = fixedNow
	return s
}

func sampleLeads() []model.Lead {
	return []model.Lead{
		{Company: "TechCorp", Industry: "SaaS", Website: "techcorp.com", EmployeeCount: "150"},
		{Company: "BuildRight", Industry: "Construction", EmployeeCount: "2500"},
		{Company: "MediSupply", Industry: "Healthcare", Website: "medisupply.net", EmployeeCount: "80", Revenue: "12000000"},
		{Company: "Corner Store", Industry: "Retail", EmployeeCount: "3"},
		{Company: "DataWorks", Industry: "Software", Website: "dataworks.io", EmployeeCount: "220", Growth: "40"},
	}
}

func TestScoreBatchSingleLead(t *testing.T) {
	s := testScorer()

	results, err := s.ScoreBatch(context.Background(), []model.Lead{
		{Company: "TechCorp", Industry: "SaaS", Website: "techcorp.com", EmployeeCount: "150"},
	}, "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 92, r.SubScores[model.SubCompanySize], 0.01)
	assert.InDelta(t, 95, r.SubScores[model.SubIndustry], 0.01)
	assert.InDelta(t, 85, r.SubScores[model.SubWebsite], 0.01)
	assert.InDelta(t, 45, r.SubScores[model.SubFinancial], 0.01)
	assert.InDelta(t, 66, r.SubScores[model.SubMarketPosition], 0.01)
	assert.InDelta(t, 80, r.SubScores[model.SubCompleteness], 0.01)
	assert.InDelta(t, 50, r.SubScores[model.SubMaturity], 0.01)

	// Composite 91.5, then +5 as its own batch top decile.
	assert.InDelta(t, 96.5, r.Score, 0.01)
	assert.InDelta(t, 100, r.Percentile, 0.01)
	assert.Contains(t, r.Rationale, "Optimal size (150 employees)")
	assert.Contains(t, r.Rationale, "High-priority industry (SaaS)")
}

func TestScoreBatchOneRowPerInput(t *testing.T) {
	s := testScorer()
	leads := sampleLeads()

	results, err := s.ScoreBatch(context.Background(), leads, "")
	require.NoError(t, err)
	require.Len(t, results, len(leads))

	// Input order is preserved regardless of worker scheduling.
	for i := range leads {
		assert.Equal(t, leads[i].Company, results[i].Company)
	}
}

func TestScoreBatchDeterministic(t *testing.T) {
	s := testScorer()
	leads := sampleLeads()

	first, err := s.ScoreBatch(context.Background(), leads, "")
	require.NoError(t, err)
	second, err := s.ScoreBatch(context.Background(), leads, "")
	require.NoError(t, err)

	for i := range first {
		assert.InDelta(t, first[i].Score, second[i].Score, 0.0001)
		assert.InDelta(t, first[i].Percentile, second[i].Percentile, 0.0001)
		assert.Equal(t, first[i].Rationale, second[i].Rationale)
	}
}

func TestScoreBatchBounds(t *testing.T) {
	s := testScorer()

	results, err := s.ScoreBatch(context.Background(), sampleLeads(), "")
	require.NoError(t, err)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
		assert.GreaterOrEqual(t, r.Percentile, 0.0)
		assert.LessOrEqual(t, r.Percentile, 100.0)
	}
}

func TestScoreBatchEmpty(t *testing.T) {
	s := testScorer()

	results, err := s.ScoreBatch(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScoreBatchCancelled(t *testing.T) {
	s := testScorer()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ScoreBatch(ctx, sampleLeads(), "")
	assert.Error(t, err)
}

func TestScoreOneFaultContainment(t *testing.T) {
	s := testScorer()
	s.sub = func(model.Lead, time.Time) map[string]float64 {
		panic("bad attribute")
	}

	out := s.scoreOne(model.Lead{Company: "Acme"}, fixedNow())
	assert.Equal(t, "Acme", out.Company)
	assert.InDelta(t, 45, out.Score, 0.001)
	assert.Equal(t, "Scoring error: bad attribute", out.Rationale)
	assert.Nil(t, out.SubScores)
}

func TestScoreBatchContainsFaults(t *testing.T) {
	s := testScorer()
	healthy := s.subScores
	s.sub = func(lead model.Lead, now time.Time) map[string]float64 {
		if lead.Company == "BuildRight" {
			panic("bad attribute")
		}
		return healthy(lead, now)
	}

	leads := sampleLeads()
	results, err := s.ScoreBatch(context.Background(), leads, "")
	require.NoError(t, err)
	require.Len(t, results, len(leads))

	faulted := results[1]
	assert.Equal(t, "BuildRight", faulted.Company)
	assert.True(t, strings.HasPrefix(faulted.Rationale, "Scoring error:"))
	assert.Nil(t, faulted.SubScores)
	// The fallback score takes the batch-relative adjustment like any
	// other composite.
	assert.InDelta(t, 45, faulted.Score, 5.01)

	for i, r := range results {
		if i == 1 {
			continue
		}
		assert.NotEmpty(t, r.SubScores)
		assert.False(t, strings.HasPrefix(r.Rationale, "Scoring error:"))
	}
}

func TestScoreBatchMinimalLead(t *testing.T) {
	s := testScorer()

	// A lead with nothing but a name still scores, using the documented
	// missing-field defaults for every component.
	results, err := s.ScoreBatch(context.Background(), []model.Lead{{Company: "Acme"}}, "")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.InDelta(t, 25, r.SubScores[model.SubCompanySize], 0.01)
	assert.InDelta(t, 40, r.SubScores[model.SubIndustry], 0.01)
	assert.InDelta(t, 20, r.SubScores[model.SubWebsite], 0.01)
	assert.InDelta(t, 45, r.SubScores[model.SubFinancial], 0.01)
	assert.InDelta(t, 20, r.SubScores[model.SubCompleteness], 0.01)
	assert.InDelta(t, 50, r.SubScores[model.SubMaturity], 0.01)
	assert.NotEmpty(t, r.Rationale)
	assert.NotEmpty(t, r.RiskFactors)
}
