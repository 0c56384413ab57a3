package leadio

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-ranker/internal/model"
)

func TestWriteCSV(t *testing.T) {
	scored := []model.ScoredLead{
		{
			Lead: model.Lead{
				Company:       "Acme",
				Industry:      "SaaS",
				Website:       "acme.com",
				EmployeeCount: "150",
				Extra:         map[string]string{"Notes": "call back"},
			},
			SubScores: map[string]float64{
				model.SubCompanySize:    92,
				model.SubIndustry:       95,
				model.SubWebsite:        85,
				model.SubFinancial:      45,
				model.SubMarketPosition: 66,
				model.SubCompleteness:   80,
				model.SubMaturity:       50,
			},
			Score:            91.5,
			Rationale:        "High-priority industry (SaaS)",
			RiskFactors:      "Low risk profile",
			GrowthIndicators: "High-growth industry",
			Percentile:       100,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{"Notes"}, scored))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "Company", header[0])
	assert.Equal(t, "Notes", header[9])
	assert.Equal(t, "company_size_score", header[10])
	assert.Equal(t, "Score", header[17])
	assert.Equal(t, "score_percentile", header[21])

	row := records[1]
	assert.Equal(t, "Acme", row[0])
	assert.Equal(t, "call back", row[9])
	assert.Equal(t, "92", row[10])
	assert.Equal(t, "91.5", row[17])
	assert.Equal(t, "High-priority industry (SaaS)", row[18])
	assert.Equal(t, "100", row[21])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "92", formatScore(92))
	assert.Equal(t, "91.5", formatScore(91.5))
	assert.Equal(t, "0", formatScore(0))
}
