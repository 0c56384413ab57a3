package leadio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-ranker/internal/model"
)

// canonicalColumns is the export order for lead fields.
var canonicalColumns = []string{
	model.ColCompany,
	model.ColIndustry,
	model.ColWebsite,
	model.ColEmployeeCount,
	model.ColRevenue,
	model.ColGrowth,
	model.ColProfit,
	model.ColFounded,
	model.ColLocation,
}

// scoreColumns is the export order for scoring output. Sub-score keys
// come first, followed by the composite and the text columns.
var scoreColumns = []string{
	model.SubCompanySize,
	model.SubIndustry,
	model.SubWebsite,
	model.SubFinancial,
	model.SubMarketPosition,
	model.SubCompleteness,
	model.SubMaturity,
	"Score",
	"scoring_rationale",
	"risk_factors",
	"growth_indicators",
	"score_percentile",
}

// WriteCSV writes scored leads as CSV: the canonical lead columns,
// any extra source columns, then the scoring output columns.
func WriteCSV(w io.Writer, extraColumns []string, scored []model.ScoredLead) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := make([]string, 0, len(canonicalColumns)+len(extraColumns)+len(scoreColumns))
	header = append(header, canonicalColumns...)
	header = append(header, extraColumns...)
	header = append(header, scoreColumns...)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "leadio: write csv header")
	}

	for _, s := range scored {
		row := make([]string, 0, len(header))
		for _, col := range canonicalColumns {
			row = append(row, s.Field(col))
		}
		for _, col := range extraColumns {
			row = append(row, s.Extra[col])
		}
		for _, key := range scoreColumns[:7] {
			row = append(row, formatScore(s.SubScores[key]))
		}
		row = append(row,
			formatScore(s.Score),
			s.Rationale,
			s.RiskFactors,
			s.GrowthIndicators,
			formatScore(s.Percentile),
		)
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "leadio: write csv row for %q", s.Company)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "leadio: flush csv")
}

// formatScore renders a score without trailing zero noise.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
