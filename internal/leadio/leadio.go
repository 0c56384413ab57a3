// Package leadio reads lead tables from CSV and XLSX files and writes
// scored tables back out as CSV. It owns column aliasing: the scorer
// only ever sees canonical field names.
package leadio

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-ranker/internal/model"
)

// columnAliases maps canonical columns to accepted source headers, in
// preference order. The canonical name itself always wins.
var columnAliases = []struct {
	canonical string
	sources   []string
}{
	{model.ColCompany, []string{"Company", "Name", "Organization Name"}},
	{model.ColIndustry, []string{"Industry", "Sector"}},
	{model.ColWebsite, []string{"Website", "URL", "Company Website"}},
	{model.ColEmployeeCount, []string{"EmployeeCount", "Number of employees", "Employees"}},
	{model.ColRevenue, []string{"Revenue"}},
	{model.ColGrowth, []string{"Growth"}},
	{model.ColProfit, []string{"Profit"}},
	{model.ColFounded, []string{"Founded"}},
	{model.ColLocation, []string{"Location"}},
}

// tableFromRows builds a lead table from a header row and data rows.
// Source headers are aliased onto canonical fields; unrecognized
// columns are preserved in Extra in their original order. A source
// with no Company column (under any alias) is rejected: that is the
// caller-facing precondition of the scoring contract.
func tableFromRows(header []string, rows [][]string) (model.Table, error) {
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}

	// Resolve each canonical column to a source index.
	canonical := make(map[string]int)
	used := make(map[int]bool)
	for _, alias := range columnAliases {
		for _, candidate := range alias.sources {
			if idx, ok := colIdx[candidate]; ok {
				canonical[alias.canonical] = idx
				used[idx] = true
				break
			}
		}
	}

	if _, ok := canonical[model.ColCompany]; !ok {
		return model.Table{}, eris.Errorf(
			"leadio: missing required column %q (accepted aliases: Name, Organization Name)",
			model.ColCompany,
		)
	}

	var extraCols []string
	for i, col := range header {
		if !used[i] {
			extraCols = append(extraCols, strings.TrimSpace(col))
		}
	}

	var leads []model.Lead
	skipped := 0
	for _, row := range rows {
		var lead model.Lead
		for target, idx := range canonical {
			lead.SetField(target, getCol(row, idx))
		}
		for i, col := range header {
			if !used[i] {
				lead.SetField(strings.TrimSpace(col), getCol(row, i))
			}
		}

		if !model.Present(lead.Company) {
			skipped++
			zap.L().Debug("leadio: skipping row without company name")
			continue
		}
		leads = append(leads, lead)
	}

	if skipped > 0 {
		zap.L().Info("leadio: skipped rows without company name", zap.Int("rows", skipped))
	}

	return model.Table{ExtraColumns: extraCols, Leads: leads}, nil
}

// getCol safely retrieves a trimmed column value from a row.
func getCol(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
