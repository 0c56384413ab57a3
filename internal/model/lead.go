// Package model defines the lead data model shared by ingestion, the
// scoring engine, and export.
package model

import (
	"strconv"
	"strings"
)

// Canonical column names. Ingestion maps common synonyms onto these
// before the scorer ever sees a record.
const (
	ColCompany       = "Company"
	ColIndustry      = "Industry"
	ColWebsite       = "Website"
	ColEmployeeCount = "EmployeeCount"
	ColRevenue       = "Revenue"
	ColGrowth        = "Growth"
	ColProfit        = "Profit"
	ColFounded       = "Founded"
	ColLocation      = "Location"
)

// Sub-score component keys.
const (
	SubCompanySize    = "company_size_score"
	SubIndustry       = "industry_score"
	SubWebsite        = "website_quality_score"
	SubFinancial      = "financial_score"
	SubMarketPosition = "market_position_score"
	SubCompleteness   = "data_completeness_score"
	SubMaturity       = "company_maturity_score"
)

// Lead is a single input record. Only Company is required; every other
// field may be blank, and numeric fields may hold non-numeric text.
// Values are kept as raw strings so the scorer owns all parsing.
type Lead struct {
	Company       string `json:"company"`
	Industry      string `json:"industry,omitempty"`
	Website       string `json:"website,omitempty"`
	EmployeeCount string `json:"employee_count,omitempty"`
	Revenue       string `json:"revenue,omitempty"`
	Growth        string `json:"growth,omitempty"`
	Profit        string `json:"profit,omitempty"`
	Founded       string `json:"founded,omitempty"`
	Location      string `json:"location,omitempty"`

	// Extra holds source columns that did not map to a canonical field.
	// They ride along unchanged so exports reproduce the input shape.
	Extra map[string]string `json:"extra,omitempty"`
}

// Table couples leads with the non-canonical source columns in their
// original header order.
type Table struct {
	ExtraColumns []string
	Leads        []Lead
}

// ScoredLead is a Lead augmented with the engine's output columns.
// Values are immutable once written; re-scoring builds a new slice.
type ScoredLead struct {
	Lead

	SubScores        map[string]float64 `json:"sub_scores"`
	Score            float64            `json:"score"`
	Rationale        string             `json:"scoring_rationale"`
	RiskFactors      string             `json:"risk_factors"`
	GrowthIndicators string             `json:"growth_indicators"`
	Percentile       float64            `json:"score_percentile"`
}

// Field returns the canonical field value by column name.
func (l Lead) Field(col string) string {
	switch col {
	case ColCompany:
		return l.Company
	case ColIndustry:
		return l.Industry
	case ColWebsite:
		return l.Website
	case ColEmployeeCount:
		return l.EmployeeCount
	case ColRevenue:
		return l.Revenue
	case ColGrowth:
		return l.Growth
	case ColProfit:
		return l.Profit
	case ColFounded:
		return l.Founded
	case ColLocation:
		return l.Location
	default:
		return l.Extra[col]
	}
}

// SetField assigns the canonical field by column name. Unrecognized
// columns land in Extra.
func (l *Lead) SetField(col, val string) {
	switch col {
	case ColCompany:
		l.Company = val
	case ColIndustry:
		l.Industry = val
	case ColWebsite:
		l.Website = val
	case ColEmployeeCount:
		l.EmployeeCount = val
	case ColRevenue:
		l.Revenue = val
	case ColGrowth:
		l.Growth = val
	case ColProfit:
		l.Profit = val
	case ColFounded:
		l.Founded = val
	case ColLocation:
		l.Location = val
	default:
		if l.Extra == nil {
			l.Extra = make(map[string]string)
		}
		l.Extra[col] = val
	}
}

// Present reports whether a raw field value counts as present for
// scoring: non-missing and non-blank.
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// FloatField parses a numeric attribute the way scoring treats raw
// values: blank or unparsable means absent, never zero.
func FloatField(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntField parses an integer attribute. Float-formatted values such as
// "150.0" (common in spreadsheet exports) are truncated toward zero.
func IntField(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
