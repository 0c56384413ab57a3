package scorer

import (
	"math"
	"net/url"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/lead-ranker/internal/model"
)

const (
	missingEmployeeScore = 25
	oversizedScore       = 25
	unmatchedSizeScore   = 35
	missingIndustryScore = 40
	unmatchedIndustry    = 45
	missingWebsiteScore  = 20
	websiteParseFailure  = 25
	websiteBaseScore     = 40
	financialBaseScore   = 45
	marketBaseScore      = 45
	maturityBaseScore    = 50
)

// scoreCompanySize maps an employee count onto the investment-size
// preference curve. Absent or unparsable counts score as zero-employee
// records. Within a range, counts near the top edge (fraction > 0.7)
// earn +3 and counts near the bottom (fraction < 0.3) lose 3.
func scoreCompanySize(raw string, cfg *Config) float64 {
	emp, ok := model.IntField(raw)
	if !ok {
		emp = 0
	}
	if emp == 0 {
		return missingEmployeeScore
	}

	for _, r := range cfg.EmployeeRanges {
		if emp >= r.Min && emp < r.Max {
			pos := float64(emp-r.Min) / float64(r.Max-r.Min)
			switch {
			case pos > 0.7:
				return math.Min(r.Score+3, 100)
			case pos < 0.3:
				return math.Max(r.Score-3, 0)
			default:
				return r.Score
			}
		}
	}

	if emp >= 5000 {
		return oversizedScore // too large for a typical PE target
	}
	return unmatchedSizeScore
}

// scoreIndustry resolves an industry name against the tier table.
// Exact match (after trimming and title-casing both sides) returns the
// tier score; otherwise two fuzzy strategies run independently and the
// better result wins: substring containment at 90% of the target score
// (longest target name preferred), and >50% word overlap at 80%.
// Keyword bonuses apply after base resolution.
func scoreIndustry(raw string, cfg *Config) float64 {
	if !model.Present(raw) {
		return missingIndustryScore
	}

	clean := cases.Title(language.English).String(strings.TrimSpace(raw))
	lower := strings.ToLower(clean)

	base := -1.0
	for _, tier := range cfg.IndustryTiers {
		if strings.EqualFold(tier.Name, clean) {
			base = tier.Score
			break
		}
	}

	if base < 0 {
		best := float64(unmatchedIndustry)
		bestWeight := 0

		for _, tier := range cfg.IndustryTiers {
			target := strings.ToLower(tier.Name)

			if strings.Contains(lower, target) || strings.Contains(target, lower) {
				if len(target) > bestWeight {
					best = tier.Score * 0.9
					bestWeight = len(target)
				}
			}

			targetWords := strings.Fields(target)
			if n := commonWordCount(targetWords, strings.Fields(lower)); n > 0 {
				if float64(n)/float64(len(targetWords)) > 0.5 {
					if ms := tier.Score * 0.8; ms > best {
						best = ms
					}
				}
			}
		}
		base = best
	}

	if containsAny(lower, cfg.IndustryTechBonus...) {
		base = math.Min(base+5, 100)
	}
	if containsAny(lower, cfg.IndustryServiceBonus...) {
		base = math.Min(base+3, 100)
	}
	return base
}

// scoreWebsite judges the registrable domain of the lead's website.
// Any parse failure caps the whole sub-score at 25.
func scoreWebsite(raw string, cfg *Config) float64 {
	if !model.Present(raw) {
		return missingWebsiteScore
	}

	score := float64(websiteBaseScore)

	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return websiteParseFailure
	}

	parts := strings.Split(strings.ToLower(u.Host), ".")
	if len(parts) >= 2 {
		name := parts[0]
		ext := "." + parts[len(parts)-1]

		score += extensionBonus(ext, cfg.ExtensionBonuses)

		// The 4-12 branch must win before the wider 3-15 branch.
		n := len(name)
		switch {
		case n >= 4 && n <= 12:
			score += 15
		case n >= 3 && n <= 15:
			score += 10
		}

		tech := 0.0
		for _, kw := range cfg.TechKeywords {
			if strings.Contains(name, kw) {
				tech += 5
			}
		}
		score += math.Min(tech, 15)

		if strings.ContainsFunc(name, unicode.IsDigit) {
			score -= 5
		}
		if strings.Contains(name, "-") {
			score -= 3
		}
		if isAlpha(name) && n >= 5 {
			score += 5
		}
	}

	return clamp(score)
}

// scoreFinancial combines revenue bracket, growth adjustment, and
// profitability. Unparsable values are treated as absent, never as
// errors.
func scoreFinancial(revenue, growth, profit string, cfg *Config) float64 {
	score := float64(financialBaseScore)

	if v, ok := model.FloatField(revenue); ok {
		for _, b := range cfg.RevenueBrackets {
			if v >= b.Min {
				score = b.Score
				break
			}
		}
	}

	if g, ok := model.FloatField(growth); ok {
		for _, b := range cfg.GrowthBrackets {
			if g >= b.Min {
				score += b.Delta
				break
			}
		}
	}

	if p, ok := model.FloatField(profit); ok {
		if p > 0 {
			score += 10
		} else {
			score -= 5
		}
	}

	return clamp(score)
}

// scoreMarketPosition reads leadership and innovation signals out of
// the company name and industry text.
func scoreMarketPosition(company, industry string, cfg *Config) float64 {
	score := float64(marketBaseScore)

	name := strings.ToLower(company)
	industryLower := strings.ToLower(industry)

	leadership := 0.0
	for _, term := range cfg.LeadershipTerms {
		if strings.Contains(name, term) {
			leadership += 8
		}
	}
	score += math.Min(leadership, 20)

	innovation := 0.0
	for _, term := range cfg.InnovationTerms {
		if strings.Contains(name, term) {
			innovation += 4
		}
	}
	score += math.Min(innovation, 16)

	if containsAny(industryLower, "software", "tech", "saas") {
		score += 12
	} else if containsAny(industryLower, "healthcare", "medical", "fintech") {
		score += 8
	}

	// Short, clean names read as established brands.
	if len(strings.Fields(name)) <= 3 && isAlnum(strings.ReplaceAll(name, " ", "")) {
		score += 5
	}

	return clamp(score)
}

// requiredFields and optionalFields drive the completeness sub-score.
var (
	requiredFields = []string{model.ColCompany, model.ColIndustry, model.ColWebsite, model.ColEmployeeCount}
	optionalFields = []string{model.ColRevenue, model.ColGrowth, model.ColFounded, model.ColLocation}
)

// scoreCompleteness counts field presence: 20 points per required
// field, 5 per optional, capped at 100.
func scoreCompleteness(lead model.Lead) float64 {
	score := 0.0
	for _, f := range requiredFields {
		if model.Present(lead.Field(f)) {
			score += 20
		}
	}
	for _, f := range optionalFields {
		if model.Present(lead.Field(f)) {
			score += 5
		}
	}
	return math.Min(score, 100)
}

// scoreMaturity scores company age from the founding year. Buckets are
// evaluated in priority order; only the first match applies.
func scoreMaturity(founded string, now time.Time) float64 {
	score := float64(maturityBaseScore)

	if year, ok := model.IntField(founded); ok {
		age := now.Year() - year
		switch {
		case age >= 5 && age <= 15: // sweet spot
			score += 20
		case age >= 3 && age <= 20:
			score += 10
		case age > 25:
			score -= 10
		}
	}

	return score
}

// extensionBonus resolves the bonus for a domain extension from the
// ordered table; an entry with no extensions is the catch-all.
func extensionBonus(ext string, table []ExtensionBonus) float64 {
	fallback := 0.0
	for _, e := range table {
		if len(e.Extensions) == 0 {
			fallback = e.Bonus
			continue
		}
		for _, candidate := range e.Extensions {
			if ext == candidate {
				return e.Bonus
			}
		}
	}
	return fallback
}

// commonWordCount returns how many distinct words the two slices share.
func commonWordCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}
	n := 0
	seen := make(map[string]bool, len(b))
	for _, w := range b {
		if set[w] && !seen[w] {
			seen[w] = true
			n++
		}
	}
	return n
}

// containsAny checks whether s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// clamp bounds a score to [0, 100].
func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}
