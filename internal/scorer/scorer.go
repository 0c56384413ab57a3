package scorer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lead-ranker/internal/model"
)

// fallbackScore is assigned when scoring a single lead faults.
const fallbackScore = 45

// LeadScorer scores batches of leads against an immutable Config.
type LeadScorer struct {
	cfg Config
	now func() time.Time

	// sub computes the component scores for one lead. Tests swap it to
	// exercise the per-record fault containment.
	sub func(model.Lead, time.Time) map[string]float64
}

// New creates a LeadScorer with the given config.
func New(cfg Config) *LeadScorer {
	s := &LeadScorer{cfg: cfg, now: time.Now}
	s.sub = s.subScores
	return s
}

// ScoreBatch scores every lead and then applies the batch-relative
// percentile adjustment and percentile-rank column. It always returns
// one output row per input row: a lead whose scoring faults is emitted
// with the fallback score and an error-describing rationale. The
// enrichment key is accepted for interface compatibility and is not
// used by the scoring path.
func (s *LeadScorer) ScoreBatch(ctx context.Context, leads []model.Lead, enrichmentKey string) ([]model.ScoredLead, error) {
	log := zap.L()
	log.Info("scorer: starting batch", zap.Int("leads", len(leads)))
	if enrichmentKey != "" {
		log.Debug("scorer: enrichment key provided but unused by scoring")
	}

	results := make([]model.ScoredLead, len(leads))
	now := s.now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, lead := range leads {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = s.scoreOne(lead, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Batch normalization is a barrier: every composite must be known
	// before any score is adjusted.
	s.normalize(results)

	high, medium, low := 0, 0, 0
	for i := range results {
		switch Band(results[i].Score) {
		case "high":
			high++
		case "medium":
			medium++
		default:
			low++
		}
	}
	log.Info("scorer: batch complete",
		zap.Int("high", high),
		zap.Int("medium", medium),
		zap.Int("low", low),
	)

	return results, nil
}

// scoreOne computes the full scored record for a single lead. Any
// fault is contained at the record boundary.
func (s *LeadScorer) scoreOne(lead model.Lead, now time.Time) (out model.ScoredLead) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("scorer: lead scoring failed",
				zap.String("company", lead.Company),
				zap.Any("cause", r),
			)
			out = model.ScoredLead{
				Lead:      lead,
				Score:     fallbackScore,
				Rationale: fmt.Sprintf("Scoring error: %v", r),
			}
		}
	}()

	sub := s.sub(lead, now)
	return model.ScoredLead{
		Lead:             lead,
		SubScores:        sub,
		Score:            computeComposite(sub, &s.cfg),
		Rationale:        buildRationale(sub, lead),
		RiskFactors:      buildRiskFactors(sub),
		GrowthIndicators: buildGrowthIndicators(sub, lead),
	}
}

// subScores computes the seven named component scores for one lead.
func (s *LeadScorer) subScores(lead model.Lead, now time.Time) map[string]float64 {
	return map[string]float64{
		model.SubCompanySize:    scoreCompanySize(lead.EmployeeCount, &s.cfg),
		model.SubIndustry:       scoreIndustry(lead.Industry, &s.cfg),
		model.SubWebsite:        scoreWebsite(lead.Website, &s.cfg),
		model.SubFinancial:      scoreFinancial(lead.Revenue, lead.Growth, lead.Profit, &s.cfg),
		model.SubMarketPosition: scoreMarketPosition(lead.Company, lead.Industry, &s.cfg),
		model.SubCompleteness:   scoreCompleteness(lead),
		model.SubMaturity:       scoreMaturity(lead.Founded, now),
	}
}

// normalize applies the percentile-relative score adjustment and the
// percentile-rank column in place. Percentiles are batch-relative, so
// any change to batch membership requires re-running this pass.
func (s *LeadScorer) normalize(results []model.ScoredLead) {
	if len(results) == 0 {
		return
	}

	scores := make([]float64, len(results))
	for i := range results {
		scores[i] = results[i].Score
	}

	pct := computePercentiles(scores)
	zap.L().Debug("scorer: batch percentiles",
		zap.Float64("p10", pct.P10),
		zap.Float64("p50", pct.P50),
		zap.Float64("p90", pct.P90),
	)

	for i := range results {
		results[i].Score = adjustRelative(results[i].Score, pct)
		scores[i] = results[i].Score
	}

	for i, rank := range percentileRanks(scores) {
		results[i].Percentile = rank
	}
}
