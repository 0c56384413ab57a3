package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-ranker/internal/leadio"
	"github.com/sells-group/lead-ranker/internal/model"
	"github.com/sells-group/lead-ranker/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a batch of leads from a CSV or XLSX file",
	Long: `Score leads from a CSV or XLSX export.

Each lead gets seven component scores (size, industry, website quality,
financials, market position, data completeness, maturity), a weighted
0-100 composite, and batch-relative percentile adjustments. Output adds
rationale, risk factor, and growth indicator columns.

Examples:
  # Score a CSV and print a table
  score --input leads.csv

  # Score an XLSX export to CSV
  score --input leads.xlsx --format csv --output scored.csv

  # Keep only strong leads
  score --input leads.csv --min-score 70 --limit 50

  # Use custom scoring tables
  score --input leads.csv --tables tables.yaml`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("input", "", "input file path (.csv or .xlsx)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")
	f.Float64("min-score", 0, "drop leads scoring below this threshold")
	f.Int("limit", 0, "maximum number of results (0=all)")
	f.Int("concurrency", 0, "scoring workers (overrides config)")
	f.String("tables", "", "YAML scoring tables file (overrides config)")
	f.String("enrichment-key", "", "external enrichment API key (overrides config)")
	_ = scoreCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	limit, _ := cmd.Flags().GetInt("limit")

	if format != "table" && format != "csv" {
		return eris.Errorf("score: --format must be table or csv (got %q)", format)
	}

	scorerCfg, enrichmentKey, err := buildScorerConfig(cmd)
	if err != nil {
		return err
	}

	batchID := uuid.NewString()
	log := zap.L().With(
		zap.String("command", "score"),
		zap.String("batch_id", batchID),
	)

	table, err := readLeads(inputPath)
	if err != nil {
		return err
	}
	log.Info("loaded leads",
		zap.String("input", inputPath),
		zap.Int("leads", len(table.Leads)),
	)

	results, err := scorer.New(scorerCfg).ScoreBatch(ctx, table.Leads, enrichmentKey)
	if err != nil {
		return eris.Wrap(err, "score: batch scoring")
	}

	results = filterResults(results, minScore, limit)

	if err := outputResults(results, table.ExtraColumns, format, outputPath); err != nil {
		return err
	}

	printScoreSummary(results)
	return nil
}

// buildScorerConfig assembles the engine config from global config with
// CLI flag overrides applied.
func buildScorerConfig(cmd *cobra.Command) (scorer.Config, string, error) {
	tablesPath := cfg.Scoring.TablesPath
	if v, _ := cmd.Flags().GetString("tables"); v != "" {
		tablesPath = v
	}

	var c scorer.Config
	if tablesPath != "" {
		loaded, err := scorer.LoadTables(tablesPath)
		if err != nil {
			return scorer.Config{}, "", err
		}
		c = loaded
	} else {
		c = scorer.DefaultConfig()
	}

	if cfg.Scoring.Concurrency > 0 {
		c.Concurrency = cfg.Scoring.Concurrency
	}
	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		c.Concurrency = v
	}

	if err := scorer.Validate(c); err != nil {
		return scorer.Config{}, "", err
	}

	key := cfg.Scoring.EnrichmentKey
	if v, _ := cmd.Flags().GetString("enrichment-key"); v != "" {
		key = v
	}

	return c, key, nil
}

func readLeads(path string) (model.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return leadio.ReadXLSX(path)
	default:
		return leadio.ReadCSV(path)
	}
}

// filterResults sorts by score descending and applies the threshold
// and result cap. Equal scores keep their input order.
func filterResults(results []model.ScoredLead, minScore float64, limit int) []model.ScoredLead {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if minScore > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Score >= minScore {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func outputResults(results []model.ScoredLead, extraColumns []string, format, outputPath string) error {
	var w *os.File
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	} else {
		w = os.Stdout
	}

	switch format {
	case "csv":
		return leadio.WriteCSV(w, extraColumns, results)
	case "table":
		return writeScoreTable(w, results)
	default:
		return eris.Errorf("score: unsupported format %q", format)
	}
}

func writeScoreTable(w *os.File, results []model.ScoredLead) error {
	header := fmt.Sprintf("%-40s %-25s %6s %6s %5s  %s\n",
		"Company", "Industry", "Score", "Pctl", "Band", "Rationale")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 120)); err != nil {
		return eris.Wrap(err, "score: write table separator")
	}

	for _, r := range results {
		name := r.Company
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		industry := r.Industry
		if len(industry) > 25 {
			industry = industry[:22] + "..."
		}
		line := fmt.Sprintf("%-40s %-25s %6.1f %6.1f %5s  %s\n",
			name, industry, r.Score, r.Percentile, scorer.Band(r.Score), r.Rationale)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}

func printScoreSummary(results []model.ScoredLead) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	var high, medium, low int
	var sumScore float64
	maxScore, minScore := 0.0, 101.0
	for _, r := range results {
		sumScore += r.Score
		if r.Score > maxScore {
			maxScore = r.Score
		}
		if r.Score < minScore {
			minScore = r.Score
		}
		switch scorer.Band(r.Score) {
		case "high":
			high++
		case "medium":
			medium++
		default:
			low++
		}
	}
	total := len(results)
	fmt.Printf("\n--- Summary ---\n")
	fmt.Printf("Total scored:  %d\n", total)
	fmt.Printf("High (80+):    %d (%.1f%%)\n", high, float64(high)/float64(total)*100)
	fmt.Printf("Medium (60+):  %d (%.1f%%)\n", medium, float64(medium)/float64(total)*100)
	fmt.Printf("Low (<60):     %d (%.1f%%)\n", low, float64(low)/float64(total)*100)
	fmt.Printf("Score range:   %.1f - %.1f\n", minScore, maxScore)
	fmt.Printf("Average score: %.1f\n", sumScore/float64(total))
}
