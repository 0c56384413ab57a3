package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/lead-ranker/internal/model"
	"github.com/sells-group/lead-ranker/internal/scorer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for batch scoring requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scorerCfg, enrichmentKey, err := buildScorerConfig(cmd)
		if err != nil {
			return err
		}

		mux := newServeMux(
			scorer.New(scorerCfg),
			enrichmentKey,
			rate.NewLimiter(rate.Limit(cfg.Server.RatePerSec), cfg.Server.Burst),
		)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	f := serveCmd.Flags()
	f.IntVar(&servePort, "port", 0, "server port (default from config)")
	f.Int("concurrency", 0, "scoring workers (overrides config)")
	f.String("tables", "", "YAML scoring tables file (overrides config)")
	f.String("enrichment-key", "", "external enrichment API key (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

type scoreRequest struct {
	Leads []model.Lead `json:"leads"`

	// EnrichmentKey overrides the configured key for this request. It
	// is accepted for interface compatibility and unused by scoring.
	EnrichmentKey string `json:"enrichment_key,omitempty"`
}

type scoreResponse struct {
	BatchID string             `json:"batch_id"`
	Results []model.ScoredLead `json:"results"`
}

func newServeMux(s *scorer.LeadScorer, enrichmentKey string, limiter *rate.Limiter) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /score", func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if len(req.Leads) == 0 {
			http.Error(w, `{"error":"leads is required"}`, http.StatusBadRequest)
			return
		}
		for i, lead := range req.Leads {
			if !model.Present(lead.Company) {
				http.Error(w, fmt.Sprintf(`{"error":"lead %d is missing company"}`, i), http.StatusBadRequest)
				return
			}
		}

		key := enrichmentKey
		if req.EnrichmentKey != "" {
			key = req.EnrichmentKey
		}

		batchID := uuid.NewString()
		results, err := s.ScoreBatch(r.Context(), req.Leads, key)
		if err != nil {
			zap.L().Error("batch scoring failed",
				zap.String("batch_id", batchID),
				zap.Error(err),
			)
			http.Error(w, `{"error":"scoring failed"}`, http.StatusInternalServerError)
			return
		}

		zap.L().Info("batch scoring complete",
			zap.String("batch_id", batchID),
			zap.Int("leads", len(results)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(scoreResponse{BatchID: batchID, Results: results})
	})

	return mux
}
