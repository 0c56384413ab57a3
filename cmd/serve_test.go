package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/lead-ranker/internal/scorer"
)

func testMux() *http.ServeMux {
	return newServeMux(
		scorer.New(scorer.DefaultConfig()),
		"",
		rate.NewLimiter(rate.Inf, 0),
	)
}

func TestServeHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeScore(t *testing.T) {
	body := `{"leads":[
		{"company":"Acme","industry":"SaaS","website":"acme.com","employee_count":"150"},
		{"company":"Globex","industry":"Retail","employee_count":"3000"}
	]}`
	rec := httptest.NewRecorder()
	testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp scoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.BatchID)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Acme", resp.Results[0].Company)
	assert.Greater(t, resp.Results[0].Score, resp.Results[1].Score)
}

func TestServeScoreBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"no leads", `{"leads":[]}`},
		{"missing company", `{"leads":[{"industry":"SaaS"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServeScoreRateLimited(t *testing.T) {
	mux := newServeMux(
		scorer.New(scorer.DefaultConfig()),
		"",
		rate.NewLimiter(0, 0),
	)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"leads":[{"company":"Acme"}]}`)))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
