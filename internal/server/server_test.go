package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"StrataScan/internal/cache"
	"StrataScan/internal/collector"
	"StrataScan/internal/layer"
	"StrataScan/internal/model"
	"StrataScan/internal/pipeline"
	"StrataScan/internal/recorder"
	"StrataScan/internal/scoring"
)

func newTestServer() *Server {
	log := zerolog.Nop()
	policy := scoring.DefaultPolicy()
	mock := &collector.MockFetcher{}
	macro := layer.NewMacroAnalyzer(mock, log)
	analyzer := pipeline.NewAnalyzer(
		macro,
		layer.NewScreener(mock, policy, []string{"AAPL", "MSFT"}, log),
		layer.NewConfirmer(mock, policy, log),
		log,
	)
	return New(":0", "test", analyzer, macro, cache.NewRunStore(), recorder.NewNoopRecorder(), log)
}

func doRequest(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid envelope from %s %s: %v", method, path, err)
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	w, env := doRequest(t, s, http.MethodGet, "/health")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("health check failed: %d %+v", w.Code, env)
	}
}

func TestLatest_EmptyStore(t *testing.T) {
	s := newTestServer()
	w, env := doRequest(t, s, http.MethodGet, "/api/analysis/latest")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty store, got %d", w.Code)
	}
	if env.Success {
		t.Error("envelope must report failure")
	}
}

func TestAnalyzeThenFetch(t *testing.T) {
	s := newTestServer()

	w, env := doRequest(t, s, http.MethodPost, "/api/analyze")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("analyze failed: %d %+v", w.Code, env)
	}

	w, env = doRequest(t, s, http.MethodGet, "/api/analysis/latest")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("latest after analyze failed: %d %+v", w.Code, env)
	}

	// Round-trip the run ID through the by-ID endpoint.
	raw, err := json.Marshal(env.Data)
	if err != nil {
		t.Fatal(err)
	}
	var result model.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result.RunID == "" {
		t.Fatal("latest run missing an ID")
	}

	w, env = doRequest(t, s, http.MethodGet, "/api/analysis/runs/"+result.RunID)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("run by ID failed: %d %+v", w.Code, env)
	}

	w, _ = doRequest(t, s, http.MethodGet, "/api/analysis/runs/no-such-run")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown run, got %d", w.Code)
	}
}

func TestMacroEndpoint(t *testing.T) {
	s := newTestServer()
	w, env := doRequest(t, s, http.MethodGet, "/api/macro")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("macro endpoint failed: %d %+v", w.Code, env)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("inbound request ID must be honored, got %q", got)
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("a request ID must be generated when absent")
	}
}
