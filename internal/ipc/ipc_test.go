package ipc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/anthropics/timeline-engine/internal/config"
	"github.com/anthropics/timeline-engine/internal/domain"
	"github.com/anthropics/timeline-engine/internal/store"
	"github.com/anthropics/timeline-engine/internal/timeline"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("create db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &Handler{
		Engine:      timeline.New(config.Default(), db),
		DB:          db,
		Estimates:   &store.EstimateRepo{},
		Simulations: &store.SimulationRepo{},
	}
}

func estimateBody(method string, simulate bool) string {
	return fmt.Sprintf(`{
		"opportunity": {"description": "Inventory forecasting platform"},
		"roadmap": {
			"overall_complexity": "medium",
			"architecture_pattern": "monolithic",
			"phases": [
				{"phase_id": "foundation", "duration_weeks": 4, "effort_hours": 320},
				{"phase_id": "core_development", "duration_weeks": 8, "effort_hours": 640}
			]
		},
		"estimation_method": %q,
		"run_simulation": %t,
		"iterations": 200,
		"seed": 42
	}`, method, simulate)
}

func TestCreateEstimate_Success(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString(estimateBody("expert_judgment", false)))
	w := httptest.NewRecorder()

	h.CreateEstimate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var est domain.TimelineEstimate
	json.NewDecoder(w.Body).Decode(&est)
	if est.EstimateID == "" {
		t.Error("expected an estimate id")
	}
	if est.Method != domain.MethodExpertJudgment {
		t.Errorf("method = %q, want expert_judgment", est.Method)
	}
	if len(est.Tasks) == 0 {
		t.Error("expected decomposed tasks")
	}
}

func TestCreateEstimate_InvalidBody(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	h.CreateEstimate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateEstimate_MissingMethod(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString(`{"roadmap":{}}`))
	w := httptest.NewRecorder()

	h.CreateEstimate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateEstimate_UnknownMethod(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString(estimateBody("crystal_ball", false)))
	w := httptest.NewRecorder()

	h.CreateEstimate(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	var apiErr APIError
	json.NewDecoder(w.Body).Decode(&apiErr)
	if apiErr.Code != domain.ErrUnknownMethod.Code {
		t.Errorf("code = %d, want %d", apiErr.Code, domain.ErrUnknownMethod.Code)
	}
}

func TestGetEstimate_RoundTrip(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString(estimateBody("expert_judgment", false)))
	w := httptest.NewRecorder()
	h.CreateEstimate(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}

	var created domain.TimelineEstimate
	json.NewDecoder(w.Body).Decode(&created)

	srv := NewServer(h, ":0")
	get := httptest.NewRequest(http.MethodGet, "/api/v1/estimate/"+created.EstimateID, nil)
	w = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, get)

	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got domain.TimelineEstimate
	json.NewDecoder(w.Body).Decode(&got)
	if got.EstimateID != created.EstimateID {
		t.Errorf("EstimateID = %q, want %q", got.EstimateID, created.EstimateID)
	}
	if got.TotalDurationDays != created.TotalDurationDays {
		t.Errorf("TotalDurationDays = %f, want %f", got.TotalDurationDays, created.TotalDurationDays)
	}
}

func TestGetEstimate_NotFound(t *testing.T) {
	h := newTestHandler(t)
	srv := NewServer(h, ":0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimate/nope", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListEstimates(t *testing.T) {
	h := newTestHandler(t)

	for _, method := range []string{"expert_judgment", "function_point"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString(estimateBody(method, false)))
		w := httptest.NewRecorder()
		h.CreateEstimate(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d", method, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	w := httptest.NewRecorder()
	h.ListEstimates(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var list []store.EstimateSummary
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 2 {
		t.Errorf("list = %d rows, want 2", len(list))
	}
}

func TestListEstimates_Empty(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimates", nil)
	w := httptest.NewRecorder()
	h.ListEstimates(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body == "null\n" {
		t.Error("empty list should marshal as [], not null")
	}
}

func TestGetSimulation(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate", bytes.NewBufferString(estimateBody("monte_carlo", true)))
	w := httptest.NewRecorder()
	h.CreateEstimate(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created domain.TimelineEstimate
	json.NewDecoder(w.Body).Decode(&created)
	if created.Simulation == nil {
		t.Fatal("expected a simulation on the created estimate")
	}

	srv := NewServer(h, ":0")
	get := httptest.NewRequest(http.MethodGet, "/api/v1/estimate/"+created.EstimateID+"/simulation", nil)
	w = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, get)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var sim domain.MonteCarloSimulation
	json.NewDecoder(w.Body).Decode(&sim)
	if sim.MeanDays != created.Simulation.MeanDays {
		t.Errorf("MeanDays = %f, want %f", sim.MeanDays, created.Simulation.MeanDays)
	}
}

func TestGetSimulation_NotFound(t *testing.T) {
	h := newTestHandler(t)
	srv := NewServer(h, ":0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/estimate/nope/simulation", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	srv := NewServer(h, ":0")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/estimates", nil)
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}
