// Package ipc provides the HTTP API for the Timeline Engine.
package ipc

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anthropics/timeline-engine/internal/domain"
	"github.com/anthropics/timeline-engine/internal/store"
	"github.com/anthropics/timeline-engine/internal/timeline"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Engine      *timeline.Engine
	DB          *sql.DB
	Estimates   *store.EstimateRepo
	Simulations *store.SimulationRepo
}

// APIError is a structured error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateEstimate handles POST /api/v1/estimate. The body is the engine's
// EstimateRequest; the full generated estimate is returned and persisted.
func (h *Handler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req domain.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "invalid request body"})
		return
	}
	if req.Method == "" {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "estimation_method is required"})
		return
	}

	est, err := h.Engine.Generate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, est)
}

// GetEstimate handles GET /api/v1/estimate/{estimateID}.
func (h *Handler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	estimateID := r.PathValue("estimateID")
	est, err := h.Estimates.GetByID(r.Context(), h.DB, estimateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// ListEstimates handles GET /api/v1/estimates.
func (h *Handler) ListEstimates(w http.ResponseWriter, r *http.Request) {
	list, err := h.Estimates.List(r.Context(), h.DB)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []store.EstimateSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetSimulation handles GET /api/v1/estimate/{estimateID}/simulation.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	estimateID := r.PathValue("estimateID")
	sim, err := h.Simulations.GetByEstimate(r.Context(), h.DB, estimateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var engErr *domain.EngineError
	if errors.As(err, &engErr) {
		status := http.StatusInternalServerError
		switch engErr.Code {
		case domain.ErrEstimateNotFound.Code:
			status = http.StatusNotFound
		case domain.ErrUnknownMethod.Code,
			domain.ErrInvalidComplexity.Code,
			domain.ErrInvalidPattern.Code,
			domain.ErrInvalidPhase.Code,
			domain.ErrBadIterations.Code:
			status = http.StatusUnprocessableEntity
		case domain.ErrDependencyCycle.Code,
			domain.ErrDanglingDependency.Code,
			domain.ErrDuplicateTask.Code:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, APIError{Code: engErr.Code, Message: engErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, APIError{Code: -1, Message: err.Error()})
}
