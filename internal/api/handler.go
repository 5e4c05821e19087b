package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rrc-engineering/ilr-calculator/internal/allocator"
	"github.com/rrc-engineering/ilr-calculator/internal/metrics"
	"github.com/rrc-engineering/ilr-calculator/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires allocator and storage dependencies into HTTP handlers.
type Handler struct {
	allocator allocator.Allocator
	storage   storage.Storage

	clock func() time.Time

	mu                  sync.RWMutex
	parametersUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(alloc allocator.Allocator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		allocator: alloc,
		storage:   store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.parametersUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetParameters(w http.ResponseWriter, r *http.Request) {
	_ = r
	params, err := h.storage.GetParameters()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := parametersResponse{
		Parameters: parametersPayload{
			ModulesPerString: params.ModulesPerString,
			ModulePowerW:     params.ModulePowerW,
			InverterACKVA:    params.InverterACKVA,
		},
		UpdatedAt: h.currentParametersUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutParameters(w http.ResponseWriter, r *http.Request) {
	var req parametersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	params := metrics.Parameters{
		ModulesPerString: req.ModulesPerString,
		ModulePowerW:     req.ModulePowerW,
		InverterACKVA:    req.InverterACKVA,
	}
	if err := h.storage.SetParameters(params); err != nil {
		if errors.Is(err, metrics.ErrInvalidParameters) {
			writeError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markParametersUpdated()

	stored, err := h.storage.GetParameters()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := parametersResponse{
		Parameters: parametersPayload{
			ModulesPerString: stored.ModulesPerString,
			ModulePowerW:     stored.ModulePowerW,
			InverterACKVA:    stored.InverterACKVA,
		},
		UpdatedAt: h.currentParametersUpdatedAt(),
		Message:   "Plant parameters updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDistribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	quantities := req.StringQuantities
	if len(quantities) == 0 && req.StringQuantitiesRaw != "" {
		// Comma-separated form input, as submitted by the dashboard UI.
		parsed, parseErr := allocator.ParseQuantities(req.StringQuantitiesRaw)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", parseErr.Error())
			return
		}
		quantities = parsed
	}
	if len(quantities) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "stringQuantities must contain at least one value")
		return
	}

	params, err := h.storage.GetParameters()
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if req.ModulesPerString != nil {
		params.ModulesPerString = *req.ModulesPerString
	}
	if req.ModulePowerW != nil {
		params.ModulePowerW = *req.ModulePowerW
	}
	if req.InverterACKVA != nil {
		params.InverterACKVA = *req.InverterACKVA
	}

	start := time.Now()
	result, allocErr := h.allocator.Distribute(quantities, req.Inverters)
	if allocErr != nil {
		switch {
		case errors.Is(allocErr, allocator.ErrInvalidInverterCount):
			writeError(w, http.StatusBadRequest, "Invalid configuration", allocErr.Error())
		case errors.Is(allocErr, allocator.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "Invalid request", allocErr.Error())
		default:
			writeInternalError(w, allocErr)
		}
		return
	}

	perInverter, stats, metricsErr := metrics.Compute(result.Sums, params)
	elapsed := time.Since(start)

	if metricsErr != nil {
		if errors.Is(metricsErr, metrics.ErrInvalidParameters) {
			writeError(w, http.StatusBadRequest, "Invalid parameters", metricsErr.Error())
			return
		}
		writeInternalError(w, metricsErr)
		return
	}

	inverters := make([]inverterPayload, len(perInverter))
	for i, m := range perInverter {
		inverters[i] = inverterPayload{
			Slot:         m.Slot,
			Strings:      result.Groups[i],
			TotalStrings: m.TotalStrings,
			DCPowerKW:    m.DCPowerKW,
			LoadingRatio: m.LoadingRatio,
		}
	}

	resp := distributeResponse{
		Inverters:    inverters,
		TotalStrings: result.TotalStrings(),
		Stats: statsPayload{
			Mean:   stats.Mean,
			Min:    stats.Min,
			Max:    stats.Max,
			StdDev: stats.StdDev,
		},
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentParametersUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.parametersUpdatedAt
}

func (h *Handler) markParametersUpdated() {
	h.mu.Lock()
	h.parametersUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type parametersRequest struct {
	ModulesPerString int     `json:"modulesPerString"`
	ModulePowerW     float64 `json:"modulePowerW"`
	InverterACKVA    float64 `json:"inverterAcKva"`
}

type parametersPayload struct {
	ModulesPerString int     `json:"modulesPerString"`
	ModulePowerW     float64 `json:"modulePowerW"`
	InverterACKVA    float64 `json:"inverterAcKva"`
}

type parametersResponse struct {
	Parameters parametersPayload `json:"parameters"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Message    string            `json:"message,omitempty"`
}

type distributeRequest struct {
	StringQuantities    []int    `json:"stringQuantities"`
	StringQuantitiesRaw string   `json:"stringQuantitiesRaw,omitempty"`
	Inverters           int      `json:"inverters"`
	ModulesPerString    *int     `json:"modulesPerString,omitempty"`
	ModulePowerW        *float64 `json:"modulePowerW,omitempty"`
	InverterACKVA       *float64 `json:"inverterAcKva,omitempty"`
}

type inverterPayload struct {
	Slot         int     `json:"slot"`
	Strings      []int   `json:"strings"`
	TotalStrings int     `json:"totalStrings"`
	DCPowerKW    float64 `json:"dcPowerKw"`
	LoadingRatio float64 `json:"loadingRatio"`
}

type statsPayload struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

type distributeResponse struct {
	Inverters         []inverterPayload `json:"inverters"`
	TotalStrings      int               `json:"totalStrings"`
	Stats             statsPayload      `json:"stats"`
	CalculationTimeMs int64             `json:"calculationTimeMs"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
