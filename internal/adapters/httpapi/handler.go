package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/brandsec/similarity-engine/internal/application"
	"github.com/brandsec/similarity-engine/internal/domain"
)

const maxBodyBytes = 1 << 20

// Service is the application surface the HTTP layer depends on.
type Service interface {
	Typosquat(ctx context.Context, p application.TyposquatParams) (*application.TyposquatResult, error)
	Similarity(ctx context.Context, p application.SimilarityParams) (*application.SimilarityResult, error)
	Keyword(ctx context.Context, p application.KeywordParams) (*application.KeywordResult, error)
	Algorithms() []application.AlgorithmInfo
	Healthy(ctx context.Context) bool
}

// Handler wires the search endpoints to the detection service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler constructs the HTTP handler with its dependencies.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// HandleTyposquat handles POST /search/typosquatting.
func (h *Handler) HandleTyposquat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req TyposquatRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Typosquat(r.Context(), application.TyposquatParams{
		Brand:      req.parsedBrand,
		Window:     req.parsedWindow,
		Algorithms: req.Algorithms,
		TLDs:       req.TLDs,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTyposquatResponse(res, &req, start))
}

// HandleSimilarity handles POST /search/similarity.
func (h *Handler) HandleSimilarity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req SimilarityRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Similarity(r.Context(), application.SimilarityParams{
		Brand:                req.parsedBrand,
		Window:               req.parsedWindow,
		LevenshteinThreshold: *req.LevenshteinThreshold,
		JaroWinklerThreshold: *req.JaroWinklerThreshold,
		HomographEnabled:     *req.HomographEnabled,
		TLDs:                 req.TLDs,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toSimilarityResponse(res, &req, start))
}

// HandleKeyword handles POST /search/keyword.
func (h *Handler) HandleKeyword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req KeywordRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.service.Keyword(r.Context(), application.KeywordParams{
		Keyword: req.Keyword,
		Window:  req.parsedWindow,
		TLDs:    req.TLDs,
		Limit:   *req.Limit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toKeywordResponse(res, &req, start))
}

// HandleAlgorithms handles GET /algorithms.
func (h *Handler) HandleAlgorithms(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"algorithms": h.service.Algorithms(),
	})
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "reachable"}
	status := http.StatusOK
	if !h.service.Healthy(r.Context()) {
		resp = HealthResponse{Status: "degraded", Database: "unreachable"}
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

// decode parses and validates a request body. It writes the error response
// itself and reports whether the handler should proceed.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req interface{ Validate() error }) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	if err := req.Validate(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	h.logger.Error("request failed",
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encoding failed", "error", err)
	}
}
