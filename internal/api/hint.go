package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labtutor/labtutor/internal/hint"
	"github.com/labtutor/labtutor/internal/log"
)

// Hint request bounds.
const (
	MaxQuestionLength   = 4000
	MaxLabContextLength = 2000
)

// HintHandler handles the hint endpoint.
type HintHandler struct {
	service *hint.Service
	logger  log.Logger
}

// NewHintHandler creates a new hint handler.
func NewHintHandler(service *hint.Service, logger log.Logger) *HintHandler {
	return &HintHandler{service: service, logger: logger}
}

// RegisterRoutes registers hint routes on the given mux.
func (h *HintHandler) RegisterRoutes(mux *http.ServeMux, authed func(http.Handler) http.Handler) {
	mux.Handle("POST /api/hint", authed(http.HandlerFunc(h.requestHint)))
}

// HintRequest is the request body for POST /api/hint.
type HintRequest struct {
	Question   string `json:"question"`
	LabContext string `json:"lab_context,omitempty"`
	Level      int    `json:"level"`
}

// requestHint answers a learner's question with a hint at the requested level.
func (h *HintHandler) requestHint(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		h.logger.Error("hint service is nil")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	var req HintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if len(req.Question) > MaxQuestionLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "question too long (max 4000 characters)")
		return
	}
	if len(req.LabContext) > MaxLabContextLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "lab_context too long (max 2000 characters)")
		return
	}

	resp, err := h.service.Answer(r.Context(), hint.Request{
		Question:   req.Question,
		LabContext: req.LabContext,
		Level:      req.Level,
	})
	if err != nil {
		if errors.Is(err, hint.ErrEmptyQuestion) {
			writeError(w, http.StatusBadRequest, "invalid_request", "question is required")
			return
		}
		h.logger.Error("failed to generate hint", "error", err)
		writeError(w, http.StatusServiceUnavailable, "generation_failed", "failed to generate hint")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
