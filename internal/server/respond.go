package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"go.uber.org/zap"
)

// Response statuses
const (
	StatusOK               = "ok"
	StatusInsufficientData = "insufficient_data"
)

// envelope wraps every successful calculator response
type envelope struct {
	Status     string `json:"status"`
	Result     any    `json:"result,omitempty"`
	Reason     string `json:"reason,omitempty"`
	SnapshotID string `json:"snapshotId,omitempty"`
}

type errorBody struct {
	Error        string `json:"error"`
	Field        string `json:"field,omitempty"`
	Reason       string `json:"reason,omitempty"`
	RequiredTier string `json:"requiredTier,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and JSON body
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := domain.IsValidationError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Field: ve.Field, Reason: ve.Reason})
		return
	}

	switch {
	case errors.Is(err, domain.ErrFeatureLocked):
		writeJSON(w, http.StatusPaymentRequired, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientData):
		writeJSON(w, http.StatusOK, envelope{Status: StatusInsufficientData, Reason: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// decode reads a JSON body, rejecting unknown fields and oversized payloads
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}
