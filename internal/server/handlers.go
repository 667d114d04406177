// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"churn-inference/internal/common/errors"
	"churn-inference/internal/common/metrics"
	"churn-inference/internal/models"
)

type predictResponse struct {
	RequestID   string  `json:"requestId"`
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
}

type errorResponse struct {
	RequestID string       `json:"requestId"`
	Error     errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	start := time.Now()
	defer func() {
		metrics.PredictionDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	}()

	var rec models.CustomerRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, requestID, errors.NewInputValidationFailedError(err.Error()))
		return
	}

	result, err := s.service.Predict(r.Context(), &rec)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	s.writeJSON(w, http.StatusOK, predictResponse{
		RequestID:   requestID,
		Prediction:  result.Outcome,
		Probability: result.Probability,
		Label:       result.Label,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, check := range s.readiness {
		if err := check.Check(ctx); err != nil {
			s.logger.Warn("readiness check failed", map[string]interface{}{
				"check": check.Name,
				"error": err.Error(),
			})
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"check":  check.Name,
			})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	stdErr := errors.AsStandardError(err)

	status := http.StatusInternalServerError
	switch {
	case stdErr.Code == errors.ErrCodeInputValidationFailed:
		status = http.StatusBadRequest
	case errors.IsEncodingContractError(stdErr.Code):
		status = http.StatusUnprocessableEntity
	}

	s.writeJSON(w, status, errorResponse{
		RequestID: requestID,
		Error: errorPayload{
			Code:    string(stdErr.Code),
			Message: stdErr.Message,
			Details: stdErr.Details,
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
