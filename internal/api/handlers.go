package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/agriyield/internal/model"
	"github.com/yourusername/agriyield/internal/models"
)

// Predictor is the prediction service the API fronts.
type Predictor interface {
	Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResult, error)
	ModelInfo() (model.ModelInfo, error)
}

// handlePredict runs a prediction for the posted request.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		fields := make([]string, 0, 1)
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				fields = append(fields, fe.Field())
			}
		}
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: fields})
		return
	}

	result, err := s.predictor.Predict(r.Context(), req.toModel())
	if err != nil {
		s.writePredictError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writePredictError(w http.ResponseWriter, err error) {
	var inputErr *models.InputError
	if errors.As(err, &inputErr) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: inputErr.Fields})
		return
	}

	var viabilityErr *models.ViabilityError
	if errors.As(err, &viabilityErr) {
		v := viabilityErr.Verdict
		s.writeJSON(w, http.StatusUnprocessableEntity, viabilityResponse{
			Viable:         false,
			Reason:         v.Reason,
			Recommendation: v.Recommendation,
			Severity:       string(v.Severity),
			Alternatives:   v.Alternatives,
		})
		return
	}

	if errors.Is(err, models.ErrModelNotLoaded) {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	s.logger.WithError(err).Error("Prediction failed")
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "prediction failed"})
}

// handleModelInfo reports the serving model's identity.
func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.predictor.ModelInfo()
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleListPredictions returns recent prediction history.
func (s *Server) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "prediction history is not enabled"})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be between 1 and 200"})
			return
		}
		limit = parsed
	}

	predictions, err := s.history.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list predictions")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list predictions"})
		return
	}
	if predictions == nil {
		predictions = []*models.StoredPrediction{}
	}

	s.writeJSON(w, http.StatusOK, predictions)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": s.serviceName,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).WithField("status", status).Warn("Failed to encode response")
	}
}
