package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/services"
)

func (s *Server) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	lessonID := chi.URLParam(r, "lessonID")

	var in services.AnswerInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	rec, err := s.Progress.RecordAnswer(r.Context(), user.ID, lessonID, in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	lessonID := chi.URLParam(r, "lessonID")

	var in struct {
		CorrectCount   int `json:"correct_count"`
		TotalQuestions int `json:"total_questions"`
	}
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Progress.FinalizeSession(r.Context(), user.ID, lessonID, in.CorrectCount, in.TotalQuestions)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleMyProgress(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if lessonID := r.URL.Query().Get("lesson_id"); lessonID != "" {
		rec, err := s.Progress.GetProgress(r.Context(), user.ID, lessonID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, rec)
		return
	}

	records, err := s.Progress.ListProgress(r.Context(), progressFilterFromQuery(r, user.ID))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.Stats.StudentStats(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

// handleClassify serves browser clients that run the landmark detector
// locally and need the model's verdict for one frame.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var in struct {
		Landmarks []float64 `json:"landmarks"`
	}
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Classifier.Classify(r.Context(), in.Landmarks)
	if err != nil {
		log.Warn("classification failed: %v", err)
		handleError(w, r, errors.NewBadRequestError("classification failed"))
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"label":      result.Label,
		"confidence": result.Confidence,
		"confident":  result.Confident(),
	})
}
