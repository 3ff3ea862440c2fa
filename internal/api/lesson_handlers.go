package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmensah/signify/internal/catalog"
	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
)

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if category := r.URL.Query().Get("category"); category != "" {
		valid := false
		for _, c := range models.Categories() {
			if models.Category(category) == c {
				valid = true
				break
			}
		}
		if !valid {
			handleError(w, r, errors.NewBadRequestError("unknown category"))
			return
		}

		lessons, err := s.Catalog.ListByCategory(r.Context(), models.Category(category))
		if err != nil {
			handleError(w, r, err)
			return
		}
		log.Debug("listed %d lessons in category %s", len(lessons), category)
		respondJSON(w, r, http.StatusOK, lessons)
		return
	}

	lessons, err := s.Catalog.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, lessons)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, lesson)
}

// handleNameSequence previews the sign sequence a name-spelling session
// would quiz, so clients can show it before starting.
func (s *Server) handleNameSequence(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	signs := catalog.NameSignSequence(name)
	if len(signs) == 0 {
		handleError(w, r, errors.NewValidationError("name", "contains no letters to sign"))
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"lesson_id": catalog.NameLessonID,
		"signs":     signs,
	})
}
