package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmensah/signify/internal/logger"
)

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	students, err := s.Classroom.Roster(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, students)
}

func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var in struct {
		FullName string `json:"full_name"`
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	student, err := s.Classroom.AddStudent(r.Context(), user.ID, in.FullName, in.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("student added to roster: %s", student.ID)
	respondJSON(w, r, http.StatusCreated, student)
}

func (s *Server) handleStudentStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	studentID := chi.URLParam(r, "id")

	stats, err := s.Classroom.StudentStats(r.Context(), user.ID, studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	dashboard, err := s.Classroom.Dashboard(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, dashboard)
}
