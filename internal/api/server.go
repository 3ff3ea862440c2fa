// Package api is the HTTP surface: a JSON API with JWT bearer auth and
// role-gated route groups.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kmensah/signify/internal/auth"
	"github.com/kmensah/signify/internal/catalog"
	"github.com/kmensah/signify/internal/classifier"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/services"
)

type Server struct {
	Auth       services.AuthService
	Catalog    *catalog.Service
	Progress   services.ProgressService
	Stats      services.StatsService
	Classroom  services.ClassroomService
	Classifier classifier.Classifier
	Tokens     *auth.TokenManager
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/teacher/signup", s.handleTeacherSignup)
			r.Post("/teacher/login", s.handleEmailLogin)
			r.Post("/student/signup", s.handleStudentSignup)
			r.Post("/student/login", s.handleStudentLogin)
			r.Post("/individual/signup", s.handleIndividualSignup)
			r.Post("/individual/login", s.handleEmailLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/me", s.handleMe)

			r.Group(func(r chi.Router) {
				r.Use(requireRole(models.RoleStudent, models.RoleIndividual))

				r.Get("/lessons", s.handleListLessons)
				r.Get("/lessons/name-sequence", s.handleNameSequence)
				r.Get("/lessons/{id}", s.handleGetLesson)
				r.Post("/quiz/{lessonID}/answers", s.handleRecordAnswer)
				r.Post("/quiz/{lessonID}/finish", s.handleFinishSession)
				r.Get("/me/progress", s.handleMyProgress)
				r.Get("/me/stats", s.handleMyStats)
				r.Post("/classify", s.handleClassify)
			})

			r.Route("/teacher", func(r chi.Router) {
				r.Use(requireRole(models.RoleTeacher))

				r.Get("/students", s.handleRoster)
				r.Post("/students", s.handleAddStudent)
				r.Get("/students/{id}/stats", s.handleStudentStats)
				r.Get("/dashboard", s.handleDashboard)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
