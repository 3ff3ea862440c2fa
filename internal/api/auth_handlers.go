package api

import (
	"net/http"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/services"
)

func (s *Server) handleTeacherSignup(w http.ResponseWriter, r *http.Request) {
	var in services.TeacherSignupInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Auth.SignupTeacher(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, result)
}

func (s *Server) handleStudentSignup(w http.ResponseWriter, r *http.Request) {
	var in services.StudentSignupInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Auth.SignupStudent(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, result)
}

func (s *Server) handleIndividualSignup(w http.ResponseWriter, r *http.Request) {
	var in services.IndividualSignupInput
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Auth.SignupIndividual(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, result)
}

// handleEmailLogin serves both teacher and individual logins; the role
// comes from the stored account, not the route.
func (s *Server) handleEmailLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Auth.LoginWithEmail(r.Context(), in.Email, in.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleStudentLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username    string `json:"username"`
		TeacherCode string `json:"teacher_code"`
	}
	if err := decodeJSON(r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.Auth.LoginStudent(r.Context(), in.Username, in.TeacherCode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		logger.FromContext(r.Context()).Warn("no user in context on /me")
		handleError(w, r, errors.NewUnauthorizedError("authentication required"))
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}
