package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmensah/signify/internal/auth"
	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
)

const minPasswordLength = 6

// Role prefixes for generated invite codes.
const (
	teacherCodePrefix    = "TCHR"
	studentCodePrefix    = "STD"
	individualCodePrefix = "IND"
)

// TeacherSignupInput holds a teacher registration request.
type TeacherSignupInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	School   string `json:"school"`
	Password string `json:"password"`
}

// StudentSignupInput holds a student registration request. Students
// authenticate with their teacher's invite code, not a password.
type StudentSignupInput struct {
	FullName    string `json:"full_name"`
	Username    string `json:"username"`
	TeacherCode string `json:"teacher_code"`
}

// IndividualSignupInput holds a self-guided learner registration request.
type IndividualSignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Level    string `json:"level"`
	Password string `json:"password"`
}

// AuthResult bundles the created or authenticated user with its session token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles signup and login for all three roles
type AuthService interface {
	SignupTeacher(ctx context.Context, in TeacherSignupInput) (*AuthResult, error)
	SignupStudent(ctx context.Context, in StudentSignupInput) (*AuthResult, error)
	SignupIndividual(ctx context.Context, in IndividualSignupInput) (*AuthResult, error)
	LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error)
	LoginStudent(ctx context.Context, username, teacherCode string) (*AuthResult, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) SignupTeacher(ctx context.Context, in TeacherSignupInput) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	in.Email = normalizeEmail(in.Email)
	if in.FullName == "" {
		return nil, errors.NewValidationError("full_name", "must not be empty")
	}
	if in.Email == "" {
		return nil, errors.NewValidationError("email", "must not be empty")
	}
	if len(in.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password", "must be at least 6 characters")
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Role:         models.RoleTeacher,
		FullName:     in.FullName,
		Email:        in.Email,
		School:       in.School,
		Code:         auth.NewCode(teacherCodePrefix),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		log.Error("failed to insert teacher: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("teacher registered: id=%s, code=%s", user.ID, user.Code)
	return s.issue(&user)
}

func (s *authService) SignupStudent(ctx context.Context, in StudentSignupInput) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	in.Username = strings.TrimSpace(in.Username)
	if in.FullName == "" {
		return nil, errors.NewValidationError("full_name", "must not be empty")
	}
	if in.Username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}

	teacher, err := s.resolveTeacher(ctx, in.TeacherCode)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.GetByRosterUsername(ctx, teacher.ID, in.Username)
	if err != nil {
		log.Error("failed to check roster username: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if taken != nil {
		return nil, errors.NewConflictError("username already taken in this class")
	}

	user := models.User{
		ID:          uuid.NewString(),
		Role:        models.RoleStudent,
		FullName:    in.FullName,
		Username:    in.Username,
		TeacherID:   teacher.ID,
		TeacherCode: teacher.Code,
		Code:        auth.NewCode(studentCodePrefix),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		log.Error("failed to insert student: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("student registered: id=%s, teacher=%s", user.ID, teacher.ID)
	return s.issue(&user)
}

func (s *authService) SignupIndividual(ctx context.Context, in IndividualSignupInput) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	in.Email = normalizeEmail(in.Email)
	if in.Username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}
	if in.Email == "" {
		return nil, errors.NewValidationError("email", "must not be empty")
	}
	switch in.Level {
	case "beginner", "intermediate", "advanced":
	default:
		return nil, errors.NewValidationError("level", "must be beginner, intermediate or advanced")
	}
	if len(in.Password) < minPasswordLength {
		return nil, errors.NewValidationError("password", "must be at least 6 characters")
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Role:         models.RoleIndividual,
		FullName:     in.Username,
		Username:     in.Username,
		Email:        in.Email,
		Level:        in.Level,
		Code:         auth.NewCode(individualCodePrefix),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		log.Error("failed to insert individual: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("individual learner registered: id=%s", user.ID)
	return s.issue(&user)
}

// LoginWithEmail authenticates teachers and individual learners.
func (s *authService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		log.Error("failed to look up user by email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		// Same answer whether the email or the password is wrong.
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	log.Info("login: id=%s, role=%s", user.ID, user.Role)
	return s.issue(user)
}

// LoginStudent authenticates a student by roster username plus the
// teacher's invite code, the student's only credential.
func (s *authService) LoginStudent(ctx context.Context, username, teacherCode string) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	teacher, err := s.resolveTeacher(ctx, teacherCode)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid username or class code")
	}

	user, err := s.users.GetByRosterUsername(ctx, teacher.ID, strings.TrimSpace(username))
	if err != nil {
		log.Error("failed to look up student: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("invalid username or class code")
	}

	log.Info("student login: id=%s", user.ID)
	return s.issue(user)
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *authService) resolveTeacher(ctx context.Context, code string) (*models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.NewValidationError("teacher_code", "must not be empty")
	}
	teacher, err := s.users.GetByCode(ctx, code)
	if err != nil {
		logger.FromContext(ctx).Error("failed to resolve teacher code: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if teacher == nil || teacher.Role != models.RoleTeacher {
		return nil, errors.NewValidationError("teacher_code", "does not match any class")
	}
	return teacher, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
