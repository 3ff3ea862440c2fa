package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmensah/signify/internal/auth"
	apperrors "github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/services"
	"github.com/kmensah/signify/internal/testutil/mocks"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSignupTeacher(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ama@example.com").Return(nil, nil)
	users.On("Insert", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleTeacher && u.Email == "ama@example.com" &&
			len(u.Code) == len("TCHR-XXXXX") && u.PasswordHash != "secret123"
	})).Return(nil)

	svc := services.NewAuthService(users, newTokens())
	result, err := svc.SignupTeacher(context.Background(), services.TeacherSignupInput{
		FullName: "Ama Mensah",
		Email:    "Ama@Example.com",
		School:   "Accra Primary",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleTeacher, result.User.Role)
	users.AssertExpectations(t)
}

func TestSignupTeacher_Validation(t *testing.T) {
	svc := services.NewAuthService(new(mocks.MockUserRepository), newTokens())

	_, err := svc.SignupTeacher(context.Background(), services.TeacherSignupInput{
		FullName: "Ama", Email: "a@b.com", Password: "short",
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)

	_, err = svc.SignupTeacher(context.Background(), services.TeacherSignupInput{
		FullName: "Ama", Password: "secret123",
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestSignupTeacher_DuplicateEmail(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ama@example.com").
		Return(&models.User{ID: "existing"}, nil)

	svc := services.NewAuthService(users, newTokens())
	_, err := svc.SignupTeacher(context.Background(), services.TeacherSignupInput{
		FullName: "Ama", Email: "ama@example.com", Password: "secret123",
	})
	assertAppError(t, err, apperrors.ErrCodeConflict)
}

func TestSignupStudent(t *testing.T) {
	teacher := &models.User{ID: "teacher-1", Role: models.RoleTeacher, Code: "TCHR-7XK2M"}

	users := new(mocks.MockUserRepository)
	users.On("GetByCode", mock.Anything, "TCHR-7XK2M").Return(teacher, nil)
	users.On("GetByRosterUsername", mock.Anything, "teacher-1", "kofi").Return(nil, nil)
	users.On("Insert", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Role == models.RoleStudent && u.TeacherID == "teacher-1" && u.Username == "kofi"
	})).Return(nil)

	svc := services.NewAuthService(users, newTokens())
	result, err := svc.SignupStudent(context.Background(), services.StudentSignupInput{
		FullName:    "Kofi Owusu",
		Username:    "kofi",
		TeacherCode: "tchr-7xk2m", // case-insensitive
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.Equal(t, "TCHR-7XK2M", result.User.TeacherCode)
	users.AssertExpectations(t)
}

func TestSignupStudent_BadTeacherCode(t *testing.T) {
	users := new(mocks.MockUserRepository)
	users.On("GetByCode", mock.Anything, "TCHR-NOPEE").Return(nil, nil)

	svc := services.NewAuthService(users, newTokens())
	_, err := svc.SignupStudent(context.Background(), services.StudentSignupInput{
		FullName: "Kofi", Username: "kofi", TeacherCode: "TCHR-NOPEE",
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestSignupStudent_StudentCodeRejected(t *testing.T) {
	// A student's own code must not work as a class code.
	student := &models.User{ID: "std-1", Role: models.RoleStudent, Code: "STD-AAAAA"}
	users := new(mocks.MockUserRepository)
	users.On("GetByCode", mock.Anything, "STD-AAAAA").Return(student, nil)

	svc := services.NewAuthService(users, newTokens())
	_, err := svc.SignupStudent(context.Background(), services.StudentSignupInput{
		FullName: "Kofi", Username: "kofi", TeacherCode: "STD-AAAAA",
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestSignupStudent_UsernameTaken(t *testing.T) {
	teacher := &models.User{ID: "teacher-1", Role: models.RoleTeacher, Code: "TCHR-7XK2M"}
	users := new(mocks.MockUserRepository)
	users.On("GetByCode", mock.Anything, "TCHR-7XK2M").Return(teacher, nil)
	users.On("GetByRosterUsername", mock.Anything, "teacher-1", "kofi").
		Return(&models.User{ID: "std-1"}, nil)

	svc := services.NewAuthService(users, newTokens())
	_, err := svc.SignupStudent(context.Background(), services.StudentSignupInput{
		FullName: "Kofi", Username: "kofi", TeacherCode: "TCHR-7XK2M",
	})
	assertAppError(t, err, apperrors.ErrCodeConflict)
}

func TestSignupIndividual_LevelValidation(t *testing.T) {
	svc := services.NewAuthService(new(mocks.MockUserRepository), newTokens())
	_, err := svc.SignupIndividual(context.Background(), services.IndividualSignupInput{
		Username: "solo", Email: "solo@example.com", Level: "expert", Password: "secret123",
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestLoginWithEmail(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	teacher := &models.User{ID: "teacher-1", Role: models.RoleTeacher, Email: "ama@example.com", PasswordHash: hash}

	users := new(mocks.MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ama@example.com").Return(teacher, nil)

	svc := services.NewAuthService(users, newTokens())

	result, err := svc.LoginWithEmail(context.Background(), "ama@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.LoginWithEmail(context.Background(), "ama@example.com", "wrong")
	assertAppError(t, err, apperrors.ErrCodeUnauthorized)
}

func TestLoginStudent(t *testing.T) {
	teacher := &models.User{ID: "teacher-1", Role: models.RoleTeacher, Code: "TCHR-7XK2M"}
	student := &models.User{ID: "std-1", Role: models.RoleStudent, Username: "kofi", TeacherID: "teacher-1"}

	users := new(mocks.MockUserRepository)
	users.On("GetByCode", mock.Anything, "TCHR-7XK2M").Return(teacher, nil)
	users.On("GetByRosterUsername", mock.Anything, "teacher-1", "kofi").Return(student, nil)
	users.On("GetByRosterUsername", mock.Anything, "teacher-1", "ghost").Return(nil, nil)

	svc := services.NewAuthService(users, newTokens())

	result, err := svc.LoginStudent(context.Background(), "kofi", "TCHR-7XK2M")
	require.NoError(t, err)
	assert.Equal(t, "std-1", result.User.ID)

	_, err = svc.LoginStudent(context.Background(), "ghost", "TCHR-7XK2M")
	assertAppError(t, err, apperrors.ErrCodeUnauthorized)
}

func TestTokenRoundTripCarriesRole(t *testing.T) {
	tokens := newTokens()
	users := new(mocks.MockUserRepository)
	users.On("GetByEmail", mock.Anything, "ama@example.com").Return(nil, nil)
	users.On("Insert", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewAuthService(users, tokens)
	result, err := svc.SignupTeacher(context.Background(), services.TeacherSignupInput{
		FullName: "Ama", Email: "ama@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}
