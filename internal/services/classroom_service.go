package services

import (
	"context"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
	"github.com/kmensah/signify/internal/stats"
)

// Dashboard is the teacher's class overview: the roster with per-student
// progress plus bucket totals.
type Dashboard struct {
	Roster  []models.RosterEntry `json:"roster"`
	Summary models.RosterSummary `json:"summary"`
}

// ClassroomService serves the teacher-facing roster views
type ClassroomService interface {
	Roster(ctx context.Context, teacherID string) ([]models.User, error)
	// AddStudent lets a teacher create a roster entry directly, without
	// going through the public signup flow.
	AddStudent(ctx context.Context, teacherID, fullName, username string) (*models.User, error)
	StudentStats(ctx context.Context, teacherID, studentID string) (*models.StudentStats, error)
	Dashboard(ctx context.Context, teacherID string) (*Dashboard, error)
}

type classroomService struct {
	users    repository.UserRepository
	progress repository.ProgressRepository
	auth     AuthService
	stats    StatsService
}

// NewClassroomService creates a new ClassroomService
func NewClassroomService(
	users repository.UserRepository,
	progress repository.ProgressRepository,
	auth AuthService,
	statsService StatsService,
) ClassroomService {
	return &classroomService{
		users:    users,
		progress: progress,
		auth:     auth,
		stats:    statsService,
	}
}

func (s *classroomService) Roster(ctx context.Context, teacherID string) ([]models.User, error) {
	students, err := s.users.ListByTeacher(ctx, teacherID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list roster: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return students, nil
}

func (s *classroomService) AddStudent(ctx context.Context, teacherID, fullName, username string) (*models.User, error) {
	teacher, err := s.users.Get(ctx, teacherID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if teacher == nil || teacher.Role != models.RoleTeacher {
		return nil, errors.NewForbiddenError("only teachers can add students")
	}

	// Reuses the signup path so roster-added students behave exactly
	// like self-registered ones. The teacher's own session is untouched.
	result, err := s.auth.SignupStudent(ctx, StudentSignupInput{
		FullName:    fullName,
		Username:    username,
		TeacherCode: teacher.Code,
	})
	if err != nil {
		return nil, err
	}
	return result.User, nil
}

func (s *classroomService) StudentStats(ctx context.Context, teacherID, studentID string) (*models.StudentStats, error) {
	if err := s.checkOwnStudent(ctx, teacherID, studentID); err != nil {
		return nil, err
	}
	return s.stats.StudentStats(ctx, studentID)
}

func (s *classroomService) Dashboard(ctx context.Context, teacherID string) (*Dashboard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building dashboard: teacher=%s", teacherID)

	students, err := s.users.ListByTeacher(ctx, teacherID)
	if err != nil {
		log.Error("failed to list roster: %v", err)
		return nil, errors.NewInternalError(err)
	}

	dashboard := &Dashboard{
		Roster:  make([]models.RosterEntry, 0, len(students)),
		Summary: models.RosterSummary{TotalStudents: len(students)},
	}
	for _, student := range students {
		records, err := s.progress.List(ctx, models.ProgressFilter{StudentID: student.ID})
		if err != nil {
			log.Error("failed to list progress for student %s: %v", student.ID, err)
			return nil, errors.NewInternalError(err)
		}

		overall := stats.OverallProgress(records)
		status := stats.BucketFor(overall)

		dashboard.Roster = append(dashboard.Roster, models.RosterEntry{
			StudentID: student.ID,
			FullName:  student.FullName,
			Username:  student.Username,
			Progress:  overall,
			Status:    status,
		})

		switch status {
		case models.StatusNotStarted:
			dashboard.Summary.NotStarted++
		case models.StatusStruggling:
			dashboard.Summary.Struggling++
		case models.StatusOnTrack:
			dashboard.Summary.OnTrack++
		}
	}
	return dashboard, nil
}

func (s *classroomService) checkOwnStudent(ctx context.Context, teacherID, studentID string) error {
	student, err := s.users.Get(ctx, studentID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if student == nil {
		return errors.NewNotFoundError("student", studentID)
	}
	if student.TeacherID != teacherID {
		return errors.NewForbiddenError("student is not in your class")
	}
	return nil
}
