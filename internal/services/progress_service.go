package services

import (
	"context"
	"time"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/quiz"
	"github.com/kmensah/signify/internal/repository"
	"github.com/kmensah/signify/internal/worker"
)

// AnswerInput is one answered quiz question with the session's running counts.
type AnswerInput struct {
	Sign            string `json:"sign"`
	Correct         bool   `json:"correct"`
	SessionCorrect  int    `json:"session_correct"`
	SessionAnswered int    `json:"session_answered"`
}

// ProgressService owns durable progress state for quiz sessions
type ProgressService interface {
	// RecordAnswer persists one answered question. It never fails the
	// session: a write failure is retried in the background and the
	// returned record reflects the intended state.
	RecordAnswer(ctx context.Context, studentID, lessonID string, in AnswerInput) (*models.ProgressRecord, error)
	// FinalizeSession applies the session outcome. Unlike RecordAnswer
	// a persistence failure here is returned, so clients can retry;
	// finalize is idempotent for the same session counts.
	FinalizeSession(ctx context.Context, studentID, lessonID string, correctCount, totalQuestions int) (*quiz.Result, error)
	GetProgress(ctx context.Context, studentID, lessonID string) (*models.ProgressRecord, error)
	ListProgress(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error)
}

type progressService struct {
	progress repository.ProgressRepository
	lessons  repository.LessonRepository
	pool     *worker.Pool
}

// NewProgressService creates a new ProgressService
func NewProgressService(progress repository.ProgressRepository, lessons repository.LessonRepository, pool *worker.Pool) ProgressService {
	return &progressService{progress: progress, lessons: lessons, pool: pool}
}

func (s *progressService) RecordAnswer(ctx context.Context, studentID, lessonID string, in AnswerInput) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("recording answer: student=%s, lesson=%s, sign=%s, correct=%t", studentID, lessonID, in.Sign, in.Correct)

	if in.Sign == "" {
		return nil, errors.NewValidationError("sign", "must not be empty")
	}
	if in.SessionAnswered < 1 || in.SessionCorrect < 0 || in.SessionCorrect > in.SessionAnswered {
		return nil, errors.NewValidationError("session counts", "correct must be between 0 and answered, answered at least 1")
	}
	if err := s.checkLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	apply := func(rec *models.ProgressRecord) error {
		quiz.ApplyAnswer(rec, in.Sign, in.Correct, in.SessionCorrect, in.SessionAnswered, now)
		return nil
	}

	rec, err := s.progress.Mutate(ctx, studentID, lessonID, apply)
	if err != nil {
		// The learner keeps playing; the write is retried off the request path.
		log.Warn("answer write failed, queueing retry: student=%s, lesson=%s: %v", studentID, lessonID, err)
		s.pool.TrySubmit(&worker.RetryProgressWriteJob{
			Progress:  s.progress,
			StudentID: studentID,
			LessonID:  lessonID,
			Apply:     apply,
		})
		return s.intendedRecord(ctx, studentID, lessonID, apply), nil
	}
	return rec, nil
}

// intendedRecord reports the state the failed write was meant to
// produce, layered on the durable record so completion and stars the
// student already earned are never hidden by a transient failure.
func (s *progressService) intendedRecord(ctx context.Context, studentID, lessonID string, apply func(*models.ProgressRecord) error) *models.ProgressRecord {
	rec, err := s.progress.Get(ctx, studentID, lessonID)
	if err != nil || rec == nil {
		rec = &models.ProgressRecord{StudentID: studentID, LessonID: lessonID}
	}
	_ = apply(rec)
	return rec
}

func (s *progressService) FinalizeSession(ctx context.Context, studentID, lessonID string, correctCount, totalQuestions int) (*quiz.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug("finalizing session: student=%s, lesson=%s, correct=%d/%d", studentID, lessonID, correctCount, totalQuestions)

	if totalQuestions <= 0 {
		return nil, errors.NewValidationError("total_questions", "must be positive")
	}
	if correctCount < 0 || correctCount > totalQuestions {
		return nil, errors.NewValidationError("correct_count", "must be between 0 and total_questions")
	}
	if err := s.checkLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var result quiz.Result
	_, err := s.progress.Mutate(ctx, studentID, lessonID, func(rec *models.ProgressRecord) error {
		result = quiz.Finalize(rec, correctCount, totalQuestions, now)
		return nil
	})
	if err != nil {
		log.Error("failed to finalize session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("session finalized: student=%s, lesson=%s, percentage=%d, stars=%d, completed=%t",
		studentID, lessonID, result.Percentage, result.StarsEarned, result.Completed)
	return &result, nil
}

func (s *progressService) GetProgress(ctx context.Context, studentID, lessonID string) (*models.ProgressRecord, error) {
	rec, err := s.progress.Get(ctx, studentID, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("progress", studentID+"/"+lessonID)
	}
	return rec, nil
}

func (s *progressService) ListProgress(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error) {
	records, err := s.progress.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

func (s *progressService) checkLesson(ctx context.Context, lessonID string) error {
	lesson, err := s.lessons.Get(ctx, lessonID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if lesson == nil {
		return errors.NewNotFoundError("lesson", lessonID)
	}
	return nil
}
