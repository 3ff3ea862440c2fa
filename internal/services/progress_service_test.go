package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/services"
	"github.com/kmensah/signify/internal/testutil/mocks"
	"github.com/kmensah/signify/internal/worker"
)

func newProgressService(progress *mocks.MockProgressRepository, lessons *mocks.MockLessonRepository) services.ProgressService {
	return services.NewProgressService(progress, lessons, worker.NewPool(1, 4))
}

func lessonOK(lessons *mocks.MockLessonRepository, id string) {
	lessons.On("Get", mock.Anything, id).Return(&models.Lesson{ID: id, Signs: []string{"A", "B"}}, nil)
}

func TestRecordAnswer(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	lessons := new(mocks.MockLessonRepository)
	lessonOK(lessons, "lesson-1")
	progress.On("Mutate", mock.Anything, "std-1", "lesson-1", mock.Anything).
		Return(&models.ProgressRecord{StudentID: "std-1", LessonID: "lesson-1"}, nil)

	svc := newProgressService(progress, lessons)
	rec, err := svc.RecordAnswer(context.Background(), "std-1", "lesson-1", services.AnswerInput{
		Sign: "A", Correct: true, SessionCorrect: 1, SessionAnswered: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 50, rec.Progress)
	assert.Equal(t, []string{"A"}, rec.CorrectSigns)
	assert.Equal(t, 1, rec.Attempts)
	progress.AssertExpectations(t)
}

func TestRecordAnswer_Validation(t *testing.T) {
	svc := newProgressService(new(mocks.MockProgressRepository), new(mocks.MockLessonRepository))

	_, err := svc.RecordAnswer(context.Background(), "std-1", "lesson-1", services.AnswerInput{
		Sign: "", SessionCorrect: 1, SessionAnswered: 1,
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)

	_, err = svc.RecordAnswer(context.Background(), "std-1", "lesson-1", services.AnswerInput{
		Sign: "A", SessionCorrect: 3, SessionAnswered: 2,
	})
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestRecordAnswer_UnknownLesson(t *testing.T) {
	lessons := new(mocks.MockLessonRepository)
	lessons.On("Get", mock.Anything, "ghost").Return(nil, nil)

	svc := newProgressService(new(mocks.MockProgressRepository), lessons)
	_, err := svc.RecordAnswer(context.Background(), "std-1", "ghost", services.AnswerInput{
		Sign: "A", SessionCorrect: 1, SessionAnswered: 1,
	})
	assertAppError(t, err, apperrors.ErrCodeNotFound)
}

func TestRecordAnswer_WriteFailureDoesNotFailSession(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	lessons := new(mocks.MockLessonRepository)
	lessonOK(lessons, "lesson-1")
	progress.On("Mutate", mock.Anything, "std-1", "lesson-1", mock.Anything).
		Return(nil, errors.New("disk full"))
	progress.On("Get", mock.Anything, "std-1", "lesson-1").Return(nil, nil)

	svc := newProgressService(progress, lessons)
	rec, err := svc.RecordAnswer(context.Background(), "std-1", "lesson-1", services.AnswerInput{
		Sign: "B", Correct: false, SessionCorrect: 0, SessionAnswered: 1,
	})

	// The learner still gets the intended running state back.
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Progress)
	assert.Equal(t, []string{"B"}, rec.IncorrectSigns)
}

func TestRecordAnswer_WriteFailureKeepsDurableState(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	lessons := new(mocks.MockLessonRepository)
	lessonOK(lessons, "lesson-1")
	progress.On("Mutate", mock.Anything, "std-1", "lesson-1", mock.Anything).
		Return(nil, errors.New("disk full"))
	progress.On("Get", mock.Anything, "std-1", "lesson-1").
		Return(&models.ProgressRecord{
			StudentID:    "std-1",
			LessonID:     "lesson-1",
			Progress:     100,
			Completed:    true,
			StarsEarned:  3,
			Attempts:     4,
			CorrectSigns: []string{"A"},
		}, nil)

	svc := newProgressService(progress, lessons)
	rec, err := svc.RecordAnswer(context.Background(), "std-1", "lesson-1", services.AnswerInput{
		Sign: "B", Correct: true, SessionCorrect: 1, SessionAnswered: 1,
	})
	require.NoError(t, err)

	// A failed write must not erase what the student already earned.
	assert.True(t, rec.Completed)
	assert.Equal(t, 3, rec.StarsEarned)
	assert.Equal(t, 100, rec.Progress)
	assert.Equal(t, 5, rec.Attempts)
	assert.Equal(t, []string{"A", "B"}, rec.CorrectSigns)
}

func TestFinalizeSession(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	lessons := new(mocks.MockLessonRepository)
	lessonOK(lessons, "lesson-1")
	progress.On("Mutate", mock.Anything, "std-1", "lesson-1", mock.Anything).
		Return(&models.ProgressRecord{StudentID: "std-1", LessonID: "lesson-1"}, nil)

	svc := newProgressService(progress, lessons)
	result, err := svc.FinalizeSession(context.Background(), "std-1", "lesson-1", 9, 10)
	require.NoError(t, err)

	assert.Equal(t, 90, result.Percentage)
	assert.Equal(t, 3, result.StarsEarned)
	assert.True(t, result.Completed)
}

func TestFinalizeSession_Validation(t *testing.T) {
	svc := newProgressService(new(mocks.MockProgressRepository), new(mocks.MockLessonRepository))

	_, err := svc.FinalizeSession(context.Background(), "std-1", "lesson-1", 0, 0)
	assertAppError(t, err, apperrors.ErrCodeValidation)

	_, err = svc.FinalizeSession(context.Background(), "std-1", "lesson-1", 11, 10)
	assertAppError(t, err, apperrors.ErrCodeValidation)
}

func TestFinalizeSession_WriteFailureIsReturned(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	lessons := new(mocks.MockLessonRepository)
	lessonOK(lessons, "lesson-1")
	progress.On("Mutate", mock.Anything, "std-1", "lesson-1", mock.Anything).
		Return(nil, errors.New("disk full"))

	svc := newProgressService(progress, lessons)
	_, err := svc.FinalizeSession(context.Background(), "std-1", "lesson-1", 9, 10)
	assertAppError(t, err, apperrors.ErrCodeInternal)
}

func TestGetProgress_Missing(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	progress.On("Get", mock.Anything, "std-1", "lesson-1").Return(nil, nil)

	svc := newProgressService(progress, new(mocks.MockLessonRepository))
	_, err := svc.GetProgress(context.Background(), "std-1", "lesson-1")
	assertAppError(t, err, apperrors.ErrCodeNotFound)
}
