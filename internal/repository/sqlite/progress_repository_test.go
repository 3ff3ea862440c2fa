package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
	"github.com/kmensah/signify/internal/repository/sqlite"
	"github.com/kmensah/signify/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) TestMutateCreatesOnFirstWrite() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	rec, err := s.repo.Mutate(ctx, "std-1", "lesson-1", func(rec *models.ProgressRecord) error {
		s.Assert().Equal("std-1", rec.StudentID)
		s.Assert().Equal("lesson-1", rec.LessonID)
		s.Assert().Zero(rec.Attempts)

		rec.Progress = 50
		rec.Attempts = 1
		rec.CorrectSigns = []string{"A"}
		rec.IncorrectSigns = []string{"B"}
		rec.LastAccessed = now
		return nil
	})
	s.Require().NoError(err)
	s.Assert().Equal(50, rec.Progress)

	got, err := s.repo.Get(ctx, "std-1", "lesson-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(50, got.Progress)
	s.Assert().Equal([]string{"A"}, got.CorrectSigns)
	s.Assert().Equal([]string{"B"}, got.IncorrectSigns)
	s.Assert().Equal(1, got.Attempts)
}

func (s *ProgressRepositorySuite) TestMutateUpdatesExisting() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := s.repo.Mutate(ctx, "std-1", "lesson-1", func(rec *models.ProgressRecord) error {
		rec.Progress = 40
		rec.Attempts = 1
		rec.CorrectSigns = []string{"A"}
		rec.LastAccessed = now
		return nil
	})
	s.Require().NoError(err)

	rec, err := s.repo.Mutate(ctx, "std-1", "lesson-1", func(rec *models.ProgressRecord) error {
		// Lists accumulate across mutations.
		s.Assert().Equal([]string{"A"}, rec.CorrectSigns)
		rec.Progress = 100
		rec.Completed = true
		rec.StarsEarned = 3
		rec.Attempts++
		rec.CorrectSigns = append(rec.CorrectSigns, "B")
		rec.LastAccessed = now.Add(time.Minute)
		return nil
	})
	s.Require().NoError(err)
	s.Assert().Equal(2, rec.Attempts)

	got, err := s.repo.Get(ctx, "std-1", "lesson-1")
	s.Require().NoError(err)
	s.Assert().True(got.Completed)
	s.Assert().Equal(3, got.StarsEarned)
	s.Assert().Equal([]string{"A", "B"}, got.CorrectSigns)
}

func (s *ProgressRepositorySuite) TestMutateRollsBackOnError() {
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := s.repo.Mutate(ctx, "std-1", "lesson-1", func(rec *models.ProgressRecord) error {
		rec.Progress = 80
		return boom
	})
	s.Require().ErrorIs(err, boom)

	got, err := s.repo.Get(ctx, "std-1", "lesson-1")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), "std-1", "lesson-1")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProgressRepositorySuite) seed(studentID, lessonID string, progress int, completed bool, at time.Time) {
	_, err := s.repo.Mutate(context.Background(), studentID, lessonID, func(rec *models.ProgressRecord) error {
		rec.Progress = progress
		rec.Completed = completed
		rec.Attempts = 1
		rec.LastAccessed = at
		return nil
	})
	s.Require().NoError(err)
}

func (s *ProgressRepositorySuite) TestListFilters() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	s.seed("std-1", "lesson-1", 100, true, now.Add(-2*time.Hour))
	s.seed("std-1", "lesson-2", 40, false, now)
	s.seed("std-2", "lesson-1", 60, false, now)

	mine, err := s.repo.List(ctx, models.ProgressFilter{StudentID: "std-1"})
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	// Most recently accessed first.
	s.Assert().Equal("lesson-2", mine[0].LessonID)

	completed := true
	done, err := s.repo.List(ctx, models.ProgressFilter{StudentID: "std-1", Completed: &completed})
	s.Require().NoError(err)
	s.Require().Len(done, 1)
	s.Assert().Equal("lesson-1", done[0].LessonID)

	byLesson, err := s.repo.List(ctx, models.ProgressFilter{LessonID: "lesson-1"})
	s.Require().NoError(err)
	s.Assert().Len(byLesson, 2)

	limited, err := s.repo.List(ctx, models.ProgressFilter{StudentID: "std-1", Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Assert().Equal("lesson-1", limited[0].LessonID)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
