package services

import (
	"context"
	"time"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
	"github.com/kmensah/signify/internal/stats"
)

// StatsService computes dashboard rollups from progress records
type StatsService interface {
	StudentStats(ctx context.Context, studentID string) (*models.StudentStats, error)
}

type statsService struct {
	progress repository.ProgressRepository
	lessons  repository.LessonRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(progress repository.ProgressRepository, lessons repository.LessonRepository) StatsService {
	return &statsService{progress: progress, lessons: lessons}
}

func (s *statsService) StudentStats(ctx context.Context, studentID string) (*models.StudentStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing stats: student=%s", studentID)

	records, err := s.progress.List(ctx, models.ProgressFilter{StudentID: studentID})
	if err != nil {
		log.Error("failed to list progress records: %v", err)
		return nil, errors.NewInternalError(err)
	}
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		log.Error("failed to list lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}

	result := stats.Compute(records, lessons, time.Now().UTC())
	return &result, nil
}
