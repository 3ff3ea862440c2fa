// Package catalog is the read model over the seeded lesson catalog.
// Lessons are immutable after seeding; everything here is lookup only.
package catalog

import (
	"context"

	"github.com/kmensah/signify/internal/errors"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
)

// NameLessonID is the well-known id of the name-spelling lesson, whose
// sign sequence is derived from the learner's own name at session start.
const NameLessonID = "lesson-spell-name"

type Service struct {
	lessons repository.LessonRepository
}

func NewService(lessons repository.LessonRepository) *Service {
	return &Service{lessons: lessons}
}

// Get returns a lesson by id, or a NOT_FOUND error for absent ids.
func (s *Service) Get(ctx context.Context, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting lesson: id=%s", id)

	lesson, err := s.lessons.Get(ctx, id)
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}
	return lesson, nil
}

// List returns all lessons, grouped by category then path order.
func (s *Service) List(ctx context.Context) ([]models.Lesson, error) {
	lessons, err := s.lessons.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list lessons: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

// ListByCategory returns a category's lessons ordered ascending by path order.
func (s *Service) ListByCategory(ctx context.Context, category models.Category) ([]models.Lesson, error) {
	lessons, err := s.lessons.ListByCategory(ctx, category)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list lessons by category: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

// NameSignSequence derives the sign sequence for the name-spelling lesson:
// the name uppercased with every character outside A-Z dropped, order kept.
func NameSignSequence(name string) []string {
	var signs []string
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			signs = append(signs, string(r))
		}
	}
	return signs
}
