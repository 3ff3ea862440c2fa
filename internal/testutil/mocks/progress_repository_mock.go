package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kmensah/signify/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, studentID, lessonID string) (*models.ProgressRecord, error) {
	args := m.Called(ctx, studentID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Mutate(ctx context.Context, studentID, lessonID string, fn func(*models.ProgressRecord) error) (*models.ProgressRecord, error) {
	args := m.Called(ctx, studentID, lessonID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	rec := args.Get(0).(*models.ProgressRecord)
	if args.Error(1) == nil {
		if err := fn(rec); err != nil {
			return nil, err
		}
	}
	return rec, args.Error(1)
}
