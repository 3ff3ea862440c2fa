package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kmensah/signify/internal/classifier"
)

// MockClassifier is a mock implementation of classifier.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, landmarks []float64) (classifier.Result, error) {
	args := m.Called(ctx, landmarks)
	return args.Get(0).(classifier.Result), args.Error(1)
}
