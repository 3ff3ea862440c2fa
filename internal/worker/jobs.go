package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
)

const (
	retryAttempts = 3
	retryDelay    = 500 * time.Millisecond
)

// RetryProgressWriteJob re-runs a failed per-question progress write in
// the background. Per-question persistence is best-effort: the session
// keeps going while this job retries, and a write that still fails after
// the retries is dropped, to be reconciled by the session's finalize.
type RetryProgressWriteJob struct {
	Progress  repository.ProgressRepository
	StudentID string
	LessonID  string
	Apply     func(*models.ProgressRecord) error
}

func (j *RetryProgressWriteJob) Name() string {
	return fmt.Sprintf("retry-progress-write %s/%s", j.StudentID, j.LessonID)
}

func (j *RetryProgressWriteJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if _, err := j.Progress.Mutate(ctx, j.StudentID, j.LessonID, j.Apply); err == nil {
			if attempt > 1 {
				log.Info("progress write succeeded on attempt %d", attempt)
			}
			return nil
		} else {
			lastErr = err
			log.Warn("progress write attempt %d/%d failed: %v", attempt, retryAttempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return fmt.Errorf("progress write gave up after %d attempts: %w", retryAttempts, lastErr)
}
