package repository

import (
	"context"

	"github.com/kmensah/signify/internal/models"
)

// UserRepository handles account data access for all three roles
type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByCode(ctx context.Context, code string) (*models.User, error)
	GetByRosterUsername(ctx context.Context, teacherID, username string) (*models.User, error)
	Insert(ctx context.Context, user models.User) error
	ListByTeacher(ctx context.Context, teacherID string) ([]models.User, error)
}

// LessonRepository handles the seeded lesson catalog
type LessonRepository interface {
	Get(ctx context.Context, id string) (*models.Lesson, error)
	List(ctx context.Context) ([]models.Lesson, error)
	ListByCategory(ctx context.Context, category models.Category) ([]models.Lesson, error)
	Upsert(ctx context.Context, lesson models.Lesson) error
}

// ProgressRepository handles per-student per-lesson progress records
type ProgressRepository interface {
	Get(ctx context.Context, studentID, lessonID string) (*models.ProgressRecord, error)
	List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error)
	// Mutate runs a read-modify-write of one record inside a transaction.
	// When the record does not exist yet, fn receives a fresh zero-valued
	// record for the key and the mutated result is inserted.
	Mutate(ctx context.Context, studentID, lessonID string, fn func(*models.ProgressRecord) error) (*models.ProgressRecord, error)
}
