package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

const lessonColumns = `id, title, description, category, sort_order, icon, signs, created_at`

func scanLesson(row interface{ Scan(...any) error }) (*models.Lesson, error) {
	var l models.Lesson
	var signs string
	err := row.Scan(&l.ID, &l.Title, &l.Description, &l.Category, &l.Order, &l.Icon, &signs, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.Signs = unmarshalSigns(signs)
	return &l, nil
}

func (r *lessonRepository) Get(ctx context.Context, id string) (*models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("getting lesson: id=%s", id)

	l, err := scanLesson(r.db.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("lesson not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson: %v", err)
		return nil, err
	}
	return l, nil
}

func (r *lessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing all lessons")

	return r.queryLessons(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY category, sort_order`)
}

func (r *lessonRepository) ListByCategory(ctx context.Context, category models.Category) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("listing lessons: category=%s", category)

	return r.queryLessons(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE category = ? ORDER BY sort_order`, category)
}

func (r *lessonRepository) Upsert(ctx context.Context, l models.Lesson) error {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")
	log.Debug("upserting lesson: id=%s", l.ID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO lessons (`+lessonColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    category = excluded.category,
    sort_order = excluded.sort_order,
    icon = excluded.icon,
    signs = excluded.signs
`, l.ID, l.Title, l.Description, l.Category, l.Order, l.Icon, marshalSigns(l.Signs), l.CreatedAt)
	if err != nil {
		log.Error("failed to upsert lesson: %v", err)
	}
	return err
}

func (r *lessonRepository) queryLessons(ctx context.Context, query string, args ...any) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("lesson_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			log.Error("failed to scan lesson row: %v", err)
			return nil, err
		}
		lessons = append(lessons, *l)
	}
	log.Debug("found %d lessons", len(lessons))
	return lessons, rows.Err()
}
