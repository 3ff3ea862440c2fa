package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = `student_id, lesson_id, progress, completed, stars_earned, attempts, correct_signs, incorrect_signs, last_accessed`

func scanProgress(row interface{ Scan(...any) error }) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	var correct, incorrect string
	err := row.Scan(&rec.StudentID, &rec.LessonID, &rec.Progress, &rec.Completed, &rec.StarsEarned,
		&rec.Attempts, &correct, &incorrect, &rec.LastAccessed)
	if err != nil {
		return nil, err
	}
	rec.CorrectSigns = unmarshalSigns(correct)
	rec.IncorrectSigns = unmarshalSigns(incorrect)
	return &rec, nil
}

func (r *progressRepository) Get(ctx context.Context, studentID, lessonID string) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: student_id=%s, lesson_id=%s", studentID, lessonID)

	rec, err := scanProgress(r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+` FROM progress WHERE student_id = ? AND lesson_id = ?
`, studentID, lessonID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress record yet")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return rec, nil
}

func (r *progressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: student_id=%s, lesson_id=%s", filter.StudentID, filter.LessonID)

	query := sqlBuilder.Select(
		"student_id", "lesson_id", "progress", "completed", "stars_earned",
		"attempts", "correct_signs", "incorrect_signs", "last_accessed",
	).From("progress")

	// Dynamic WHERE clauses
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.LessonID != "" {
		query = query.Where(squirrel.Eq{"lesson_id": filter.LessonID})
	}
	if filter.Completed != nil {
		query = query.Where(squirrel.Eq{"completed": *filter.Completed})
	}

	query = query.OrderBy("last_accessed DESC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		records = append(records, *rec)
	}
	log.Debug("found %d progress records", len(records))
	return records, rows.Err()
}

func (r *progressRepository) Mutate(ctx context.Context, studentID, lessonID string, fn func(*models.ProgressRecord) error) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("mutating progress: student_id=%s, lesson_id=%s", studentID, lessonID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	rec, err := scanProgress(tx.QueryRowContext(ctx, `
SELECT `+progressColumns+` FROM progress WHERE student_id = ? AND lesson_id = ?
`, studentID, lessonID))
	exists := true
	if errors.Is(err, sql.ErrNoRows) {
		exists = false
		rec = &models.ProgressRecord{StudentID: studentID, LessonID: lessonID}
	} else if err != nil {
		log.Error("failed to read progress for mutation: %v", err)
		return nil, err
	}

	if err := fn(rec); err != nil {
		return nil, err
	}

	if exists {
		_, err = tx.ExecContext(ctx, `
UPDATE progress
SET progress = ?, completed = ?, stars_earned = ?, attempts = ?, correct_signs = ?, incorrect_signs = ?, last_accessed = ?
WHERE student_id = ? AND lesson_id = ?
`, rec.Progress, rec.Completed, rec.StarsEarned, rec.Attempts,
			marshalSigns(rec.CorrectSigns), marshalSigns(rec.IncorrectSigns), rec.LastAccessed,
			studentID, lessonID)
	} else {
		_, err = tx.ExecContext(ctx, `
INSERT INTO progress (`+progressColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rec.StudentID, rec.LessonID, rec.Progress, rec.Completed, rec.StarsEarned, rec.Attempts,
			marshalSigns(rec.CorrectSigns), marshalSigns(rec.IncorrectSigns), rec.LastAccessed)
	}
	if err != nil {
		log.Error("failed to write progress: %v", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit progress mutation: %v", err)
		return nil, err
	}
	log.Debug("progress written: progress=%d, completed=%v, attempts=%d", rec.Progress, rec.Completed, rec.Attempts)
	return rec, nil
}
