package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, role, full_name, username, email, school, level, teacher_id, teacher_code, code, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Role, &u.FullName, &u.Username, &u.Email, &u.School, &u.Level,
		&u.TeacherID, &u.TeacherCode, &u.Code, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%s", id)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by email")

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no user for email")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by email: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByCode(ctx context.Context, code string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by code: %s", code)

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE code = ?`, code))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no user for code: %s", code)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by code: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByRosterUsername(ctx context.Context, teacherID, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting student by username: teacher_id=%s, username=%s", teacherID, username)

	u, err := scanUser(r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE role = 'student' AND teacher_id = ? AND username = ?
`, teacherID, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get student by username: %v", err)
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Insert(ctx context.Context, u models.User) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: id=%s, role=%s", u.ID, u.Role)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, u.ID, u.Role, u.FullName, u.Username, u.Email, u.School, u.Level,
		u.TeacherID, u.TeacherCode, u.Code, u.PasswordHash, u.CreatedAt)
	if err != nil {
		log.Error("failed to insert user: %v", err)
	}
	return err
}

func (r *userRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("listing students for teacher: %s", teacherID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE role = 'student' AND teacher_id = ?
ORDER BY full_name
`, teacherID)
	if err != nil {
		log.Error("failed to list students: %v", err)
		return nil, err
	}
	defer rows.Close()

	var students []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("failed to scan student row: %v", err)
			return nil, err
		}
		students = append(students, *u)
	}
	log.Debug("found %d students", len(students))
	return students, rows.Err()
}
