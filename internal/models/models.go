package models

import "time"

// Role identifies which flavor of account a user signed up with.
type Role string

const (
	RoleTeacher    Role = "teacher"
	RoleStudent    Role = "student"
	RoleIndividual Role = "individual"
)

// Category groups lessons on the learning path.
type Category string

const (
	CategoryBasics    Category = "basics"
	CategoryGreetings Category = "greetings"
	CategoryFamily    Category = "family"
	CategoryDaily     Category = "daily"
)

// Categories returns all lesson categories in display order.
func Categories() []Category {
	return []Category{CategoryBasics, CategoryGreetings, CategoryFamily, CategoryDaily}
}

type User struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email,omitempty"`
	School       string    `json:"school,omitempty"`
	Level        string    `json:"level,omitempty"`
	TeacherID    string    `json:"teacher_id,omitempty"`
	TeacherCode  string    `json:"teacher_code,omitempty"`
	Code         string    `json:"code"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Lesson struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Order       int       `json:"order"`
	Icon        string    `json:"icon"`
	Signs       []string  `json:"signs"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProgressRecord tracks one student's state for one lesson, keyed by
// (student_id, lesson_id). Correct/incorrect signs accumulate across
// sessions and may contain duplicates and cross-membership; readers
// de-duplicate where it matters.
type ProgressRecord struct {
	StudentID      string    `json:"student_id"`
	LessonID       string    `json:"lesson_id"`
	Progress       int       `json:"progress"`
	Completed      bool      `json:"completed"`
	StarsEarned    int       `json:"stars_earned"`
	Attempts       int       `json:"attempts"`
	CorrectSigns   []string  `json:"correct_signs"`
	IncorrectSigns []string  `json:"incorrect_signs"`
	LastAccessed   time.Time `json:"last_accessed"`
}

type ProgressFilter struct {
	StudentID string
	LessonID  string
	Completed *bool
	Limit     int
	Offset    int
}

// StudentStats is the derived, non-persisted rollup behind the learner dashboard.
type StudentStats struct {
	TotalLessons      int              `json:"total_lessons"`
	CompletedLessons  int              `json:"completed_lessons"`
	LessonsInProgress int              `json:"lessons_in_progress"`
	TotalStars        int              `json:"total_stars"`
	OverallProgress   int              `json:"overall_progress"`
	SignsLearned      int              `json:"signs_learned"`
	Streak            int              `json:"streak"`
	CategoryProgress  map[Category]int `json:"category_progress"`
	ProblemSigns      []string         `json:"problem_signs"`
}

// ProgressStatus buckets a student's overall progress for the teacher dashboard.
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not-started"
	StatusStruggling ProgressStatus = "struggling"
	StatusOnTrack    ProgressStatus = "on-track"
)

type RosterEntry struct {
	StudentID string         `json:"student_id"`
	FullName  string         `json:"full_name"`
	Username  string         `json:"username"`
	Progress  int            `json:"progress"`
	Status    ProgressStatus `json:"status"`
}

type RosterSummary struct {
	TotalStudents int `json:"total_students"`
	NotStarted    int `json:"not_started"`
	Struggling    int `json:"struggling"`
	OnTrack       int `json:"on_track"`
}
