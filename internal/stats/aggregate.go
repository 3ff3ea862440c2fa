// Package stats derives dashboard numbers from progress records. Nothing
// here is persisted; every value is recomputed from the records on read.
package stats

import (
	"sort"
	"time"

	"github.com/kmensah/signify/internal/models"
	"github.com/kmensah/signify/internal/quiz"
)

// streakGap is the maximum gap between consecutive practice timestamps
// for them to count as the same streak.
const streakGap = 24 * time.Hour

// OverallProgress is the arithmetic mean of progress across the
// student's records, 0 when none exist. Lessons never touched have no
// record and do not drag the average down.
func OverallProgress(records []models.ProgressRecord) int {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, rec := range records {
		sum += rec.Progress
	}
	return quiz.Percentage(sum, len(records)*100)
}

// CompletedCount returns how many lessons the student has completed.
func CompletedCount(records []models.ProgressRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Completed {
			n++
		}
	}
	return n
}

// LessonsInProgress counts started-but-not-completed lessons. A record
// with zero progress exists but has not really been started yet.
func LessonsInProgress(records []models.ProgressRecord) int {
	n := 0
	for _, rec := range records {
		if !rec.Completed && rec.Progress > 0 {
			n++
		}
	}
	return n
}

// TotalStars sums persisted stars across lessons.
func TotalStars(records []models.ProgressRecord) int {
	sum := 0
	for _, rec := range records {
		sum += rec.StarsEarned
	}
	return sum
}

// SignsLearned counts distinct correct signs over completed lessons only.
// Each record's list is de-duplicated before counting, but the same sign
// learned in two lessons counts once per lesson.
func SignsLearned(records []models.ProgressRecord) int {
	total := 0
	for _, rec := range records {
		if !rec.Completed {
			continue
		}
		seen := make(map[string]struct{}, len(rec.CorrectSigns))
		for _, sign := range rec.CorrectSigns {
			seen[sign] = struct{}{}
		}
		total += len(seen)
	}
	return total
}

// CategoryProgress reports per-category completion: completed lessons
// over the category's lesson count. Categories with no lessons in the
// catalog are omitted entirely.
func CategoryProgress(records []models.ProgressRecord, lessons []models.Lesson) map[models.Category]int {
	lessonCategory := make(map[string]models.Category, len(lessons))
	counts := make(map[models.Category]int)
	for _, lesson := range lessons {
		lessonCategory[lesson.ID] = lesson.Category
		counts[lesson.Category]++
	}

	completed := make(map[models.Category]int)
	for _, rec := range records {
		category, ok := lessonCategory[rec.LessonID]
		if !ok || !rec.Completed {
			continue
		}
		completed[category]++
	}

	out := make(map[models.Category]int, len(counts))
	for category, count := range counts {
		out[category] = quiz.Percentage(completed[category], count)
	}
	return out
}

// Streak estimates consecutive practice days by walking last-accessed
// timestamps newest first and counting while each gap stays under 24
// hours. It is a heuristic over one timestamp per lesson, not a full
// practice log; two sessions on the same day can both count.
func Streak(records []models.ProgressRecord, now time.Time) int {
	times := make([]time.Time, 0, len(records))
	for _, rec := range records {
		if !rec.LastAccessed.IsZero() {
			times = append(times, rec.LastAccessed)
		}
	}
	if len(times) == 0 {
		return 0
	}
	sort.Slice(times, func(i, j int) bool { return times[i].After(times[j]) })

	if now.Sub(times[0]) > streakGap {
		return 0
	}
	streak := 1
	for i := 1; i < len(times); i++ {
		if times[i-1].Sub(times[i]) > streakGap {
			break
		}
		streak++
	}
	return streak
}

// ProblemSigns returns the distinct signs the student has ever gotten
// wrong, across all lessons, sorted for stable output. A sign stays a
// problem sign even after later correct answers; the lists accumulate.
func ProblemSigns(records []models.ProgressRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, sign := range rec.IncorrectSigns {
			seen[sign] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for sign := range seen {
		out = append(out, sign)
	}
	sort.Strings(out)
	return out
}

// onTrackPercent splits struggling from on-track on the teacher roster.
const onTrackPercent = 60

// BucketFor maps a student's overall progress to a roster status.
func BucketFor(overallProgress int) models.ProgressStatus {
	switch {
	case overallProgress == 0:
		return models.StatusNotStarted
	case overallProgress < onTrackPercent:
		return models.StatusStruggling
	default:
		return models.StatusOnTrack
	}
}

// Compute rolls every derived number into one StudentStats.
func Compute(records []models.ProgressRecord, lessons []models.Lesson, now time.Time) models.StudentStats {
	return models.StudentStats{
		TotalLessons:      len(lessons),
		CompletedLessons:  CompletedCount(records),
		LessonsInProgress: LessonsInProgress(records),
		TotalStars:        TotalStars(records),
		OverallProgress:   OverallProgress(records),
		SignsLearned:      SignsLearned(records),
		Streak:            Streak(records, now),
		CategoryProgress:  CategoryProgress(records, lessons),
		ProblemSigns:      ProblemSigns(records),
	}
}
