// Package quiz holds the scoring rules that turn per-question outcomes
// into durable progress state, plus the interactive session loop.
//
// ApplyAnswer and Finalize are pure transforms on a ProgressRecord; the
// progress service runs them inside a per-record transaction.
package quiz

import (
	"time"

	"github.com/kmensah/signify/internal/models"
)

// Result is the outcome of finalizing a quiz session. MappedStars is the
// raw star-mapping value for the session percentage; StarsEarned and
// Completed reflect what was actually persisted after the completion gate.
type Result struct {
	Percentage  int  `json:"percentage"`
	MappedStars int  `json:"mapped_stars"`
	StarsEarned int  `json:"stars_earned"`
	Completed   bool `json:"completed"`
}

// ApplyAnswer records one answered question on a progress record.
// sessionCorrect and sessionAnswered are running counts within the
// current session (including this answer); the record's sign lists
// accumulate across sessions and are appended to, never rewritten.
func ApplyAnswer(rec *models.ProgressRecord, sign string, correct bool, sessionCorrect, sessionAnswered int, now time.Time) {
	if correct {
		rec.CorrectSigns = append(rec.CorrectSigns, sign)
	} else {
		rec.IncorrectSigns = append(rec.IncorrectSigns, sign)
	}

	// A completed lesson keeps progress pinned at 100; re-practicing
	// must not make a finished lesson look unfinished.
	if !rec.Completed {
		rec.Progress = Percentage(sessionCorrect, sessionAnswered)
	}

	rec.Attempts++
	rec.LastAccessed = now
}

// Finalize decides completion and stars at session end. Completion is
// monotonic: a weak later session never un-completes a lesson or lowers
// its stars. Below the completion gate nothing but attempts and
// last-accessed changes on an uncompleted record.
func Finalize(rec *models.ProgressRecord, correctCount, totalQuestions int, now time.Time) Result {
	percentage := Percentage(correctCount, totalQuestions)
	mapped := StarsFor(percentage)

	if percentage >= CompletionThreshold {
		rec.Completed = true
		rec.Progress = 100
		if mapped > rec.StarsEarned {
			rec.StarsEarned = mapped
		}
	} else if !rec.Completed {
		// The 50-69% tier maps to one star but is informational only:
		// it must not complete the lesson or persist stars.
		rec.StarsEarned = 0
	}

	rec.Attempts++
	rec.LastAccessed = now

	return Result{
		Percentage:  percentage,
		MappedStars: mapped,
		StarsEarned: rec.StarsEarned,
		Completed:   rec.Completed,
	}
}
