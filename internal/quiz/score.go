package quiz

import "math"

// Star thresholds, inclusive lower bounds.
const (
	threeStarPercent = 90
	twoStarPercent   = 70
	oneStarPercent   = 50
)

// CompletionThreshold is the minimum session percentage that marks a
// lesson completed. Note it matches the two-star tier, not the one-star
// tier: a 50-69% session maps to one star but does not complete the
// lesson, and the one-star value is never persisted.
const CompletionThreshold = 70

// Percentage returns round(correct/total*100). total must be positive.
func Percentage(correct, total int) int {
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// StarsFor maps a session percentage to a 0-3 star rating.
func StarsFor(percentage int) int {
	switch {
	case percentage >= threeStarPercent:
		return 3
	case percentage >= twoStarPercent:
		return 2
	case percentage >= oneStarPercent:
		return 1
	default:
		return 0
	}
}
