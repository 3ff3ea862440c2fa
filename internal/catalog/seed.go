package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
)

const alphabetChunkSize = 5

// Seed upserts the built-in lessons. Safe to run on every boot.
func (s *Service) Seed(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	lessons := SeedLessons()
	for _, lesson := range lessons {
		if err := s.lessons.Upsert(ctx, lesson); err != nil {
			log.Error("failed to seed lesson %s: %v", lesson.ID, err)
			return err
		}
	}
	log.Info("lesson catalog seeded: %d lessons", len(lessons))
	return nil
}

// SeedLessons returns the built-in catalog: the name-spelling lesson first,
// then the alphabet split into chunks of five handshapes.
func SeedLessons() []models.Lesson {
	alphabet := strings.Split("ABCDEFGHIJKLMNOPQRSTUVWXYZ", "")
	now := time.Now().UTC()

	lessons := []models.Lesson{{
		ID:          NameLessonID,
		Title:       "Spell Your Name",
		Description: "Practice spelling your own name using the GSL alphabet.",
		Category:    models.CategoryBasics,
		Order:       0,
		Icon:        "✍️",
		Signs:       alphabet,
		CreatedAt:   now,
	}}

	for i := 0; i < len(alphabet); i += alphabetChunkSize {
		end := i + alphabetChunkSize
		if end > len(alphabet) {
			end = len(alphabet)
		}
		chunk := alphabet[i:end]
		index := i/alphabetChunkSize + 1

		lessons = append(lessons, models.Lesson{
			ID:          fmt.Sprintf("lesson-%d", index),
			Title:       fmt.Sprintf("The GSL Alphabet %d–%d", i+1, end),
			Description: "Learn the foundational GSL alphabet handshapes.",
			Category:    models.CategoryBasics,
			Order:       index,
			Icon:        "語",
			Signs:       chunk,
			CreatedAt:   now,
		})
	}
	return lessons
}
