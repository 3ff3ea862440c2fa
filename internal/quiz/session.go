package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/kmensah/signify/internal/classifier"
	"github.com/kmensah/signify/internal/logger"
	"github.com/kmensah/signify/internal/models"
)

// LandmarkSource yields landmark vectors for consecutive camera frames.
// NextFrameLandmarks blocks until a frame is available and returns
// ok=false when the source is exhausted or the session was abandoned.
type LandmarkSource interface {
	NextFrameLandmarks(ctx context.Context) ([]float64, bool)
}

// Answer is one resolved question within a session.
type Answer struct {
	Sign     string `json:"sign"`
	Detected string `json:"detected"`
	Correct  bool   `json:"correct"`
}

// Session walks a learner through a lesson's sign sequence one question
// at a time. It owns the per-question state; persistence happens through
// the submit callback so a session never touches storage directly.
//
// Session and Run are the embedding surface for clients that feed
// landmark frames server-side, such as a kiosk or a native app driving
// the loop over a stream. Browser clients do not use it: they classify
// frames via POST /api/classify and drive question state themselves
// through the quiz endpoints.
type Session struct {
	lessonID   string
	signs      []string
	classifier classifier.Classifier

	index   int
	correct int
	answers []Answer

	// Last confident classification seen for the current question.
	// Later frames overwrite earlier ones until the answer is locked in.
	detected    string
	hasDetected bool
}

// NewSession starts a session over the lesson's sign sequence. For the
// name-spelling lesson pass the learner-derived sequence instead of the
// lesson's stored signs.
func NewSession(lesson *models.Lesson, signs []string, cls classifier.Classifier) (*Session, error) {
	if len(signs) == 0 {
		return nil, fmt.Errorf("lesson %s has no signs to quiz", lesson.ID)
	}
	return &Session{
		lessonID:   lesson.ID,
		signs:      signs,
		classifier: cls,
	}, nil
}

// Current returns the sign the learner should produce next, and false
// once every question has been answered.
func (s *Session) Current() (string, bool) {
	if s.index >= len(s.signs) {
		return "", false
	}
	return s.signs[s.index], true
}

// Detected returns the advisory detection for the current question: the
// most recent confident classification, if any. It never decides
// correctness; only Submit does.
func (s *Session) Detected() (string, bool) {
	return s.detected, s.hasDetected
}

// Observe classifies one frame's landmarks for the current question.
// Low-confidence predictions are ignored; confident ones replace any
// earlier detection. Classifier failures are non-fatal, a later frame
// can still succeed.
func (s *Session) Observe(ctx context.Context, landmarks []float64) {
	if _, ok := s.Current(); !ok {
		return
	}

	result, err := s.classifier.Classify(ctx, landmarks)
	if err != nil {
		logger.FromContext(ctx).Debug("frame classification failed: %v", err)
		return
	}
	if !result.Confident() {
		return
	}
	s.detected = result.Label
	s.hasDetected = true
}

// Submit locks in the answer for the current question and advances the
// session. detected is what the learner ended up signing; the expected
// sign comes from the session's own sequence, never from the caller.
func (s *Session) Submit(detected string) (Answer, error) {
	expected, ok := s.Current()
	if !ok {
		return Answer{}, fmt.Errorf("session for lesson %s already finished", s.lessonID)
	}

	answer := Answer{
		Sign:     expected,
		Detected: detected,
		Correct:  detected == expected,
	}
	if answer.Correct {
		s.correct++
	}
	s.answers = append(s.answers, answer)
	s.index++
	s.detected = ""
	s.hasDetected = false
	return answer, nil
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.signs)
}

// Progress returns answered and total question counts.
func (s *Session) Progress() (answered, total int) {
	return s.index, len(s.signs)
}

// CorrectCount returns how many answers were correct so far.
func (s *Session) CorrectCount() int {
	return s.correct
}

// Answers returns the answers locked in so far, in question order.
func (s *Session) Answers() []Answer {
	return s.answers
}

// SubmitFunc persists one answered question. Implementations must treat
// failures as non-fatal to the session.
type SubmitFunc func(ctx context.Context, sign string, correct bool, sessionCorrect, sessionAnswered int) error

// Run drives the session from a landmark source until every question is
// answered or the source runs dry. Each confident detection is submitted
// immediately; frames that classify below the detection threshold just
// wait for the next frame.
func (s *Session) Run(ctx context.Context, source LandmarkSource, submit SubmitFunc) error {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	for !s.Done() {
		landmarks, ok := source.NextFrameLandmarks(ctx)
		if !ok {
			return fmt.Errorf("landmark source closed with %d of %d questions answered", s.index, len(s.signs))
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		s.Observe(ctx, landmarks)
		detected, ok := s.Detected()
		if !ok {
			continue
		}

		answer, err := s.Submit(detected)
		if err != nil {
			return err
		}
		log.Debug("answer locked in: lesson=%s, expected=%s, detected=%s, correct=%t",
			s.lessonID, answer.Sign, answer.Detected, answer.Correct)

		if submit != nil {
			if err := submit(ctx, answer.Sign, answer.Correct, s.correct, s.index); err != nil {
				// Persistence problems must not interrupt the learner.
				log.Warn("failed to persist answer for lesson %s: %v", s.lessonID, err)
			}
		}
	}
	return nil
}

// FinalizeInto applies the session outcome to a progress record.
func (s *Session) FinalizeInto(rec *models.ProgressRecord, now time.Time) Result {
	return Finalize(rec, s.correct, len(s.signs), now)
}
