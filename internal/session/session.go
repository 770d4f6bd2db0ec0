// Package session holds the per-browser quiz bookkeeping: reward points,
// attempt counts, the active quiz and which quizzes were answered.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"lawsnap/internal/quiz"
)

var (
	ErrNoActiveQuiz  = errors.New("no active quiz")
	ErrInvalidChoice = errors.New("choice must be between 1 and 4")
)

// AnswerState tracks one quiz instance within a session. Correct reflects
// the first submission only.
type AnswerState struct {
	Answered bool `json:"answered"`
	Correct  bool `json:"correct"`
	Attempts int  `json:"attempts"`
}

// Session is the mutable state of one visitor. It is loaded from a Store at
// the start of a request and saved at the end.
type Session struct {
	ID         string                 `json:"id"`
	Points     int                    `json:"points"`
	Attempts   int                    `json:"attempts"`
	Profession string                 `json:"profession,omitempty"`
	Current    *quiz.Quiz             `json:"current,omitempty"`
	Answers    map[string]AnswerState `json:"answers"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// Outcome describes the effect of one submission.
type Outcome struct {
	QuizID  string
	Choice  int
	Answer  int
	Correct bool
	// Awarded is true only for the first correct submission of a quiz.
	Awarded bool
	Points  int
}

// New returns an empty session with a fresh id.
func New() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Answers: map[string]AnswerState{},
	}
}

// Begin makes q the active quiz.
func (s *Session) Begin(q quiz.Quiz) {
	s.Current = &q
}

// State reports the bookkeeping of the active quiz.
func (s *Session) State() AnswerState {
	if s.Current == nil {
		return AnswerState{}
	}
	return s.Answers[s.Current.ID]
}

// Submit records an answer to the active quiz. The first submission closes
// the quiz: it alone decides Correct and can award a point. Later
// submissions still count as attempts but never award.
func (s *Session) Submit(choice int) (Outcome, error) {
	if s.Current == nil {
		return Outcome{}, ErrNoActiveQuiz
	}
	if choice < 1 || choice > quiz.OptionCount {
		return Outcome{}, ErrInvalidChoice
	}
	if s.Answers == nil {
		s.Answers = map[string]AnswerState{}
	}

	q := s.Current
	state := s.Answers[q.ID]
	correct := choice == q.Answer
	awarded := correct && !state.Answered

	s.Attempts++
	state.Attempts++
	if !state.Answered {
		state.Answered = true
		state.Correct = correct
	}
	if awarded {
		s.Points++
	}
	s.Answers[q.ID] = state

	return Outcome{
		QuizID:  q.ID,
		Choice:  choice,
		Answer:  q.Answer,
		Correct: correct,
		Awarded: awarded,
		Points:  s.Points,
	}, nil
}
