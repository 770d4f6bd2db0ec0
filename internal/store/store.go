package store

import (
	"context"
	"time"
)

// Attempt is one submitted answer to a quiz instance.
type Attempt struct {
	SessionID string
	QuizID    string
	Title     string
	Question  string
	Options   []string
	Choice    int
	Answer    int
	Correct   bool
	Awarded   bool
	CreatedAt time.Time
}

// Store defines the quiz history contract; an external DB implementation can replace the in-memory one.
type Store interface {
	RecordAttempt(ctx context.Context, a Attempt) error
	// History returns the newest attempts of a session first.
	History(ctx context.Context, sessionID string, limit int) ([]Attempt, error)
	Close() error
}
