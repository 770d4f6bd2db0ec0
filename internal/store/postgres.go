package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Use advisory lock so several web replicas starting together do not
	// race on DDL.
	const lockID = 582034117

	if _, err := s.db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quiz_attempts (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			quiz_id TEXT NOT NULL,
			title TEXT,
			question TEXT,
			options TEXT[],
			choice INT,
			answer INT,
			correct BOOLEAN,
			awarded BOOLEAN,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS quiz_attempts_session_idx ON quiz_attempts(session_id, created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) RecordAttempt(ctx context.Context, a Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_attempts(session_id, quiz_id, title, question, options, choice, answer, correct, awarded, created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.SessionID, a.QuizID, a.Title, a.Question, pq.Array(a.Options), a.Choice, a.Answer, a.Correct, a.Awarded, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record attempt for quiz %s: %w", a.QuizID, err)
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, sessionID string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT quiz_id, title, question, options, choice, answer, correct, awarded, created_at
		FROM quiz_attempts
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		a := Attempt{SessionID: sessionID}
		if err := rows.Scan(&a.QuizID, &a.Title, &a.Question, pq.Array(&a.Options), &a.Choice, &a.Answer, &a.Correct, &a.Awarded, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
