package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/globalvillage/api/internal/quiz"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *quiz.Session) (string, error) {
	state, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	var token string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO quiz_sessions (token, state)
		VALUES (lower(hex(randomblob(16))), ?)
		RETURNING token
	`, string(state)).Scan(&token)
	return token, err
}

func (s *SQLiteStore) Session(ctx context.Context, token string) (*quiz.Session, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `
		SELECT state FROM quiz_sessions WHERE token = ?
	`, token).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess quiz.Session
	if err := json.Unmarshal([]byte(state), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLiteStore) SaveSession(ctx context.Context, token string, sess *quiz.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE quiz_sessions
		SET state = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE token = ?
	`, string(state), token)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) RecordAnswer(ctx context.Context, token string, question int, choice string, isCorrect bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_answers (session_token, question, choice, is_correct)
		VALUES (?, ?, ?, ?)
	`, token, question, choice, isCorrect)
	return err
}

func (s *SQLiteStore) ListAnswers(ctx context.Context, token string) ([]AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, choice, is_correct, answered_at
		FROM quiz_answers
		WHERE session_token = ?
		ORDER BY question
	`, token)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var answeredAt string
		if err := rows.Scan(&rec.Question, &rec.Choice, &rec.IsCorrect, &answeredAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse("2006-01-02T15:04:05.000Z", answeredAt); err == nil {
			rec.AnsweredAt = t
		}
		answers = append(answers, rec)
	}
	return answers, rows.Err()
}

func (s *SQLiteStore) ClearAnswers(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM quiz_answers WHERE session_token = ?
	`, token)
	return err
}
