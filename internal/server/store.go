package server

import (
	"context"
	"errors"
	"time"

	"github.com/globalvillage/api/internal/quiz"
)

var ErrNotFound = errors.New("not found")

// AnswerRecord is one answered question from a session's history.
type AnswerRecord struct {
	Question   int       `json:"question"`
	Choice     string    `json:"choice"`
	IsCorrect  bool      `json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Store persists quiz sessions across requests. Sessions are addressed
// by an opaque token handed out on start.
type Store interface {
	CreateSession(ctx context.Context, sess *quiz.Session) (token string, err error)
	Session(ctx context.Context, token string) (*quiz.Session, error)
	SaveSession(ctx context.Context, token string, sess *quiz.Session) error

	RecordAnswer(ctx context.Context, token string, question int, choice string, isCorrect bool) error
	ListAnswers(ctx context.Context, token string) ([]AnswerRecord, error)
	ClearAnswers(ctx context.Context, token string) error
}
