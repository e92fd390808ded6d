package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/globalvillage/api/internal/quiz"
)

const errFlagsUnavailable = "Sorry, we couldn't load flags right now."

const (
	eventAnswerCorrect = "answer_correct"
	eventAnswerWrong   = "answer_wrong"
	eventQuizFinished  = "quiz_finished"
)

// QuizStateResponse is a session snapshot. Answers and HighScore are
// populated only once the session has finished.
type QuizStateResponse struct {
	Token     string         `json:"token"`
	Session   *quiz.Session  `json:"session"`
	Answers   []AnswerRecord `json:"answers,omitempty"`
	HighScore bool           `json:"highScore,omitempty"`
}

func handleQuizStart(src CountrySource, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := src.Pool(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, errFlagsUnavailable)
			return
		}

		sess, err := quiz.New(pool)
		if errors.Is(err, quiz.ErrEmptyPool) {
			writeError(w, http.StatusServiceUnavailable, "no flags available")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not start quiz")
			return
		}

		token, err := store.CreateSession(r.Context(), sess)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not start quiz")
			return
		}

		writeJSON(w, http.StatusCreated, QuizStateResponse{Token: token, Session: sess})
	}
}

func handleQuizState(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		sess, err := store.Session(r.Context(), token)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not load quiz session")
			return
		}

		resp := QuizStateResponse{Token: token, Session: sess}
		if sess.Finished {
			resp.HighScore = sess.HighScored()
			if answers, err := store.ListAnswers(r.Context(), token); err == nil {
				resp.Answers = answers
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleQuizAnswer(store Store, broker *Broker) http.HandlerFunc {
	type request struct {
		Choice string `json:"choice"`
	}
	type response struct {
		Correct     bool   `json:"correct"`
		CorrectName string `json:"correctName"`
		Score       int    `json:"score"`
		Streak      int    `json:"streak"`
		Last        bool   `json:"last"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		var req request
		if err := readJSON(r, &req); err != nil || req.Choice == "" {
			writeError(w, http.StatusBadRequest, "choice is required")
			return
		}

		sess, err := store.Session(r.Context(), token)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not load quiz session")
			return
		}

		result, err := sess.Answer(req.Choice)
		switch {
		case errors.Is(err, quiz.ErrLocked):
			writeError(w, http.StatusConflict, "question already answered")
			return
		case errors.Is(err, quiz.ErrFinished):
			writeError(w, http.StatusConflict, "quiz already finished")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "could not record answer")
			return
		}

		if err := store.SaveSession(r.Context(), token, sess); err != nil {
			writeError(w, http.StatusInternalServerError, "could not record answer")
			return
		}
		if err := store.RecordAnswer(r.Context(), token, sess.Question, req.Choice, result.Correct); err != nil {
			writeError(w, http.StatusInternalServerError, "could not record answer")
			return
		}

		eventType := eventAnswerWrong
		if result.Correct {
			eventType = eventAnswerCorrect
		}
		broker.Publish(token, SSEEvent{
			Type:        eventType,
			Question:    sess.Question,
			CorrectName: result.CorrectName,
			Score:       result.Score,
			Streak:      result.Streak,
		})

		writeJSON(w, http.StatusOK, response{
			Correct:     result.Correct,
			CorrectName: result.CorrectName,
			Score:       result.Score,
			Streak:      result.Streak,
			Last:        sess.Question >= quiz.TotalQuestions,
		})
	}
}

func handleQuizNext(src CountrySource, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		sess, err := store.Session(r.Context(), token)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not load quiz session")
			return
		}

		pool, err := src.Pool(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, errFlagsUnavailable)
			return
		}

		err = sess.Next(pool)
		switch {
		case errors.Is(err, quiz.ErrNotAnswered):
			writeError(w, http.StatusConflict, "answer the current question first")
			return
		case errors.Is(err, quiz.ErrFinished):
			writeError(w, http.StatusConflict, "quiz already finished")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "could not advance quiz")
			return
		}

		if err := store.SaveSession(r.Context(), token, sess); err != nil {
			writeError(w, http.StatusInternalServerError, "could not advance quiz")
			return
		}

		if sess.Finished {
			broker.Publish(token, SSEEvent{
				Type:      eventQuizFinished,
				Score:     sess.Score,
				Streak:    sess.Streak,
				HighScore: sess.HighScored(),
			})
		}

		resp := QuizStateResponse{Token: token, Session: sess}
		if sess.Finished {
			resp.HighScore = sess.HighScored()
			if answers, err := store.ListAnswers(r.Context(), token); err == nil {
				resp.Answers = answers
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleQuizRestart(src CountrySource, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		sess, err := store.Session(r.Context(), token)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "quiz session not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not load quiz session")
			return
		}

		pool, err := src.Pool(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, errFlagsUnavailable)
			return
		}

		if err := sess.Restart(pool); err != nil {
			writeError(w, http.StatusServiceUnavailable, "no flags available")
			return
		}

		if err := store.ClearAnswers(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "could not restart quiz")
			return
		}
		if err := store.SaveSession(r.Context(), token, sess); err != nil {
			writeError(w, http.StatusInternalServerError, "could not restart quiz")
			return
		}

		writeJSON(w, http.StatusOK, QuizStateResponse{Token: token, Session: sess})
	}
}
