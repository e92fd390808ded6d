// Package quiz implements the Guess The Flag session state machine:
// a fixed-length multiple-choice run with score, streak, and
// used-country tracking. Sessions are plain serializable values; the
// caller owns persistence and randomness comes from the shared
// math/rand/v2 source.
package quiz

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
)

const (
	// TotalQuestions is the fixed session length.
	TotalQuestions = 10
	// ChoiceCount is the answer-choice set size when the pool allows.
	ChoiceCount = 4
	// HighScore is the final-score threshold for the enhanced
	// celebration at the end screen.
	HighScore = 8
)

var (
	// ErrEmptyPool blocks a session from starting with no countries.
	ErrEmptyPool = errors.New("quiz: empty country pool")
	// ErrLocked rejects a second answer to the same question.
	ErrLocked = errors.New("quiz: question already answered")
	// ErrNotAnswered rejects advancing past an unanswered question.
	ErrNotAnswered = errors.New("quiz: current question not answered")
	// ErrFinished rejects answers and advances after the last question.
	ErrFinished = errors.New("quiz: session finished")
)

// Country is one entry of the quiz pool.
type Country struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// Session is the ephemeral state of one quiz run. Question is 1-based
// and monotonically increasing within a session; Used never shrinks
// until a restart.
type Session struct {
	Question int      `json:"question"`
	Score    int      `json:"score"`
	Streak   int      `json:"streak"`
	Used     []string `json:"used"`
	Correct  string   `json:"correct"`
	Flag     string   `json:"flag"`
	Choices  []string `json:"choices"`
	Answered bool     `json:"answered"`
	Finished bool     `json:"finished"`
}

// AnswerResult reports the outcome of one accepted answer.
type AnswerResult struct {
	Correct     bool
	CorrectName string
	Score       int
	Streak      int
}

// New starts a session against pool and asks the first question.
func New(pool []Country) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	s := &Session{}
	s.ask(pool)
	return s, nil
}

// Answer accepts exactly one answer for the current question. Further
// calls return ErrLocked until the session advances. A correct choice
// increments score and streak; a wrong one resets the streak to zero.
// Matching is case-insensitive.
func (s *Session) Answer(choice string) (AnswerResult, error) {
	if s.Finished {
		return AnswerResult{}, ErrFinished
	}
	if s.Answered {
		return AnswerResult{}, ErrLocked
	}
	s.Answered = true

	correct := strings.EqualFold(strings.TrimSpace(choice), s.Correct)
	if correct {
		s.Score++
		s.Streak++
	} else {
		s.Streak = 0
	}

	return AnswerResult{
		Correct:     correct,
		CorrectName: s.Correct,
		Score:       s.Score,
		Streak:      s.Streak,
	}, nil
}

// Next advances to the following question, or finishes the session
// when the fixed question count is reached. The current question must
// have been answered first.
func (s *Session) Next(pool []Country) error {
	if s.Finished {
		return ErrFinished
	}
	if !s.Answered {
		return ErrNotAnswered
	}
	if s.Question >= TotalQuestions {
		s.Finished = true
		return nil
	}
	if len(pool) == 0 {
		return ErrEmptyPool
	}
	s.ask(pool)
	return nil
}

// Restart discards all session state and asks a fresh first question.
func (s *Session) Restart(pool []Country) error {
	if len(pool) == 0 {
		return ErrEmptyPool
	}
	*s = Session{}
	s.ask(pool)
	return nil
}

// HighScored reports whether the final score crossed the celebration
// threshold.
func (s *Session) HighScored() bool {
	return s.Score >= HighScore
}

// ask picks the next country, records it as used, builds the shuffled
// choice set, and releases the answer lock.
func (s *Session) ask(pool []Country) {
	chosen := s.pickCountry(pool)
	s.Used = append(s.Used, strings.ToLower(chosen.Name))

	s.Question++
	s.Correct = chosen.Name
	s.Flag = chosen.Flag
	s.Choices = buildChoices(pool, chosen.Name)
	s.Answered = false
}

// pickCountry prefers countries not yet used this session. When the
// unused pool is exhausted it falls back to the whole pool, so short
// pools repeat countries rather than ending the run early.
func (s *Session) pickCountry(pool []Country) Country {
	available := make([]Country, 0, len(pool))
	for _, c := range pool {
		if !slices.Contains(s.Used, strings.ToLower(c.Name)) {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		available = pool
	}
	return available[rand.IntN(len(available))]
}

// buildChoices returns the correct name plus three distinct wrong
// names drawn without replacement, shuffled. If the pool holds fewer
// than four distinct names the wrong choices are skipped entirely and
// only the correct name is offered.
func buildChoices(pool []Country, correct string) []string {
	wrongs := make([]string, 0, len(pool))
	for _, c := range pool {
		if c.Name != "" && !strings.EqualFold(c.Name, correct) {
			wrongs = append(wrongs, c.Name)
		}
	}

	choices := []string{correct}
	if len(wrongs) >= ChoiceCount-1 {
		rand.Shuffle(len(wrongs), func(i, j int) {
			wrongs[i], wrongs[j] = wrongs[j], wrongs[i]
		})
		choices = append(choices, wrongs[:ChoiceCount-1]...)
	}

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}
