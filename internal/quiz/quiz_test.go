package quiz

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func testPool(n int) []Country {
	pool := make([]Country, n)
	for i := range pool {
		pool[i] = Country{
			Name: fmt.Sprintf("Country %02d", i),
			Flag: fmt.Sprintf("https://flagcdn.com/c%02d.png", i),
		}
	}
	return pool
}

func TestNewEmptyPool(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("err = %v, want ErrEmptyPool", err)
	}
}

func TestChoiceSetProperties(t *testing.T) {
	pool := testPool(30)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Across a full session, every question's choice set has exactly
	// 4 entries, exactly one correct name, and no duplicates.
	for q := 1; q <= TotalQuestions; q++ {
		if len(s.Choices) != ChoiceCount {
			t.Fatalf("q%d: %d choices, want %d", q, len(s.Choices), ChoiceCount)
		}

		seen := map[string]bool{}
		correctCount := 0
		for _, c := range s.Choices {
			key := strings.ToLower(c)
			if seen[key] {
				t.Fatalf("q%d: duplicate choice %q", q, c)
			}
			seen[key] = true
			if strings.EqualFold(c, s.Correct) {
				correctCount++
			}
		}
		if correctCount != 1 {
			t.Fatalf("q%d: correct name appears %d times", q, correctCount)
		}

		if _, err := s.Answer(s.Choices[0]); err != nil {
			t.Fatalf("q%d answer: %v", q, err)
		}
		if err := s.Next(pool); err != nil {
			t.Fatalf("q%d next: %v", q, err)
		}
	}
	if !s.Finished {
		t.Error("session should be finished after the last question")
	}
}

func TestTinyPoolSkipsWrongChoices(t *testing.T) {
	// Fewer than 4 distinct names: the wrong choices are skipped
	// entirely, leaving only the correct name.
	s, err := New(testPool(3))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(s.Choices) != 1 {
		t.Fatalf("choices = %v, want just the correct name", s.Choices)
	}
	if s.Choices[0] != s.Correct {
		t.Errorf("choices = %v, correct = %q", s.Choices, s.Correct)
	}
}

func TestScoringAndStreak(t *testing.T) {
	pool := testPool(30)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Answer pattern over 10 questions; streak must equal the length
	// of the trailing run of correct answers, score the total count.
	pattern := []bool{true, true, false, true, false, true, true, true, false, true}

	for i, wantCorrect := range pattern {
		choice := s.Correct
		if !wantCorrect {
			choice = wrongChoice(t, s)
		}

		res, err := s.Answer(choice)
		if err != nil {
			t.Fatalf("q%d answer: %v", i+1, err)
		}
		if res.Correct != wantCorrect {
			t.Fatalf("q%d: correct = %v, want %v", i+1, res.Correct, wantCorrect)
		}
		if err := s.Next(pool); err != nil {
			t.Fatalf("q%d next: %v", i+1, err)
		}
	}

	if s.Score != 7 {
		t.Errorf("score = %d, want 7", s.Score)
	}
	if s.Streak != 1 {
		t.Errorf("streak = %d, want trailing run of 1", s.Streak)
	}
	if !s.Finished {
		t.Error("session should be finished")
	}
}

func wrongChoice(t *testing.T, s *Session) string {
	t.Helper()
	for _, c := range s.Choices {
		if !strings.EqualFold(c, s.Correct) {
			return c
		}
	}
	t.Fatal("no wrong choice available")
	return ""
}

func TestAnswerLock(t *testing.T) {
	pool := testPool(10)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := s.Answer(s.Correct); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if _, err := s.Answer(s.Correct); !errors.Is(err, ErrLocked) {
		t.Errorf("second answer err = %v, want ErrLocked", err)
	}
	// The lock never releases until the session advances.
	if err := s.Next(pool); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := s.Answer(s.Correct); err != nil {
		t.Errorf("answer after advance: %v", err)
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	s, err := New(testPool(10))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Next(testPool(10)); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("err = %v, want ErrNotAnswered", err)
	}
}

func TestUsedNamesNeverShrink(t *testing.T) {
	pool := testPool(30)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	prev := 0
	for !s.Finished {
		if len(s.Used) <= prev {
			t.Fatalf("used set shrank: %d -> %d", prev, len(s.Used))
		}
		prev = len(s.Used)
		s.Answer(s.Choices[0])
		s.Next(pool)
	}
}

func TestExhaustedPoolFallsBackToRepeats(t *testing.T) {
	// A single-country pool can still run a full session: once the
	// unused pool is exhausted the engine reuses countries rather
	// than dead-ending.
	pool := testPool(1)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for q := 1; q <= TotalQuestions; q++ {
		if s.Correct != pool[0].Name {
			t.Fatalf("q%d: correct = %q", q, s.Correct)
		}
		if _, err := s.Answer(s.Correct); err != nil {
			t.Fatalf("q%d answer: %v", q, err)
		}
		if err := s.Next(pool); err != nil {
			t.Fatalf("q%d next: %v", q, err)
		}
	}
	if !s.Finished || s.Score != TotalQuestions {
		t.Errorf("finished = %v score = %d", s.Finished, s.Score)
	}
}

func TestRestartResetsEverything(t *testing.T) {
	pool := testPool(30)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	// Get partway in with some score.
	s.Answer(s.Correct)
	s.Next(pool)
	s.Answer(s.Correct)

	if err := s.Restart(pool); err != nil {
		t.Fatalf("restart: %v", err)
	}

	if s.Score != 0 || s.Streak != 0 {
		t.Errorf("score/streak = %d/%d, want 0/0", s.Score, s.Streak)
	}
	if s.Question != 1 {
		t.Errorf("question = %d, want 1 (fresh first question)", s.Question)
	}
	if len(s.Used) != 1 {
		t.Errorf("used = %v, want only the fresh question's country", s.Used)
	}
	if s.Answered || s.Finished {
		t.Error("lock and finished flag must reset")
	}
}

func TestHighScored(t *testing.T) {
	s := &Session{Score: HighScore}
	if !s.HighScored() {
		t.Error("score at threshold should celebrate")
	}
	s.Score = HighScore - 1
	if s.HighScored() {
		t.Error("score below threshold should not celebrate")
	}
}

func TestMonotonicQuestionIndex(t *testing.T) {
	pool := testPool(30)
	s, err := New(pool)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for want := 1; want <= TotalQuestions; want++ {
		if s.Question != want {
			t.Fatalf("question = %d, want %d", s.Question, want)
		}
		s.Answer(s.Choices[0])
		s.Next(pool)
	}
}
