// Package quiz generates topic quizzes, scores attempts and keeps the
// leaderboard.
package quiz

import (
	"fmt"
	"strings"
	"time"
)

// ChoiceCount is the number of options every question carries.
const ChoiceCount = 4

// PointsPerCorrect converts a score into leaderboard points.
const PointsPerCorrect = 50

// Question is one multiple choice question. The JSON names match what the
// model is asked to produce.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"question"`
	Choices      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
}

// ValidationError describes why a generated question was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.Field, e.Message)
}

// Validate checks the invariants every kept question satisfies.
func Validate(q Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{Field: "question", Message: "is empty"}
	}
	if len(q.Choices) != ChoiceCount {
		return &ValidationError{Field: "options", Message: fmt.Sprintf("has %d entries, want %d", len(q.Choices), ChoiceCount)}
	}
	for i, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return &ValidationError{Field: "options", Message: fmt.Sprintf("option %d is empty", i)}
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= ChoiceCount {
		return &ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("%d is out of range", q.CorrectIndex)}
	}
	return nil
}

// Score counts answers matching the correct choice. answers[i] answers
// questions[i]; extra answers are ignored and missing ones count as wrong.
func Score(questions []Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			score++
		}
	}
	return score
}

// Outcome reports what normalization discarded.
type Outcome struct {
	Dropped int
}

// Result is a finished attempt as saved to the leaderboard.
type Result struct {
	Username  string    `json:"username"`
	Topic     string    `json:"topic"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Major     string    `json:"major,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Topic  string `json:"topic"`
}
