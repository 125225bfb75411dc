package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/prompt"
)

// DefaultLeaderboardSize is how many rows the leaderboard shows.
const DefaultLeaderboardSize = 5

// Service persists results and reads the leaderboard.
type Service struct {
	backend backend.Backend
	major   string
	log     *logger.Logger
	now     func() time.Time
}

// NewService creates a Service. major is recorded with results that do not
// name one.
func NewService(b backend.Backend, major string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{backend: b, major: major, log: log, now: time.Now}
}

// SaveResult records a finished attempt.
func (s *Service) SaveResult(ctx context.Context, r Result) error {
	r.Username = strings.TrimSpace(r.Username)
	r.Topic = strings.TrimSpace(r.Topic)
	if r.Username == "" {
		return &prompt.InvalidInputError{Field: "username", Reason: "must not be empty"}
	}
	if r.Topic == "" {
		return &prompt.InvalidInputError{Field: "topic", Reason: "must not be empty"}
	}
	if r.Total <= 0 || r.Score < 0 || r.Score > r.Total {
		return &prompt.InvalidInputError{Field: "score", Reason: fmt.Sprintf("%d of %d is out of range", r.Score, r.Total)}
	}
	if r.Major == "" {
		r.Major = s.major
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}

	err := s.backend.InsertQuizResult(ctx, backend.QuizResult{
		Username:       r.Username,
		Topic:          r.Topic,
		Score:          r.Score,
		TotalQuestions: r.Total,
		UserMajor:      r.Major,
		CreatedAt:      r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	s.log.Info("quiz result saved", "user", r.Username, "topic", r.Topic, "score", r.Score, "total", r.Total)
	return nil
}

// Leaderboard returns the top results by score. A backend failure yields an
// empty board.
func (s *Service) Leaderboard(ctx context.Context, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	results, err := s.backend.TopQuizResults(ctx, limit)
	if err != nil {
		s.log.Warn("leaderboard unavailable", "error", err)
		return []LeaderboardEntry{}
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, r := range results {
		name := strings.TrimSpace(r.Username)
		if name == "" {
			name = fmt.Sprintf("Student %d", i+1)
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			Name:   name,
			Points: r.Score * PointsPerCorrect,
			Topic:  r.Topic,
		})
	}
	return entries
}
