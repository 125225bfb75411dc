// Package backend defines the boundary to the hosted backend that holds
// accounts, quiz results, search history and the course listing. Two
// implementations exist: the Supabase REST client and the local sqlite store.
package backend

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthorized is returned when a session token does not resolve to a user.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a record addressed by id does not exist.
	ErrNotFound = errors.New("not found")
)

// User is the signed-in account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayName returns the user's name, or the local part of the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	for i := 0; i < len(u.Email); i++ {
		if u.Email[i] == '@' {
			return u.Email[:i]
		}
	}
	return u.Email
}

// QuizResult is one finished quiz attempt.
type QuizResult struct {
	Username       string    `json:"username"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	UserMajor      string    `json:"user_major"`
	CreatedAt      time.Time `json:"created_at"`
}

// SearchRecord is one entry of a user's search history.
type SearchRecord struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Query     string    `json:"search_query"`
	CreatedAt time.Time `json:"created_at"`
}

// Course is a catalog course as stored by the backend.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	VideoURL    string   `json:"video_url"`
	Skills      []string `json:"skills"`
}

// CourseLister lists the courses the backend knows about.
type CourseLister interface {
	ListCourses(ctx context.Context) ([]Course, error)
}

// Backend is everything the application persists outside the process.
type Backend interface {
	CourseLister

	// CurrentUser resolves a session token to a user, or ErrUnauthorized.
	CurrentUser(ctx context.Context, token string) (User, error)

	InsertQuizResult(ctx context.Context, r QuizResult) error
	// TopQuizResults returns up to limit results ordered by score descending.
	TopQuizResults(ctx context.Context, limit int) ([]QuizResult, error)

	InsertSearch(ctx context.Context, r SearchRecord) (SearchRecord, error)
	// RecentSearches returns up to limit searches for email, newest first.
	RecentSearches(ctx context.Context, email string, limit int) ([]SearchRecord, error)
	// DeleteSearch removes one of email's search records. A record owned by
	// someone else is reported as ErrNotFound.
	DeleteSearch(ctx context.Context, email, id string) error
}
