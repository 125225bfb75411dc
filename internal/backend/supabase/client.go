// Package supabase implements backend.Backend against a Supabase project:
// GoTrue for the session user and PostgREST for the tables.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/logger"
)

const (
	quizzesTable = "quizzes"
	searchTable  = "search_history"
	coursesTable = "courses"
)

// Client talks to one Supabase project with its anon key. Per-user calls
// carry the caller's access token; table calls rely on row level security.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

var _ backend.Backend = (*Client)(nil)

// New creates a client for the project at baseURL.
func New(baseURL, anonKey string, log *logger.Logger) (*Client, error) {
	if baseURL == "" || anonKey == "" {
		return nil, fmt.Errorf("supabase URL and anon key are required")
	}
	if log == nil {
		log = logger.Nop()
	}
	h := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", anonKey).
		SetAuthToken(anonKey).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	return &Client{http: h, log: log}, nil
}

type authUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
}

func (c *Client) CurrentUser(ctx context.Context, token string) (backend.User, error) {
	if token == "" {
		return backend.User{}, backend.ErrUnauthorized
	}
	var u authUser
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&u).
		Get("/auth/v1/user")
	if err != nil {
		return backend.User{}, fmt.Errorf("fetch user: %w", err)
	}
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return backend.User{}, backend.ErrUnauthorized
	case resp.IsError():
		return backend.User{}, statusError("fetch user", resp)
	}

	name := u.UserMetadata.FullName
	if name == "" {
		name = u.UserMetadata.Name
	}
	return backend.User{ID: u.ID, Name: name, Email: u.Email}, nil
}

func (c *Client) InsertQuizResult(ctx context.Context, r backend.QuizResult) error {
	row := map[string]any{
		"username":        r.Username,
		"topic":           r.Topic,
		"score":           r.Score,
		"total_questions": r.TotalQuestions,
		"user_major":      r.UserMajor,
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody([]map[string]any{row}).
		Post("/rest/v1/" + quizzesTable)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	if resp.IsError() {
		return statusError("insert quiz result", resp)
	}
	return nil
}

func (c *Client) TopQuizResults(ctx context.Context, limit int) ([]backend.QuizResult, error) {
	var rows []backend.QuizResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "username,score,topic,total_questions,user_major,created_at",
			"order":  "score.desc",
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&rows).
		Get("/rest/v1/" + quizzesTable)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	if resp.IsError() {
		return nil, statusError("list quiz results", resp)
	}
	return rows, nil
}

// searchRow mirrors the search_history table. The id column may be a
// bigint or a uuid depending on how the project was provisioned.
type searchRow struct {
	ID        flexID    `json:"id,omitempty"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Query     string    `json:"search_query"`
	CreatedAt time.Time `json:"created_at"`
}

func (r searchRow) record() backend.SearchRecord {
	return backend.SearchRecord{
		ID:        string(r.ID),
		UserEmail: r.UserEmail,
		UserName:  r.UserName,
		Query:     r.Query,
		CreatedAt: r.CreatedAt,
	}
}

func (c *Client) InsertSearch(ctx context.Context, r backend.SearchRecord) (backend.SearchRecord, error) {
	body := map[string]any{
		"user_email":   r.UserEmail,
		"user_name":    r.UserName,
		"search_query": r.Query,
	}
	var rows []searchRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]map[string]any{body}).
		SetResult(&rows).
		Post("/rest/v1/" + searchTable)
	if err != nil {
		return backend.SearchRecord{}, fmt.Errorf("insert search: %w", err)
	}
	if resp.IsError() {
		return backend.SearchRecord{}, statusError("insert search", resp)
	}
	if len(rows) == 0 {
		// Row level security can hide the inserted row from the response.
		r.CreatedAt = time.Now().UTC()
		return r, nil
	}
	return rows[0].record(), nil
}

func (c *Client) RecentSearches(ctx context.Context, email string, limit int) ([]backend.SearchRecord, error) {
	var rows []searchRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":     "*",
			"user_email": "eq." + email,
			"order":      "created_at.desc",
			"limit":      strconv.Itoa(limit),
		}).
		SetResult(&rows).
		Get("/rest/v1/" + searchTable)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	if resp.IsError() {
		return nil, statusError("list searches", resp)
	}
	out := make([]backend.SearchRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

func (c *Client) DeleteSearch(ctx context.Context, email, id string) error {
	var rows []searchRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParams(map[string]string{
			"id":         "eq." + id,
			"user_email": "eq." + email,
		}).
		SetResult(&rows).
		Delete("/rest/v1/" + searchTable)
	if err != nil {
		return fmt.Errorf("delete search: %w", err)
	}
	if resp.IsError() {
		return statusError("delete search", resp)
	}
	if len(rows) == 0 {
		return backend.ErrNotFound
	}
	return nil
}

type courseRow struct {
	ID          flexID   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	VideoURL    string   `json:"video_url"`
	Skills      []string `json:"skills"`
}

func (c *Client) ListCourses(ctx context.Context) ([]backend.Course, error) {
	var rows []courseRow
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetResult(&rows).
		Get("/rest/v1/" + coursesTable)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if resp.IsError() {
		return nil, statusError("list courses", resp)
	}
	out := make([]backend.Course, len(rows))
	for i, r := range rows {
		out[i] = backend.Course{
			ID:          string(r.ID),
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Thumbnail:   r.Thumbnail,
			VideoURL:    r.VideoURL,
			Skills:      r.Skills,
		}
	}
	return out, nil
}

// StatusError is a non-2xx answer from the project.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: supabase returned %d: %s", e.Op, e.Status, e.Body)
}

func statusError(op string, resp *resty.Response) error {
	return &StatusError{Op: op, Status: resp.StatusCode(), Body: resp.String()}
}

// flexID accepts either a JSON string or a JSON number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}
