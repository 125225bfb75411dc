package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/skillboost/skillboost/internal/backend"
)

var _ backend.Backend = (*Store)(nil)

// CurrentUser resolves a local session. Local mode has no password flow:
// the token is the user's email and the account is created on first use.
func (s *Store) CurrentUser(ctx context.Context, token string) (backend.User, error) {
	email := strings.ToLower(strings.TrimSpace(token))
	if email == "" || !strings.Contains(email, "@") {
		return backend.User{}, backend.ErrUnauthorized
	}

	name := (backend.User{Email: email}).DisplayName()
	query, args := builder.Insert(usersTable.Name).
		Columns("email", "name", "created_at").
		Values(email, name, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("email"), entsql.DoNothing()).
		Query()
	if _, err := s.exec(ctx, query, args); err != nil {
		return backend.User{}, fmt.Errorf("register user: %w", err)
	}

	query, args = builder.Select("id", "name", "email").
		From(builder.Table(usersTable.Name)).
		Where(entsql.EQ("email", email)).
		Query()
	var (
		id int
		u  backend.User
	)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id, &u.Name, &u.Email); err != nil {
		return backend.User{}, fmt.Errorf("load user: %w", err)
	}
	u.ID = fmt.Sprint(id)
	return u, nil
}

func (s *Store) InsertQuizResult(ctx context.Context, r backend.QuizResult) error {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	query, args := builder.Insert(quizResultsTable.Name).
		Columns("username", "topic", "score", "total_questions", "user_major", "created_at").
		Values(r.Username, r.Topic, r.Score, r.TotalQuestions, r.UserMajor, created.UTC()).
		Query()
	if _, err := s.exec(ctx, query, args); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}
	return nil
}

// TopQuizResults orders by score, oldest first among equal scores.
func (s *Store) TopQuizResults(ctx context.Context, limit int) ([]backend.QuizResult, error) {
	sel := builder.Select("username", "topic", "score", "total_questions", "user_major", "created_at").
		From(builder.Table(quizResultsTable.Name)).
		OrderBy(entsql.Desc("score"), entsql.Asc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []backend.QuizResult
	for rows.Next() {
		var r backend.QuizResult
		if err := rows.Scan(&r.Username, &r.Topic, &r.Score, &r.TotalQuestions, &r.UserMajor, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) InsertSearch(ctx context.Context, r backend.SearchRecord) (backend.SearchRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	query, args := builder.Insert(searchHistoryTable.Name).
		Columns("id", "user_email", "user_name", "search_query", "created_at").
		Values(r.ID, r.UserEmail, r.UserName, r.Query, r.CreatedAt).
		Query()
	if _, err := s.exec(ctx, query, args); err != nil {
		return backend.SearchRecord{}, fmt.Errorf("save search: %w", err)
	}
	return r, nil
}

func (s *Store) RecentSearches(ctx context.Context, email string, limit int) ([]backend.SearchRecord, error) {
	sel := builder.Select("id", "user_email", "user_name", "search_query", "created_at").
		From(builder.Table(searchHistoryTable.Name)).
		Where(entsql.EQ("user_email", email)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer rows.Close()

	var out []backend.SearchRecord
	for rows.Next() {
		var r backend.SearchRecord
		if err := rows.Scan(&r.ID, &r.UserEmail, &r.UserName, &r.Query, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSearch(ctx context.Context, email, id string) error {
	query, args := builder.Delete(searchHistoryTable.Name).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("user_email", email))).
		Query()
	res, err := s.exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("delete search: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete search: %w", err)
	}
	if n == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// ListCourses returns the stored catalog in its saved order. An empty
// table yields an empty slice, which callers treat as "use the seed".
func (s *Store) ListCourses(ctx context.Context) ([]backend.Course, error) {
	query, args := builder.Select("id", "title", "description", "category", "thumbnail", "video_url", "skills").
		From(builder.Table(coursesTable.Name)).
		OrderBy(entsql.Asc("position")).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var out []backend.Course
	for rows.Next() {
		var (
			c      backend.Course
			skills sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Thumbnail, &c.VideoURL, &skills); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		if skills.Valid && skills.String != "" {
			if err := json.Unmarshal([]byte(skills.String), &c.Skills); err != nil {
				return nil, fmt.Errorf("decode skills for course %s: %w", c.ID, err)
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceCourses swaps the stored catalog for courses, keeping their order.
func (s *Store) ReplaceCourses(ctx context.Context, courses []backend.Course) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query, args := builder.Delete(coursesTable.Name).Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear courses: %w", err)
	}

	if len(courses) > 0 {
		ins := builder.Insert(coursesTable.Name).
			Columns("id", "position", "title", "description", "category", "thumbnail", "video_url", "skills")
		seen := make(map[string]bool, len(courses))
		for i, c := range courses {
			if c.ID == "" || seen[c.ID] {
				return fmt.Errorf("course %d: missing or duplicate id %q", i, c.ID)
			}
			seen[c.ID] = true
			skills, mErr := json.Marshal(c.Skills)
			if mErr != nil {
				return fmt.Errorf("encode skills for course %s: %w", c.ID, mErr)
			}
			ins = ins.Values(c.ID, i, c.Title, c.Description, c.Category, c.Thumbnail, c.VideoURL, string(skills))
		}
		query, args = ins.Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert courses: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
