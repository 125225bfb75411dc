package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/prompt"
)

// DefaultLimit is how many searches Recent returns when asked for none.
const DefaultLimit = MaxLocalEntries

// Service records and lists searches.
type Service struct {
	backend backend.Backend
	cache   *LocalCache
	log     *logger.Logger
}

func NewService(b backend.Backend, cache *LocalCache, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{backend: b, cache: cache, log: log}
}

// Record saves query for user. A nil user only updates the local cache.
// A backend failure is logged and the cached entry is returned.
func (s *Service) Record(ctx context.Context, user *backend.User, query string) (Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Entry{}, &prompt.InvalidInputError{Field: "query", Reason: "must not be empty"}
	}

	entry, err := s.cache.Push(query)
	if err != nil {
		s.log.Warn("history cache write failed", "error", err)
	}

	if user == nil || s.backend == nil {
		return entry, nil
	}

	rec, err := s.backend.InsertSearch(ctx, backend.SearchRecord{
		UserEmail: user.Email,
		UserName:  user.DisplayName(),
		Query:     query,
	})
	if err != nil {
		s.log.Warn("history backend insert failed", "error", err)
		return entry, nil
	}
	return fromRecord(rec), nil
}

// Recent lists the user's latest searches, newest first. Anonymous users
// and backend failures are served from the local cache.
func (s *Service) Recent(ctx context.Context, user *backend.User, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if user != nil && s.backend != nil {
		recs, err := s.backend.RecentSearches(ctx, user.Email, limit)
		if err == nil {
			out := make([]Entry, len(recs))
			for i, r := range recs {
				out[i] = fromRecord(r)
			}
			return out
		}
		s.log.Warn("history backend list failed, using local cache", "error", err)
	}

	local := s.cache.Entries()
	if len(local) > limit {
		local = local[:limit]
	}
	return local
}

// Delete removes one of user's backend search records by id.
func (s *Service) Delete(ctx context.Context, user *backend.User, id string) error {
	if strings.TrimSpace(id) == "" {
		return &prompt.InvalidInputError{Field: "id", Reason: "must not be empty"}
	}
	if user == nil {
		return backend.ErrUnauthorized
	}
	if s.backend == nil {
		return backend.ErrNotFound
	}
	if err := s.backend.DeleteSearch(ctx, user.Email, id); err != nil {
		return fmt.Errorf("delete search %s: %w", id, err)
	}
	return nil
}

// Forget removes a query from the local cache.
func (s *Service) Forget(query string) error {
	return s.cache.Remove(query)
}

func fromRecord(r backend.SearchRecord) Entry {
	return Entry{
		ID:        r.ID,
		Email:     r.UserEmail,
		Name:      r.UserName,
		Query:     r.Query,
		CreatedAt: r.CreatedAt,
	}
}
