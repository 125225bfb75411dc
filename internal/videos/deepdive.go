package videos

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/consumer"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/normalize"
)

const maxDeepDiveConcurrency = 4

// DeepDives finds a video for every recommended course concurrently. Each
// lookup writes only its own board slot, keyed by course id; a failed
// lookup fails its slot without touching the others. The returned list
// follows recs order and substitutes a placeholder for every slot that did
// not succeed. Recommendations for unknown courses are skipped.
func DeepDives(ctx context.Context, finder VideoFinder, cat *catalog.Catalog, recs []catalog.Recommendation,
	board *consumer.Board[DeepDive], log *logger.Logger) []DeepDive {
	if log == nil {
		log = logger.Nop()
	}

	var courses []catalog.Course
	seen := make(map[string]bool, len(recs))
	var g errgroup.Group
	g.SetLimit(maxDeepDiveConcurrency)

	for _, rec := range recs {
		course, ok := cat.Course(rec.CourseID)
		if !ok || seen[course.ID] {
			continue
		}
		seen[course.ID] = true
		courses = append(courses, course)
		ticket := board.Begin(course.ID)
		query := DeepDiveQuery(course)

		g.Go(func() error {
			dd, err := finder.Find(ctx, query)
			if err != nil {
				log.Warn("deep dive lookup failed", "course", course.ID, "query", query, "error", err)
				board.Fail(ticket, err)
				return nil
			}
			dd.CourseID = course.ID
			if dd.Title == normalize.PlaceholderTitle(query) {
				dd.Title = Placeholder(course).Title
			}
			if !board.Succeed(ticket, dd) {
				log.Debug("discarded stale deep dive", "course", course.ID)
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]DeepDive, 0, len(courses))
	for _, course := range courses {
		snap, ok := board.Get(course.ID)
		if ok && snap.State == consumer.Succeeded {
			out = append(out, snap.Value)
			continue
		}
		out = append(out, Placeholder(course))
	}
	return out
}

// DeepDiveQuery is the search subject for a course: its first skill, or its
// title when it lists none.
func DeepDiveQuery(course catalog.Course) string {
	for _, s := range course.Skills {
		if s != "" {
			return s
		}
	}
	return course.Title
}

// Placeholder is the deep dive shown when no video could be found.
func Placeholder(course catalog.Course) DeepDive {
	query := DeepDiveQuery(course)
	return DeepDive{
		CourseID:  course.ID,
		Query:     query,
		Title:     "Deep Dive: " + course.Title,
		URL:       normalize.YouTubeSearchURL(query),
		Rationale: normalize.PlaceholderRationale,
	}
}
