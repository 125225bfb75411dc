package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

// MaxRecommendations caps how many courses one goal is matched to.
const MaxRecommendations = 3

const defaultReason = "Closes a gap between the syllabus and your goal."

// Recommendation pairs a catalog course with the model's reason for it.
type Recommendation struct {
	CourseID string `json:"id"`
	Reason   string `json:"reason"`
}

var recommendationItem = &llm.Schema{
	Name: "course-recommendation-item",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "string", "minLength": 1},
			"reason": map[string]any{"type": "string"},
		},
		"required": []any{"id"},
	},
}

// Recommender matches goals to catalog courses through the model facade.
type Recommender struct {
	provider llm.Provider
	catalog  *Catalog
	log      *logger.Logger
}

func NewRecommender(provider llm.Provider, c *Catalog, log *logger.Logger) *Recommender {
	if log == nil {
		log = logger.Nop()
	}
	return &Recommender{provider: provider, catalog: c, log: log}
}

// Recommend returns up to MaxRecommendations courses for goal in the
// model's order. Ids outside the catalog and repeats are discarded.
func (r *Recommender) Recommend(ctx context.Context, goal string) ([]Recommendation, error) {
	req, err := prompt.RecommendCourses(goal, r.catalog.Items())
	if err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, req.Purpose())

	resp, err := r.provider.Generate(ctx, req.LLM())
	if err != nil {
		return nil, fmt.Errorf("recommend courses: %w", err)
	}

	known := func(rec Recommendation) error {
		if _, ok := r.catalog.Course(strings.TrimSpace(rec.CourseID)); !ok {
			return fmt.Errorf("unknown course %q", rec.CourseID)
		}
		return nil
	}
	res := normalize.ParseArray(resp.Text(), recommendationItem, known)
	recs, ok := res.Get()
	if !ok {
		r.log.Warn("recommendation reply unusable", "goal", req.Subject(), "reason", res.Reason)
		return nil, res.Err()
	}
	if res.Dropped > 0 {
		r.log.Info("dropped recommendations outside the catalog", "dropped", res.Dropped)
	}

	out := make([]Recommendation, 0, MaxRecommendations)
	seen := make(map[string]bool, len(recs))
	for _, rec := range recs {
		rec.CourseID = strings.TrimSpace(rec.CourseID)
		if seen[rec.CourseID] {
			continue
		}
		seen[rec.CourseID] = true
		if strings.TrimSpace(rec.Reason) == "" {
			rec.Reason = defaultReason
		}
		out = append(out, rec)
		if len(out) == MaxRecommendations {
			break
		}
	}
	return out, nil
}
