// Package recovery builds recovery paths: short ordered plans that take a
// student from the university syllabus to an industry goal.
package recovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

// MaxSteps caps how many steps a path keeps.
const MaxSteps = 4

const searchEngine = "https://www.google.com/search?q="

// envelope is the lenient shape replies are checked against. Per-step
// problems are handled by dropping the step, not by rejecting the path.
var envelope = &llm.Schema{
	Name: "recovery-path-envelope",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
		},
		"required": []any{"steps"},
	},
}

// Step is one stage of a recovery path.
type Step struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Query        string `json:"searchQuery"`
	ResourceType string `json:"resourceType,omitempty"`
	ResourceLink string `json:"resourceLink,omitempty"`
}

// Link returns where the step card points: the model's resource link when
// it is an absolute http(s) URL, otherwise a web search for the query (or
// the title when there is no query).
func (s Step) Link() string {
	if u, err := url.Parse(strings.TrimSpace(s.ResourceLink)); err == nil &&
		(u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return u.String()
	}
	q := strings.TrimSpace(s.Query)
	if q == "" {
		q = strings.TrimSpace(s.Title)
	}
	return searchEngine + url.QueryEscape(q)
}

// Path is a generated recovery path.
type Path struct {
	Goal    string `json:"goal"`
	Concept string `json:"concept,omitempty"`
	Steps   []Step `json:"steps"`
}

// Generator produces recovery paths through the model facade.
type Generator struct {
	provider llm.Provider
	log      *logger.Logger
}

func NewGenerator(provider llm.Provider, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{provider: provider, log: log}
}

// Generate asks for a path toward goal. Steps without a title are dropped
// and at most MaxSteps are kept. A reply with no usable step yields a
// *normalize.MalformedError.
func (g *Generator) Generate(ctx context.Context, goal string) (Path, error) {
	req, err := prompt.RecoveryPathForGoal(goal)
	if err != nil {
		return Path{}, err
	}
	ctx = llm.WithPurpose(ctx, req.Purpose())

	resp, err := g.provider.Generate(ctx, req.LLM())
	if err != nil {
		return Path{}, fmt.Errorf("generate recovery path: %w", err)
	}

	res := normalize.ParseObject[Path](resp.Text(), envelope)
	path, ok := res.Get()
	if !ok {
		g.log.Warn("recovery path reply unusable", "goal", req.Subject(), "reason", res.Reason)
		return Path{}, res.Err()
	}

	steps := make([]Step, 0, MaxSteps)
	for _, s := range path.Steps {
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			continue
		}
		steps = append(steps, s)
		if len(steps) == MaxSteps {
			break
		}
	}
	if len(steps) == 0 {
		return Path{}, &normalize.MalformedError{Raw: resp.Text(), Reason: "no step has a title"}
	}
	if dropped := len(path.Steps) - len(steps); dropped > 0 {
		g.log.Debug("trimmed recovery steps", "goal", req.Subject(), "dropped", dropped)
	}

	path.Goal = req.Subject()
	path.Steps = steps
	return path, nil
}
