package quiz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/normalize"
	"github.com/skillboost/skillboost/internal/prompt"
)

// Generator produces quizzes through the model facade.
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

// Generate returns the valid questions of a fresh quiz on topic. Invalid
// questions are dropped and counted in the Outcome; a reply with no valid
// question yields a *normalize.MalformedError.
func (g *Generator) Generate(ctx context.Context, topic string) ([]Question, Outcome, error) {
	req, err := prompt.QuizForTopic(topic)
	if err != nil {
		return nil, Outcome{}, err
	}
	ctx = llm.WithPurpose(ctx, req.Purpose())

	resp, err := g.provider.Generate(ctx, req.LLM())
	if err != nil {
		return nil, Outcome{}, fmt.Errorf("generate quiz: %w", err)
	}

	res := normalize.ParseArray(resp.Text(), prompt.QuizQuestionSchema, Validate)
	outcome := Outcome{Dropped: res.Dropped}
	questions, ok := res.Get()
	if !ok {
		g.log.Warn("quiz reply unusable", "topic", req.Subject(), "reason", res.Reason, "model", resp.Model)
		return nil, outcome, res.Err()
	}
	if res.Partial() {
		g.log.Info("dropped invalid quiz questions", "topic", req.Subject(), "dropped", res.Dropped, "kept", len(questions))
	}

	for i := range questions {
		questions[i].ID = uuid.NewString()
	}
	return questions, outcome, nil
}
