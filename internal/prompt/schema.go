package prompt

import "github.com/skillboost/skillboost/internal/llm"

// QuizQuestionSchema validates one element of a quiz reply.
var QuizQuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "One multiple choice question with four options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 4,
				"maxItems": 4,
			},
			"correctAnswer": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Index of the correct option, 0-3",
			},
		},
		"required": []any{"question", "options", "correctAnswer"},
	},
}

// QuizSchema is the output shape requested for a whole quiz.
var QuizSchema = &llm.Schema{
	Name:        "topic-quiz",
	Description: "A five question multiple choice quiz",
	Definition: map[string]any{
		"type":  "array",
		"items": QuizQuestionSchema.Definition,
	},
}

// RecoveryPathSchema is the output shape of a recovery path.
var RecoveryPathSchema = &llm.Schema{
	Name:        "recovery-path",
	Description: "An ordered remediation plan for a learning goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concept": map[string]any{"type": "string"},
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":        map[string]any{"type": "string"},
						"description":  map[string]any{"type": "string"},
						"searchQuery":  map[string]any{"type": "string"},
						"resourceType": map[string]any{"type": "string", "enum": []any{"video", "article", "quiz"}},
						"resourceLink": map[string]any{"type": "string"},
					},
					"required": []any{"title", "description"},
				},
			},
		},
		"required": []any{"steps"},
	},
}

// RecommendationSchema is the output shape of a course recommendation.
var RecommendationSchema = &llm.Schema{
	Name:        "course-recommendations",
	Description: "Catalog courses matched to a learning goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":     map[string]any{"type": "string"},
						"reason": map[string]any{"type": "string"},
					},
					"required": []any{"id", "reason"},
				},
			},
		},
		"required": []any{"recommendations"},
	},
}
