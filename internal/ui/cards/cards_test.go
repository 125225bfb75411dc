package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/recovery"
	"github.com/skillboost/skillboost/internal/videos"
)

func TestQuiz_ShowsScoreWhenAnswered(t *testing.T) {
	qs := []quiz.Question{
		{Prompt: "What is a pod?", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Prompt: "What is a node?", Choices: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
	}

	unanswered := Quiz("Kubernetes", qs, nil, 60)
	assert.Contains(t, unanswered, "What is a pod?")
	assert.NotContains(t, unanswered, "pts")

	answered := Quiz("Kubernetes", qs, []int{1, 3}, 60)
	assert.Contains(t, answered, "1/2")
	assert.Contains(t, answered, "+50 pts")
}

func TestQuiz_Empty(t *testing.T) {
	assert.Contains(t, Quiz("Go", nil, nil, 60), "No questions")
}

func TestRecoveryPath_IncludesLinks(t *testing.T) {
	out := RecoveryPath(recovery.Path{
		Goal:  "Autoscaling",
		Steps: []recovery.Step{{Title: "Learn HPA", Query: "kubernetes hpa"}},
	}, 80)
	assert.Contains(t, out, "Learn HPA")
	assert.Contains(t, out, "https://www.google.com/search?q=kubernetes+hpa")
}

func TestRecommendations_WithDeepDive(t *testing.T) {
	out := Recommendations("ace interviews", []Recommendation{{
		Course:   catalog.Course{ID: "2", Title: "Advanced Data Structures in Java", Category: "CS Core"},
		Reason:   "Graphs come up a lot",
		DeepDive: &videos.DeepDive{Title: "Graph Algorithms", URL: "https://www.youtube.com/watch?v=abcdefghijk", Found: true},
	}}, 80)
	assert.Contains(t, out, "Advanced Data Structures in Java")
	assert.Contains(t, out, "Graph Algorithms")
	assert.NotContains(t, out, "(search)")
}

func TestLeaderboard_Empty(t *testing.T) {
	assert.Contains(t, Leaderboard(nil, 60), "No quiz results")
}
