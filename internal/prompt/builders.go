package prompt

import (
	"fmt"
	"strings"

	"github.com/skillboost/skillboost/internal/llm"
)

// QuizLength is the number of questions requested per quiz.
const QuizLength = 5

const mentorSystem = `You are an industry mentor for university engineering students.
Bridge the gap between the academic syllabus and what employers expect.
Be concrete, current and practical.`

// CatalogItem is the view of a course the recommender prompt needs.
type CatalogItem struct {
	ID    string
	Title string
}

// QuizForTopic builds a request for a hard multiple choice quiz on topic.
func QuizForTopic(topic string) (Request, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Request{}, invalid("topic", "must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a difficult %d-question multiple choice quiz about \"%s\" for an engineering student.\n", QuizLength, topic)
	b.WriteString("Return JSON only. Structure:\n")
	b.WriteString(`[
  {
    "question": "Question text?",
    "options": ["A", "B", "C", "D"],
    "correctAnswer": 0
  }
]
`)
	b.WriteString("Every question has exactly 4 options. correctAnswer is the index of the correct option (0-3).")

	return Request{
		intent:  IntentQuiz,
		subject: topic,
		text:    b.String(),
		shape:   QuizSchema,
		mode:    Structured,
	}, nil
}

// RecoveryPathForGoal builds a request for an ordered 3-4 step plan that
// takes a student from the syllabus to goal.
func RecoveryPathForGoal(goal string) (Request, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return Request{}, invalid("goal", "must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n\n", goal)
	b.WriteString("Design a recovery path of 3 to 4 ordered steps that closes the gap between a typical university syllabus and this goal.\n")
	b.WriteString("For every step give a short title, a one or two sentence description, a web search query a student can use to find material, ")
	b.WriteString("and a resourceType of video, article or quiz. Include resourceLink only when you are certain of an absolute URL.\n")
	b.WriteString("Name the core concept being recovered in the concept field.")

	return Request{
		intent:  IntentRecoveryPath,
		subject: goal,
		system:  mentorSystem,
		text:    b.String(),
		shape:   RecoveryPathSchema,
		mode:    Structured,
	}, nil
}

// RecommendCourses builds a request that picks catalog courses for goal.
// The catalog must be non-empty with unique, non-empty ids.
func RecommendCourses(goal string, catalog []CatalogItem) (Request, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return Request{}, invalid("goal", "must not be empty")
	}
	if len(catalog) == 0 {
		return Request{}, invalid("catalog", "must not be empty")
	}
	seen := make(map[string]bool, len(catalog))
	for i, item := range catalog {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return Request{}, invalid("catalog", fmt.Sprintf("item %d has an empty id", i))
		}
		if seen[id] {
			return Request{}, invalid("catalog", fmt.Sprintf("duplicate id %q", id))
		}
		seen[id] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A student wants to: %s\n\n", goal)
	b.WriteString("Available courses:\n")
	for _, item := range catalog {
		fmt.Fprintf(&b, "- id %q: %s\n", strings.TrimSpace(item.ID), item.Title)
	}
	b.WriteString("\nRecommend up to 3 of these courses, most relevant first. ")
	b.WriteString("Use only ids from the list above and give a one sentence reason for each.")

	return Request{
		intent:  IntentRecommendation,
		subject: goal,
		system:  mentorSystem,
		text:    b.String(),
		shape:   RecommendationSchema,
		mode:    Structured,
	}, nil
}

// VideoForSkill builds a search-grounded request for one industry-grade
// YouTube video on skill. The reply is prose with labelled lines.
func VideoForSkill(skill string) (Request, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return Request{}, invalid("skill", "must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Find one high quality YouTube video that teaches \"%s\" the way it is used in industry today.\n", skill)
	b.WriteString("Answer in exactly this format:\n")
	b.WriteString("Title: <video title>\n")
	b.WriteString("URL: <full https://www.youtube.com/watch?v=... link>\n")
	b.WriteString("Rationale: <one sentence on why this bridges the gap from the syllabus>")

	return Request{
		intent:  IntentVideo,
		subject: skill,
		text:    b.String(),
		tools:   []llm.Tool{llm.ToolWebSearch},
		mode:    Pattern,
	}, nil
}

// AnalyzeLecture builds a search-grounded request that summarizes a lecture
// video and lists what a student should recover from it.
func AnalyzeLecture(url string) (Request, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Request{}, invalid("url", "must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this lecture video: %s\n", url)
	b.WriteString("Relate it to how the topic is applied in industry. Answer in exactly this format:\n")
	b.WriteString("Title: <an industry-focused title for the lecture>\n")
	b.WriteString("Summary: <two or three sentences>\n")
	b.WriteString("Concepts: <comma separated key concepts>\n")
	b.WriteString("Recovery: <semicolon separated points the student should revise>")

	return Request{
		intent:  IntentLecture,
		subject: url,
		text:    b.String(),
		tools:   []llm.Tool{llm.ToolWebSearch},
		mode:    Pattern,
	}, nil
}

// Raw wraps caller-supplied contents for the generate proxy. shape and
// tools are passed through untouched.
func Raw(contents string, shape *llm.Schema, tools ...llm.Tool) (Request, error) {
	trimmed := strings.TrimSpace(contents)
	if trimmed == "" {
		return Request{}, invalid("contents", "must not be empty")
	}
	mode := Pattern
	if shape != nil {
		mode = Structured
	}
	return Request{
		intent:  IntentRaw,
		subject: trimmed,
		text:    contents,
		shape:   shape,
		tools:   append([]llm.Tool(nil), tools...),
		mode:    mode,
	}, nil
}
