// Package cards renders SkillBoost results for the terminal.
package cards

import (
	"fmt"
	"strings"

	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/history"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/recovery"
	"github.com/skillboost/skillboost/internal/ui/components"
	"github.com/skillboost/skillboost/internal/ui/layout"
	"github.com/skillboost/skillboost/internal/ui/theme"
	"github.com/skillboost/skillboost/internal/videos"
)

// Quiz renders the questions. When answers is non-nil each question shows
// the chosen and correct options, followed by the score.
func Quiz(topic string, questions []quiz.Question, answers []int, width int) string {
	width = layout.ContentWidth(width)
	if len(questions) == 0 {
		return layout.RenderEmpty("No questions were generated.")
	}

	out := make([]string, 0, len(questions)+1)
	for i, q := range questions {
		mc := components.NewMultiChoice(i+1, q.Prompt, q.Choices, q.CorrectIndex)
		mc.Selected = -1
		if answers != nil {
			chosen := -1
			if i < len(answers) {
				chosen = answers[i]
			}
			mc = mc.Answer(chosen)
		}
		out = append(out, layout.RenderCard(mc.View(), width))
	}
	if answers != nil {
		score := quiz.Score(questions, answers)
		bar := components.ScoreBar(score, len(questions), width-2).View()
		points := theme.Badge.Render(fmt.Sprintf("+%d pts", score*quiz.PointsPerCorrect))
		out = append(out, bar+"\n"+points)
	}
	return layout.RenderSection("Quiz: "+topic, out...)
}

// RecoveryPath renders each step with its link.
func RecoveryPath(p recovery.Path, width int) string {
	width = layout.ContentWidth(width)
	if len(p.Steps) == 0 {
		return layout.RenderEmpty("No recovery steps.")
	}
	out := make([]string, 0, len(p.Steps))
	for i, s := range p.Steps {
		var b strings.Builder
		b.WriteString(theme.Title.Render(fmt.Sprintf("Step %d  %s", i+1, s.Title)))
		if s.ResourceType != "" {
			b.WriteString("  " + theme.Badge.Render(s.ResourceType))
		}
		if s.Description != "" {
			b.WriteString("\n" + theme.Body.Render(s.Description))
		}
		b.WriteString("\n" + theme.Link.Render(s.Link()))
		out = append(out, layout.RenderCard(b.String(), width))
	}
	title := "Recovery path: " + p.Goal
	if p.Concept != "" && p.Concept != p.Goal {
		title += " (" + p.Concept + ")"
	}
	return layout.RenderSection(title, out...)
}

// Recommendation is one matched course with its deep dive, if any.
type Recommendation struct {
	Course   catalog.Course
	Reason   string
	DeepDive *videos.DeepDive
}

func Recommendations(goal string, recs []Recommendation, width int) string {
	width = layout.ContentWidth(width)
	if len(recs) == 0 {
		return layout.RenderEmpty("No matching courses.")
	}
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		var b strings.Builder
		b.WriteString(courseHeader(r.Course))
		if r.Reason != "" {
			b.WriteString("\n" + theme.Body.Render(r.Reason))
		}
		if r.DeepDive != nil {
			b.WriteString("\n\n" + deepDiveBody(*r.DeepDive))
		}
		out = append(out, layout.RenderCard(b.String(), width))
	}
	return layout.RenderSection("Recommended for: "+goal, out...)
}

// DeepDive renders a single video card.
func DeepDive(dd videos.DeepDive, width int) string {
	return layout.RenderCard(deepDiveBody(dd), layout.ContentWidth(width))
}

func deepDiveBody(dd videos.DeepDive) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("▶ " + dd.Title))
	if !dd.Found {
		b.WriteString("  " + theme.Warning.Render("(search)"))
	}
	if dd.Rationale != "" {
		b.WriteString("\n" + theme.Body.Render(dd.Rationale))
	}
	b.WriteString("\n" + theme.Link.Render(dd.URL))
	return b.String()
}

// Lecture renders a lecture analysis.
func Lecture(a videos.LectureAnalysis, width int) string {
	width = layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Render(a.IndustrialTitle))
	if a.Summary != "" {
		b.WriteString("\n" + theme.Body.Render(a.Summary))
	}
	if len(a.Concepts) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render("Concepts"))
		for _, c := range a.Concepts {
			b.WriteString("\n  • " + c)
		}
	}
	if len(a.RecoveryPoints) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render("Recovery points"))
		for _, p := range a.RecoveryPoints {
			b.WriteString("\n  • " + p)
		}
	}
	b.WriteString("\n\n" + theme.Link.Render(a.URL))
	return layout.RenderCard(b.String(), width)
}

func courseHeader(c catalog.Course) string {
	return theme.Title.Render(c.Title) + "  " + theme.Badge.Render(c.Category)
}

// Courses renders the catalog listing.
func Courses(courses []catalog.Course, width int) string {
	width = layout.ContentWidth(width)
	if len(courses) == 0 {
		return layout.RenderEmpty("No courses match.")
	}
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		body := courseHeader(c) + "\n" + theme.Body.Render(c.Description)
		if len(c.Skills) > 0 {
			body += "\n" + theme.Subtitle.Render(strings.Join(c.Skills, " · "))
		}
		body += "\n" + theme.Hint.Render("id "+c.ID)
		out = append(out, layout.RenderCard(body, width))
	}
	return layout.RenderSection("Courses", out...)
}

func Tutorials(ts []catalog.Tutorial, width int) string {
	width = layout.ContentWidth(width)
	if len(ts) == 0 {
		return layout.RenderEmpty("The video vault is empty.")
	}
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		body := theme.Title.Render(t.Title) + "  " + theme.Badge.Render(t.Duration) +
			"\n" + theme.Body.Render(t.Description) +
			"\n" + theme.Subtitle.Render(t.Host+" · "+t.UploadDate) +
			"\n" + theme.Link.Render(t.VideoURL)
		out = append(out, layout.RenderCard(body, width))
	}
	return layout.RenderSection("Video vault", out...)
}

func Mentors(ms []catalog.Mentor, width int) string {
	width = layout.ContentWidth(width)
	if len(ms) == 0 {
		return layout.RenderEmpty("No mentors match.")
	}
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		body := theme.Title.Render(m.Name) + "\n" +
			theme.Body.Render(m.Role+", "+m.Department)
		if len(m.Expertise) > 0 {
			body += "\n" + theme.Subtitle.Render(strings.Join(m.Expertise, " · "))
		}
		if len(m.AvailableTime) > 0 {
			body += "\n" + theme.Hint.Render("Available "+strings.Join(m.AvailableTime, ", "))
		}
		if m.Email != "" {
			body += "\n" + theme.Link.Render(m.Email)
		}
		out = append(out, layout.RenderCard(body, width))
	}
	return layout.RenderSection("Mentors", out...)
}

// Leaderboard renders ranked entries as aligned rows.
func Leaderboard(entries []quiz.LeaderboardEntry, width int) string {
	width = layout.ContentWidth(width)
	if len(entries) == 0 {
		return layout.RenderEmpty("No quiz results yet.")
	}
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rank := fmt.Sprintf("#%d", e.Rank)
		if e.Rank == 1 {
			rank = theme.Warning.Render(rank)
		}
		rows = append(rows, fmt.Sprintf("%-4s %-24s %6d pts  %s",
			rank, e.Name, e.Points, theme.Subtitle.Render(e.Topic)))
	}
	return layout.RenderSection("Leaderboard", layout.RenderCard(strings.Join(rows, "\n"), width))
}

// History renders recent searches, newest first.
func History(entries []history.Entry, width int) string {
	width = layout.ContentWidth(width)
	if len(entries) == 0 {
		return layout.RenderEmpty("No recent searches.")
	}
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		row := theme.Body.Render(e.Query)
		if !e.CreatedAt.IsZero() {
			row += "  " + theme.Hint.Render(e.CreatedAt.Local().Format("Jan 2 15:04"))
		}
		if e.ID != "" {
			row += "  " + theme.Subtitle.Render("["+e.ID+"]")
		}
		rows = append(rows, row)
	}
	return layout.RenderSection("Recent searches", layout.RenderCard(strings.Join(rows, "\n"), width))
}
