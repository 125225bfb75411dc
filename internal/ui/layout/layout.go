// Package layout sizes and frames command output.
package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/skillboost/skillboost/internal/ui/theme"
)

const (
	MinWidth     = 40
	MaxWidth     = 96
	DefaultWidth = 72
)

// ContentWidth clamps a requested width to something cards render well at.
func ContentWidth(width int) int {
	if width <= 0 {
		return DefaultWidth
	}
	if width < MinWidth {
		return MinWidth
	}
	if width > MaxWidth {
		return MaxWidth
	}
	return width
}

// RenderHeader renders the banner: the app name on the left, the title in
// the middle and the signed-in user, if any, on the right.
func RenderHeader(title, user string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("SkillBoost")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := ""
	if user != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render("● " + user)
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := width - 4
	if innerWidth < 0 {
		innerWidth = 0
	}

	leftGap := (innerWidth-centerLen)/2 - leftLen
	if leftGap < 1 {
		leftGap = 1
	}
	rightGap := innerWidth - leftLen - leftGap - centerLen - rightLen
	if rightGap < 1 {
		rightGap = 1
	}

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return theme.Header.Width(width).Render(content)
}

// RenderCard frames content at width.
func RenderCard(content string, width int) string {
	return theme.Card.Width(width).Render(content)
}

// RenderSection stacks a title above cards with a blank line between each.
func RenderSection(title string, cards ...string) string {
	parts := make([]string, 0, len(cards)+1)
	if title != "" {
		parts = append(parts, theme.Title.Render(title))
	}
	parts = append(parts, cards...)
	return strings.Join(parts, "\n\n")
}

// RenderEmpty is shown in place of an empty list.
func RenderEmpty(msg string) string {
	return theme.Hint.Render(msg)
}
