package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/skillboost/skillboost/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice question. Interactively it moves a
// cursor over the options; once Revealed, the correct option is marked
// green and a wrong chosen option red.
type MultiChoice struct {
	Number       int
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	ChosenIndex  int
	Revealed     bool
}

// NewMultiChoice creates an unanswered question.
func NewMultiChoice(number int, question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Number:       number,
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Answer records the chosen option and reveals the result.
func (m MultiChoice) Answer(chosen int) MultiChoice {
	m.ChosenIndex = chosen
	m.Revealed = true
	return m
}

func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. A letter or a digit
// answers directly; enter answers with the option under the cursor.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		return m.Answer(m.Selected), nil
	}

	if idx, ok := keyIndex(key); ok && idx < len(m.Options) {
		m.Selected = idx
		return m.Answer(idx), nil
	}
	return m, nil
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d. %s", m.Number, m.Question)))
	b.WriteString("\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if (m.Revealed && i == m.ChosenIndex) || (!m.Revealed && i == m.Selected) {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.Revealed && i == m.CorrectIndex:
			b.WriteString(theme.Correct.Render(line))
		case m.Revealed && i == m.ChosenIndex:
			b.WriteString(theme.Incorrect.Render(line))
		case m.Revealed:
			b.WriteString(theme.Subtitle.Render(line))
		case i == m.Selected:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		default:
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// IsCorrect reports whether the revealed answer was right.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.ChosenIndex == m.CorrectIndex
}

// ChoiceIndex maps an answer letter such as "b" to its option index.
func ChoiceIndex(letter string) (int, bool) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	for i, l := range choiceLabels {
		if l == letter {
			return i, true
		}
	}
	return -1, false
}

// keyIndex maps "a".."f" and "1".."6" to an option index.
func keyIndex(key string) (int, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(choiceLabels) {
			return n - 1, true
		}
		return -1, false
	}
	if len(key) != 1 {
		return -1, false
	}
	return ChoiceIndex(key)
}
