// Package practice is the interactive quiz: it generates a quiz for a
// topic, asks the questions one at a time, and saves the score once the
// last question is answered.
package practice

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/skillboost/skillboost/internal/consumer"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/ui/components"
	"github.com/skillboost/skillboost/internal/ui/layout"
	"github.com/skillboost/skillboost/internal/ui/theme"
)

// QuizGenerator produces the questions of a fresh quiz.
type QuizGenerator interface {
	Generate(ctx context.Context, topic string) ([]quiz.Question, quiz.Outcome, error)
}

// ResultSaver records a finished attempt.
type ResultSaver interface {
	SaveResult(ctx context.Context, r quiz.Result) error
}

type phase int

const (
	phaseLoading phase = iota
	phaseFailed
	phaseQuestion
	phaseFeedback
	phaseDone
)

// quizReadyMsg carries a generation result back to the model.
type quizReadyMsg struct {
	ticket    consumer.Ticket
	questions []quiz.Question
	outcome   quiz.Outcome
	err       error
}

// resultSavedMsg is sent when the score has been persisted.
type resultSavedMsg struct {
	err error
}

// Model is the bubbletea model for one quiz run.
type Model struct {
	ctx      context.Context
	topic    string
	username string
	gen      QuizGenerator
	saver    ResultSaver

	slot    *consumer.Slot[[]quiz.Question]
	ticket  consumer.Ticket
	spinner spinner.Model

	phase     phase
	questions []quiz.Question
	dropped   int
	current   int
	choice    components.MultiChoice
	answers   []int

	saving  bool
	saveErr error
	saved   bool
	width   int
}

var _ tea.Model = (*Model)(nil)

// New creates a quiz run for topic. username may be empty, in which case
// the score is shown but not saved.
func New(ctx context.Context, topic, username string, gen QuizGenerator, saver ResultSaver) *Model {
	return &Model{
		ctx:      ctx,
		topic:    strings.TrimSpace(topic),
		username: username,
		gen:      gen,
		saver:    saver,
		slot:     &consumer.Slot[[]quiz.Question]{},
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Title)),
		width:    layout.DefaultWidth,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.generate(), m.spinner.Tick)
}

// generate starts a request. Results for any earlier request are ignored
// when they arrive.
func (m *Model) generate() tea.Cmd {
	m.phase = phaseLoading
	m.ticket = m.slot.Begin(m.topic)
	ticket, ctx, topic, gen := m.ticket, m.ctx, m.topic, m.gen
	return func() tea.Msg {
		questions, outcome, err := gen.Generate(ctx, topic)
		return quizReadyMsg{ticket: ticket, questions: questions, outcome: outcome, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = layout.ContentWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case quizReadyMsg:
		return m.handleReady(msg)

	case resultSavedMsg:
		m.saving = false
		m.saveErr = msg.err
		m.saved = msg.err == nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleReady(msg quizReadyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if !m.slot.Fail(msg.ticket, msg.err) {
			return m, nil
		}
		m.phase = phaseFailed
		return m, nil
	}
	if !m.slot.Succeed(msg.ticket, msg.questions) {
		return m, nil
	}
	m.questions = msg.questions
	m.dropped = msg.outcome.Dropped
	m.answers = m.answers[:0]
	m.current = 0
	m.phase = phaseQuestion
	m.choice = m.newChoice()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.slot.Abandon()
		return m, tea.Quit
	}

	switch m.phase {
	case phaseLoading:
		if key == "esc" || key == "q" {
			m.slot.Abandon()
			return m, tea.Quit
		}

	case phaseFailed:
		switch key {
		case "r":
			return m, tea.Batch(m.generate(), m.spinner.Tick)
		case "esc", "q":
			return m, tea.Quit
		}

	case phaseQuestion:
		if key == "esc" {
			return m, tea.Quit
		}
		m.choice, _ = m.choice.Update(msg)
		if m.choice.Revealed {
			m.answers = append(m.answers, m.choice.ChosenIndex)
			m.phase = phaseFeedback
		}

	case phaseFeedback:
		m.current++
		if m.current < len(m.questions) {
			m.choice = m.newChoice()
			m.phase = phaseQuestion
			return m, nil
		}
		m.phase = phaseDone
		return m, m.save()

	case phaseDone:
		if !m.saving {
			return m, tea.Quit
		}
	}
	return m, nil
}

// save persists the score after the last answer. Without a user the run
// is graded but not recorded.
func (m *Model) save() tea.Cmd {
	if m.saver == nil || m.username == "" {
		return nil
	}
	m.saving = true
	ctx, saver := m.ctx, m.saver
	result := quiz.Result{
		Username: m.username,
		Topic:    m.topic,
		Score:    m.Score(),
		Total:    len(m.questions),
	}
	return func() tea.Msg {
		return resultSavedMsg{err: saver.SaveResult(ctx, result)}
	}
}

func (m *Model) newChoice() components.MultiChoice {
	q := m.questions[m.current]
	return components.NewMultiChoice(m.current+1, q.Prompt, q.Choices, q.CorrectIndex)
}

// Score is the number of correct answers so far.
func (m *Model) Score() int {
	return quiz.Score(m.questions, m.answers)
}

// Finished reports whether every question was answered.
func (m *Model) Finished() bool {
	return m.phase == phaseDone
}

// Saved reports whether the score reached the leaderboard.
func (m *Model) Saved() bool {
	return m.saved
}

// Questions and Answers return the attempt for printing after the
// program exits.
func (m *Model) Questions() []quiz.Question { return m.questions }

func (m *Model) Answers() []int { return m.answers }

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	header := layout.RenderHeader("Quiz: "+m.topic, m.username, m.width)
	return header + "\n\n" + m.renderBody() + "\n\n" + theme.Hint.Render(m.hints())
}

func (m *Model) renderBody() string {
	switch m.phase {
	case phaseLoading:
		return m.spinner.View() + " " + theme.Body.Render("Writing five questions on "+m.topic+"...")

	case phaseFailed:
		view := consumer.ViewOf(m.slot.Snapshot())
		return theme.Warning.Render(view.Message)

	case phaseQuestion, phaseFeedback:
		progress := components.NewProgressBar(
			fmt.Sprintf("Question %d of %d", m.current+1, len(m.questions)),
			float64(m.current)/float64(len(m.questions)), false, m.width).View()
		body := progress + "\n\n" + layout.RenderCard(m.choice.View(), m.width)
		if m.phase == phaseFeedback {
			if m.choice.IsCorrect() {
				body += "\n" + theme.Correct.Render("Correct!")
			} else {
				body += "\n" + theme.Incorrect.Render("Not quite. The answer is "+m.choice.Options[m.choice.CorrectIndex]+".")
			}
		}
		return body

	default:
		score := m.Score()
		var b strings.Builder
		b.WriteString(components.ScoreBar(score, len(m.questions), m.width).View())
		b.WriteString("\n")
		b.WriteString(theme.Badge.Render(fmt.Sprintf("+%d pts", score*quiz.PointsPerCorrect)))
		if m.dropped > 0 {
			b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("%d malformed questions were skipped.", m.dropped)))
		}
		b.WriteString("\n\n")
		b.WriteString(m.saveStatus())
		return b.String()
	}
}

func (m *Model) saveStatus() string {
	switch {
	case m.saving:
		return theme.Hint.Render("Saving your score...")
	case m.saved:
		return theme.Correct.Render("Score saved to the leaderboard.")
	case m.saveErr != nil:
		return theme.Warning.Render(consumer.Classify(m.saveErr).Message())
	case m.username == "":
		return theme.Hint.Render("Sign in with --user to save this score.")
	default:
		return ""
	}
}

func (m *Model) hints() string {
	switch m.phase {
	case phaseLoading:
		return "esc cancel"
	case phaseFailed:
		if consumer.ViewOf(m.slot.Snapshot()).Retry {
			return "r retry  ·  esc quit"
		}
		return "esc quit"
	case phaseQuestion:
		return "↑↓ move  ·  enter or a-d answer  ·  esc quit"
	case phaseFeedback:
		return "any key next"
	default:
		if m.saving {
			return ""
		}
		return "any key exit"
	}
}
