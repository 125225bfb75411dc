package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/skillboost/skillboost/internal/app"
	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/quiz"
	"github.com/skillboost/skillboost/internal/screens/practice"
	"github.com/skillboost/skillboost/internal/ui/cards"
	"github.com/skillboost/skillboost/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Take a multiple-choice quiz on a topic",
	Long: "Generate a five question quiz and answer it one question at a time. Signed-in\n" +
		"users have the score saved to the leaderboard after the last answer.\n\n" +
		"When stdin or stdout is not a terminal the quiz is printed instead; pass\n" +
		"--answers (e.g. \"a,c,b,d,a\") to grade a scripted attempt.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := requireLLM(a); err != nil {
			return err
		}

		topic := joinArgs(args)
		user, err := sessionUser(ctx, cmd, a.Backend)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetString("answers")
		if raw == "" && isInteractive() {
			return runPractice(cmd, a, topic, user)
		}

		var answers []int
		if raw != "" {
			if answers, err = parseAnswers(raw); err != nil {
				return err
			}
		}
		questions, outcome, err := a.Quizzes.Generate(ctx, topic)
		if err != nil {
			return failure(a.Log, err)
		}
		fmt.Println(cards.Quiz(topic, questions, answers, outputWidth(cmd)))
		if outcome.Dropped > 0 {
			fmt.Printf("\n(%d malformed questions were skipped)\n", outcome.Dropped)
		}

		if answers == nil {
			fmt.Println("\nRun in a terminal to take the quiz, or pass --answers to grade it.")
			return nil
		}
		if user == nil {
			fmt.Println("\nSign in with --user to save this score.")
			return nil
		}
		err = a.Results.SaveResult(ctx, quiz.Result{
			Username: user.DisplayName(),
			Topic:    topic,
			Score:    quiz.Score(questions, answers),
			Total:    len(questions),
		})
		if err != nil {
			return failure(a.Log, err)
		}
		fmt.Println("\nScore saved to the leaderboard.")
		return nil
	},
}

// runPractice runs the interactive quiz and leaves the graded attempt in
// the scrollback.
func runPractice(cmd *cobra.Command, a *app.App, topic string, user *backend.User) error {
	username := ""
	if user != nil {
		username = user.DisplayName()
	}
	model := practice.New(cmd.Context(), topic, username, a.Quizzes, a.Results)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run quiz: %w", err)
	}
	if m, ok := final.(*practice.Model); ok && m.Finished() {
		fmt.Println(cards.Quiz(topic, m.Questions(), m.Answers(), outputWidth(cmd)))
	}
	return nil
}

func isInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top quiz scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		fmt.Println(cards.Leaderboard(a.Results.Leaderboard(cmd.Context(), limit), outputWidth(cmd)))
		return nil
	},
}

// parseAnswers reads comma separated answer letters.
func parseAnswers(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, ok := components.ChoiceIndex(p)
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: use letters a-d", strings.TrimSpace(p))
		}
		out = append(out, idx)
	}
	return out, nil
}

func init() {
	quizCmd.Flags().StringP("answers", "a", "", "Grade a scripted attempt without the interactive quiz, e.g. a,c,b,d,a")
	leaderboardCmd.Flags().IntP("limit", "n", quiz.DefaultLeaderboardSize, "Number of rows")
}
