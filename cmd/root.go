package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillboost/skillboost/internal/app"
	"github.com/skillboost/skillboost/internal/backend"
	"github.com/skillboost/skillboost/internal/config"
	"github.com/skillboost/skillboost/internal/consumer"
	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/store"
	"github.com/skillboost/skillboost/internal/ui/layout"
)

var rootCmd = &cobra.Command{
	Use:           "skillboost",
	Short:         "Bridge the syllabus to industry skills",
	Long:          "SkillBoost: AI quizzes, recovery paths, course matching and industry videos for engineering students.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLBOOST_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Session token; the email address in local mode (overrides SKILLBOOST_USER)")
	rootCmd.PersistentFlags().Int("width", layout.DefaultWidth, "Output width in columns")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(lectureCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(tutorialsCmd)
	rootCmd.AddCommand(mentorsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SKILLBOOST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openApp loads configuration and wires the services. Callers must Close
// the returned app.
func openApp(cmd *cobra.Command, verboseDefault bool) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DBPath, err = resolveDBPath(cmd); err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	log := logger.Nop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || verboseDefault {
		if log, err = logger.New(cfg.Env); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	return app.New(cmd.Context(), app.Options{Config: cfg, Log: log})
}

// sessionUser resolves --user (or SKILLBOOST_USER) to a user. It returns
// nil when neither is set.
func sessionUser(ctx context.Context, cmd *cobra.Command, b backend.Backend) (*backend.User, error) {
	token, _ := cmd.Flags().GetString("user")
	if token == "" {
		token = os.Getenv("SKILLBOOST_USER")
	}
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}
	u, err := b.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, fmt.Errorf("not signed in: the session for --user was rejected")
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return &u, nil
}

func outputWidth(cmd *cobra.Command) int {
	w, _ := cmd.Flags().GetInt("width")
	return layout.ContentWidth(w)
}

// requireLLM fails fast when no model is configured.
func requireLLM(a *app.App) error {
	return a.LLMErr
}

// userError is shown to the user as its message alone. The cause stays
// reachable for errors.Is and goes to the log.
type userError struct {
	msg   string
	cause error
}

func (e *userError) Error() string { return e.msg }

func (e *userError) Unwrap() error { return e.cause }

// failure turns a generation error into the user-facing message. The raw
// cause is only logged, which happens with --verbose.
func failure(log *logger.Logger, err error) error {
	f := consumer.Classify(err)
	msg := f.Message()
	if f == consumer.FailureMalformed || f == consumer.FailureUnavailable {
		msg += " (run the command again to retry)"
	}
	log.Error("command failed", "failure", f.String(), "error", err)
	return &userError{msg: msg, cause: err}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
