package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/skillboost/skillboost/internal/config"
	"github.com/skillboost/skillboost/internal/llm"
	"github.com/skillboost/skillboost/internal/store"
	"github.com/skillboost/skillboost/internal/ui/layout"
	"github.com/skillboost/skillboost/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model pair and its request log",
}

var llmModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show the configured primary and fallback models",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		primary, fallback := cfg.LLM.Models()

		rows := [][]string{
			{"primary", primary, priceLabel(primary)},
			{"fallback", fallback, priceLabel(fallback)},
		}
		fmt.Println(theme.Title.Render("Provider: " + cfg.LLM.Provider))
		fmt.Println(renderTable([]string{"Role", "Model", "USD / 1M in, out"}, rows))
		if err := cfg.LLM.Validate(); err != nil {
			fmt.Println(theme.Warning.Render("Not ready: " + err.Error()))
		}
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose, Failed: failed})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println(layout.RenderEmpty("No model attempts recorded."))
			return nil
		}
		fmt.Println(eventsTable(events))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		fmt.Println(eventDetail(*e, outputWidth(cmd)))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each model of the pair answered, and what it cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		serving, err := repo.LLMServingByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query serving: %w", err)
		}
		if len(serving) == 0 {
			fmt.Println(layout.RenderEmpty("No model attempts recorded."))
			return nil
		}
		usage, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		models, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Println(theme.Title.Render("Requests by purpose"))
		fmt.Println(servingTable(serving, usage))
		fmt.Println(theme.Subtitle.Render(servingSummary(serving)))

		costs := summarizeCosts(models)
		fmt.Println()
		fmt.Println(theme.Title.Render("Estimated cost (USD)"))
		fmt.Println(renderTable([]string{"Model", "Attempts", "Input", "Output", "Cost"}, costs.rows))
		total := "Total " + formatCost(costs.total)
		if len(costs.unpriced) > 0 {
			total += " (partial, no pricing for " + strings.Join(costs.unpriced, ", ") + ")"
		}
		fmt.Println(theme.Subtitle.Render(total))
		return nil
	},
}

func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Title.Padding(0, 1)
			}
			return theme.Body.Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func eventsTable(events []store.LLMEventRecord) string {
	out := make([][]string, 0, len(events))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		out = append(out, []string{
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format("01-02 15:04:05"),
			e.Purpose,
			attemptLabel(e.Attempt),
			truncate(e.Model, 28),
			fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		})
	}
	return renderTable([]string{"ID", "Time", "Purpose", "Served as", "Model", "Tokens", "Ms", "OK"}, out)
}

func eventDetail(e store.LLMEventRecord, width int) string {
	status := theme.Correct.Render("answered")
	if !e.Success {
		status = theme.Incorrect.Render("failed")
	}
	var head strings.Builder
	fmt.Fprintf(&head, "%s  %s\n", theme.Title.Render(fmt.Sprintf("#%d", e.ID)), status)
	fmt.Fprintf(&head, "%s %s as %s\n", e.Provider, e.Model, attemptLabel(e.Attempt))
	fmt.Fprintf(&head, "purpose %s  ·  %d in / %d out tokens  ·  %dms\n", e.Purpose, e.InputTokens, e.OutputTokens, e.LatencyMs)
	head.WriteString(theme.Subtitle.Render(e.Timestamp.Local().Format("2006-01-02 15:04:05")))
	if e.ErrorMessage != "" {
		head.WriteString("\n" + theme.Warning.Render(e.ErrorMessage))
	}

	return layout.RenderSection("Model attempt",
		layout.RenderCard(head.String(), width),
		layout.RenderCard(theme.Title.Render("Prompt")+"\n"+orNotCaptured(e.RequestBody), width),
		layout.RenderCard(theme.Title.Render("Reply")+"\n"+orNotCaptured(e.ResponseBody), width),
	)
}

// servingTable joins the pair outcomes with token and latency totals.
func servingTable(serving []store.ServingUsage, usage []store.PurposeUsage) string {
	byPurpose := make(map[string]store.PurposeUsage, len(usage))
	for _, u := range usage {
		byPurpose[u.Purpose] = u
	}
	rows := make([][]string, 0, len(serving))
	for _, s := range serving {
		u := byPurpose[s.Purpose]
		rows = append(rows, []string{
			s.Purpose,
			strconv.Itoa(s.Requests()),
			strconv.Itoa(s.Primary),
			strconv.Itoa(s.Fallback),
			strconv.Itoa(s.Unavailable),
			percent(s.FallbackRate()),
			strconv.Itoa(u.InputTokens + u.OutputTokens),
			strconv.Itoa(u.AvgLatencyMs),
		})
	}
	return renderTable([]string{"Purpose", "Requests", "Primary", "Fallback", "Unavailable", "Fallback %", "Tokens", "Avg ms"}, rows)
}

func servingSummary(serving []store.ServingUsage) string {
	var total store.ServingUsage
	for _, s := range serving {
		total.Primary += s.Primary
		total.Fallback += s.Fallback
		total.Unavailable += s.Unavailable
	}
	return fmt.Sprintf("%d requests: %s answered by the fallback, %d unavailable",
		total.Requests(), percent(total.FallbackRate()), total.Unavailable)
}

type costSummary struct {
	rows     [][]string
	total    float64
	unpriced []string
}

func summarizeCosts(models []store.ModelUsage) costSummary {
	var out costSummary
	for _, m := range models {
		cost := "?"
		if c := llm.LookupCost(m.Model); c != nil {
			usd := c.Cost(m.InputTokens, m.OutputTokens)
			out.total += usd
			cost = formatCost(usd)
		} else {
			out.unpriced = append(out.unpriced, m.Model)
		}
		out.rows = append(out.rows, []string{
			truncate(m.Model, 32),
			strconv.Itoa(m.Calls),
			strconv.Itoa(m.InputTokens),
			strconv.Itoa(m.OutputTokens),
			cost,
		})
	}
	return out
}

func priceLabel(model string) string {
	c := llm.LookupCost(model)
	if c == nil {
		return "unknown"
	}
	return fmt.Sprintf("$%.2f, $%.2f", c.InputPerMTok, c.OutputPerMTok)
}

func attemptLabel(attempt string) string {
	if attempt == "" {
		return "single"
	}
	return attempt
}

func orNotCaptured(body string) string {
	if strings.TrimSpace(body) == "" {
		return theme.Hint.Render("(not captured)")
	}
	return body
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (quiz, recovery-path, recommendation, video, lecture, proxy)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed attempts")

	llmCmd.AddCommand(llmModelsCmd)
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
