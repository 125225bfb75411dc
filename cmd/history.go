package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillboost/skillboost/internal/ui/cards"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := sessionUser(ctx, cmd, a.Backend)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		fmt.Println(cards.History(a.History.Recent(ctx, user, limit), outputWidth(cmd)))
		return nil
	},
}

var historyAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Record a search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := sessionUser(ctx, cmd, a.Backend)
		if err != nil {
			return err
		}
		entry, err := a.History.Record(ctx, user, joinArgs(args))
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %q\n", entry.Query)
		return nil
	},
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id|query>",
	Short: "Delete a saved search by id, or a cached one by query with --local",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if local, _ := cmd.Flags().GetBool("local"); local {
			if err := a.History.Forget(joinArgs(args)); err != nil {
				return fmt.Errorf("forget search: %w", err)
			}
			fmt.Println("Removed from local history.")
			return nil
		}
		user, err := sessionUser(cmd.Context(), cmd, a.Backend)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("sign in with --user to delete saved searches")
		}
		if err := a.History.Delete(cmd.Context(), user, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 5, "Number of searches to show")
	historyRmCmd.Flags().Bool("local", false, "Remove the query from the local cache instead")

	historyCmd.AddCommand(historyAddCmd)
	historyCmd.AddCommand(historyRmCmd)
}
