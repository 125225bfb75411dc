package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillboost/skillboost/internal/catalog"
	"github.com/skillboost/skillboost/internal/ui/cards"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "Browse the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")

		courses := a.Catalog.Filter(category)
		if strings.TrimSpace(search) != "" {
			matched := make(map[string]bool)
			for _, c := range a.Catalog.Search(search) {
				matched[c.ID] = true
			}
			var filtered []catalog.Course
			for _, c := range courses {
				if matched[c.ID] {
					filtered = append(filtered, c)
				}
			}
			courses = filtered
		}
		fmt.Println(cards.Courses(courses, outputWidth(cmd)))
		return nil
	},
}

var tutorialsCmd = &cobra.Command{
	Use:   "tutorials",
	Short: "Browse the video vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		category, _ := cmd.Flags().GetString("category")
		fmt.Println(cards.Tutorials(a.Catalog.Tutorials(category), outputWidth(cmd)))
		return nil
	},
}

var mentorsCmd = &cobra.Command{
	Use:   "mentors [query]",
	Short: "Search the mentor directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(cards.Mentors(a.Catalog.Mentors(joinArgs(args)), outputWidth(cmd)))
		return nil
	},
}

func init() {
	coursesCmd.Flags().StringP("category", "c", catalog.AllCategories,
		"Category: "+strings.Join(catalog.Categories, ", "))
	coursesCmd.Flags().StringP("search", "s", "", "Match title, description or skills")
	tutorialsCmd.Flags().StringP("category", "c", catalog.AllCategories, "Tutorial category")
}
