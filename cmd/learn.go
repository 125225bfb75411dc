package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillboost/skillboost/internal/consumer"
	"github.com/skillboost/skillboost/internal/ui/cards"
	"github.com/skillboost/skillboost/internal/videos"
)

var recoverCmd = &cobra.Command{
	Use:   "recover <goal>",
	Short: "Build a step-by-step recovery path for a concept",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireLLM(a); err != nil {
			return err
		}
		path, err := a.Recovery.Generate(cmd.Context(), joinArgs(args))
		if err != nil {
			return failure(a.Log, err)
		}
		fmt.Println(cards.RecoveryPath(path, outputWidth(cmd)))
		return nil
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <goal>",
	Short: "Match a learning goal to catalog courses with deep dive videos",
	Args:  cobra.MinimumNArgs(1),
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
		goal := joinArgs(args)
		recs, err := a.Recommender.Recommend(ctx, goal)
		if err != nil {
			return failure(a.Log, err)
		}

		user, err := sessionUser(ctx, cmd, a.Backend)
		if err != nil {
			return err
		}
		if _, err := a.History.Record(ctx, user, goal); err != nil {
			a.Log.Warn("record search failed", "error", err)
		}

		var dives []videos.DeepDive
		if skip, _ := cmd.Flags().GetBool("no-videos"); !skip {
			dives = videos.DeepDives(ctx, a.Finder, a.Catalog, recs, consumer.NewBoard[videos.DeepDive](), a.Log)
		}
		byCourse := make(map[string]videos.DeepDive, len(dives))
		for _, dd := range dives {
			byCourse[dd.CourseID] = dd
		}

		out := make([]cards.Recommendation, 0, len(recs))
		for _, r := range recs {
			course, ok := a.Catalog.Course(r.CourseID)
			if !ok {
				continue
			}
			item := cards.Recommendation{Course: course, Reason: r.Reason}
			if dd, ok := byCourse[course.ID]; ok {
				item.DeepDive = &dd
			}
			out = append(out, item)
		}
		fmt.Println(cards.Recommendations(goal, out, outputWidth(cmd)))
		return nil
	},
}

var videoCmd = &cobra.Command{
	Use:   "video <skill>",
	Short: "Find an industry video for a skill",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireLLM(a); err != nil {
			return err
		}
		dd, err := a.Finder.Find(cmd.Context(), joinArgs(args))
		if err != nil {
			return failure(a.Log, err)
		}
		fmt.Println(cards.DeepDive(dd, outputWidth(cmd)))
		return nil
	},
}

var lectureCmd = &cobra.Command{
	Use:   "lecture <url>",
	Short: "Analyze a lecture video for industry relevance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireLLM(a); err != nil {
			return err
		}
		analysis, err := a.Analyzer.Analyze(cmd.Context(), args[0])
		if err != nil {
			return failure(a.Log, err)
		}
		fmt.Println(cards.Lecture(analysis, outputWidth(cmd)))
		if course, ok := videos.LectureCourse(analysis); ok {
			fmt.Printf("\nPlay it as a course: %s\n", course.VideoURL)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Bool("no-videos", false, "Skip the deep dive video lookups")
}
