package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marble-run/internal/games/marble"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <course>",
	Short: "Show best times for a course",
	Long: `Display the fastest runs for the specified course.

With --level-seed only runs on that layout are shown.

Examples:
  marble scores marble
  marble scores marble --level-seed 0.42
  marble scores marble_sprint --limit 25
  marble scores marble --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the course")
}

func runScores(cmd *cobra.Command, args []string) {
	courseID := args[0]

	// Check if course exists
	if !registry.Exists(courseID) {
		fmt.Fprintf(os.Stderr, "Error: unknown course %q\n", courseID)
		fmt.Fprintln(os.Stderr, "Run 'marble list' to see available courses.")
		os.Exit(1)
	}

	game, err := registry.Create(courseID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating course: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening times database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearTimes(courseID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing times: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs of %s.\n", title)
		return
	}

	var times []storage.TimeEntry
	layoutOnly := cmd.Flags().Changed("level-seed")
	if layoutOnly {
		times, err = store.LayoutTimes(courseID, flagLevelSeed, flagScoresLimit)
	} else {
		times, err = store.TopTimes(courseID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving times: %v\n", err)
		return
	}

	if layoutOnly {
		fmt.Printf("Best Times - %s (layout %s)\n", title, marble.SeedKey(flagLevelSeed))
	} else {
		fmt.Printf("Best Times - %s\n", title)
	}
	fmt.Println()

	if len(times) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'marble play %s' to set the first time!\n", courseID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-9s  %-10s  %-6s  %-12s  %s\n", "Rank", "Time", "Seed", "Blocks", "Player", "Date")
	fmt.Printf("  %-4s  %-9s  %-10s  %-6s  %-12s  %s\n", "----", "----", "----", "------", "------", "----")

	for i, e := range times {
		fmt.Printf("  %-4d  %-9s  %-10s  %-6d  %-12s  %s\n",
			i+1,
			fmt.Sprintf("%.2fs", e.Duration.Seconds()),
			marble.SeedKey(e.Seed),
			e.BlockCount,
			e.Player,
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	// Course summary
	fmt.Println()
	if stats, err := store.GetCourseStats(courseID); err == nil && stats.Runs > 0 {
		fmt.Printf("Best: %.2fs  Average: %.2fs  Runs: %d  Layouts: %d\n",
			stats.Best.Seconds(), stats.Average.Seconds(), stats.Runs, stats.Layouts)
	}
	if layoutOnly {
		if best, ok, err := store.BestTime(courseID, flagLevelSeed); err == nil && ok {
			fmt.Printf("Layout best: %.2fs\n", best.Seconds())
		}
	}
}
