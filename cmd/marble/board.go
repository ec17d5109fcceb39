package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/marble-run/internal/platform/tui"
	"github.com/vovakirdan/marble-run/internal/storage"
)

var flagBoardSummary bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse best times for every course",
	Long: `Open the interactive best-times board. Tab and the arrow keys switch
courses.

With --summary, print one line per course instead.

Examples:
  marble board
  marble board --summary`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&flagBoardSummary, "summary", false, "Print per-course statistics and exit")
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening times database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBoardSummary {
		printSummary(store)
		return
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.GetAllCourseStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-18s  %-6s  %-7s  %-9s  %-9s  %s\n", "Course", "Runs", "Layouts", "Best", "Average", "Last played")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-18s  %-6d  %-7d  %-9s  %-9s  %s\n",
			id, s.Runs, s.Layouts,
			fmt.Sprintf("%.2fs", s.Best.Seconds()),
			fmt.Sprintf("%.2fs", s.Average.Seconds()),
			s.LastPlayed.Format("2006-01-02 15:04"),
		)
	}
}
