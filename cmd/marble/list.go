package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marble-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available courses",
	Long:  `Shows a list of all registered course variants.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	courses := registry.List()

	if len(courses) == 0 {
		fmt.Println("No courses available.")
		return
	}

	fmt.Println("Available courses:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, c := range courses {
		maxIDLen = max(maxIDLen, len(c.ID))
		maxTitleLen = max(maxTitleLen, len(c.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, c := range courses {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, c.ID, maxTitleLen, c.Title, c.Description)
	}

	fmt.Println()
	fmt.Println("Run 'marble play <id>' to play a course.")
}
