package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marble-run/internal/platform/tui"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a course picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a course.
Leaving a course returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select course
  Tab          - Best times
  Q            - Quit

Examples:
  marble menu
  marble menu --fps 30
  marble menu --db ./times.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	// Open time storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open times database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig(cmd)
	applyCourseFlags()

	// Menu loop
	for {
		var records tui.RecordSource
		if store != nil {
			records = store
		}
		menuResult, err := tui.RunMenu(cfg, records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from the board
		}

		if menuResult.CourseID == "" {
			break
		}

		game, err := registry.Create(menuResult.CourseID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating course: %v\n", err)
			continue
		}

		// Fresh seeds for each course unless pinned by flags
		if !cmd.Flags().Changed("seed") {
			cfg.Seed = time.Now().UnixNano()
		}
		cfg.LevelSeed = levelSeed(cmd)

		if err := tui.Run(game, store, cfg, playerName()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running course: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
