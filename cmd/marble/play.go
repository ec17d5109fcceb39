package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marble-run/internal/games/marble"
	"github.com/vovakirdan/marble-run/internal/platform/tui"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <course>",
	Short: "Play a course",
	Long: `Start playing the specified course.

Controls:
  W/Up       - Roll forward
  S/Down     - Roll back
  A/Left     - Roll left
  D/Right    - Roll right
  Space      - Jump
  R          - Back to the start
  N          - New layout (after a fast enough finish)
  P          - Pause
  Esc/B      - Leave (when not rolling)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 5 blocks, extra rolling resistance
  normal - 10 blocks
  hard   - 20 blocks, less rolling resistance
  fixed  - Course length from the config file

Examples:
  marble play marble
  marble play marble --difficulty hard
  marble play marble_sprint --level-seed 0.42
  marble play marble --config ./my-marble.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd, layoutCmd, simCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom course config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	for _, c := range []*cobra.Command{layoutCmd, simCmd} {
		c.Flags().IntVar(&flagBlocks, "blocks", 0, "Override the course length (number of obstacles)")
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	courseID := args[0]

	// Check if course exists
	if !registry.Exists(courseID) {
		fmt.Fprintf(os.Stderr, "Error: unknown course %q\n", courseID)
		fmt.Fprintln(os.Stderr, "Run 'marble list' to see available courses.")
		os.Exit(1)
	}

	cfg := runtimeConfig(cmd)
	applyCourseFlags()

	game, err := registry.Create(courseID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating course: %v\n", err)
		os.Exit(1)
	}

	// Surface config problems before the alt screen hides them
	if g, ok := game.(*marble.Game); ok {
		g.Reset(cfg)
		if cfgErr := g.ConfigError(); cfgErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: using default course config: %v\n", cfgErr)
		}
	}

	// Open time storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open times database: %v\n", err)
		// Continue without storage - the course still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, playerName())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running course: %v\n", runErr)
		os.Exit(1)
	}
}
