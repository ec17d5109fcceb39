// marble is a terminal marble run: roll a ball across a seeded line of moving
// obstacles toward the goal, against the clock.
//
// Usage:
//
//	marble list              - List available courses
//	marble play <course>     - Play a course
//	marble menu              - Pick courses interactively
//	marble layout <course>   - Print a generated course layout as YAML
//	marble sim <course>      - Run a course headless with scripted input
//	marble scores <course>   - Show best times for a course
//	marble board             - Browse best times for every course
//	marble serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Seed for renewed course seeds and obstacle phases
//	--level-seed <value>  - Seed of the first course layout
//	--db <path>           - Set database path (default: ~/.marble/times.db)
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/games/marble"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagLevelSeed float64
	flagDBPath    string

	// Course flags shared by play, menu, layout and sim
	flagConfig     string
	flagDifficulty string

	// Course length override for layout and sim
	flagBlocks int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marble",
	Short: "Marble Run - race a ball through moving obstacles in your terminal",
	Long: `Marble Run is a timed obstacle course played in the terminal.

Roll the ball from the start block past spinners, limbo bars, axes and
sliders to the goal. Finish a layout fast enough and a new one unlocks.

Available commands:
  list     - Show all available courses
  play     - Play a specific course directly
  menu     - Interactive course picker menu
  layout   - Print a generated layout
  sim      - Run a course headless
  scores   - View best times
  board    - Browse best times interactively
  serve    - Start SSH server for remote play

Examples:
  marble list
  marble play marble
  marble play marble_sprint --level-seed 0.42
  marble layout marble --level-seed 0.42
  marble serve --ssh :2222
  marble scores marble`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for renewed layouts and obstacle phases (0 = random based on time)")
	rootCmd.PersistentFlags().Float64Var(&flagLevelSeed, "level-seed", 0, "Seed of the first layout (random if not set)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.marble/times.db", "Path to best-times database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyCourseFlags hands --config and --difficulty to the course package
// before any course is created.
func applyCourseFlags() {
	marble.SetConfigPath(flagConfig)
	marble.SetDifficultyPreset(flagDifficulty)
}

// applyBlocks switches g to the --blocks course length when the flag is set.
func applyBlocks(cmd *cobra.Command, g *marble.Game) {
	if cmd.Flags().Changed("blocks") {
		g.SetBlockCount(flagBlocks)
	}
}

// levelSeed returns --level-seed when given, otherwise a fresh random seed.
func levelSeed(cmd *cobra.Command) float64 {
	if cmd.Flags().Changed("level-seed") {
		return flagLevelSeed
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())).Float64()
}

// runtimeConfig builds the runtime config from global flags and the
// terminal size.
func runtimeConfig(cmd *cobra.Command) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  flagFPS,
		Seed:      flagSeed,
		LevelSeed: levelSeed(cmd),
	}
}

// playerName is the name stored with local runs.
func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}
