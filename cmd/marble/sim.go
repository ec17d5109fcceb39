package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/games/marble"
	"github.com/vovakirdan/marble-run/internal/games/marble/state"
	"github.com/vovakirdan/marble-run/internal/registry"
	"github.com/vovakirdan/marble-run/internal/storage"
)

var (
	flagSimTicks     int
	flagSimJumpEvery int
	flagSimSave      bool
	flagSimVerbose   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <course>",
	Short: "Run a course headless with scripted input",
	Long: `Run a course without a terminal UI. The ball is rolled straight
ahead every tick, optionally jumping at a fixed interval, until it reaches
the goal or the tick budget runs out. Phase changes are logged.

The same --seed, --level-seed and --fps always give the same run.

Examples:
  marble sim marble --level-seed 0.42 --seed 7
  marble sim marble_sprint --level-seed 0.42 --jump-every 45
  marble sim marble --level-seed 0.42 --seed 7 --save
  marble sim marble --level-seed 0.42 --blocks 3`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSimJumpEvery, "jump-every", 0, "Press jump every N ticks (0 = never)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record a finished run in the times database")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log the ball position every simulated second")
}

func runSim(cmd *cobra.Command, args []string) {
	courseID := args[0]

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "marble-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if !registry.Exists(courseID) {
		logger.Error("unknown course", "course", courseID)
		os.Exit(1)
	}

	applyCourseFlags()
	game, err := registry.Create(courseID)
	if err != nil {
		logger.Error("cannot create course", "error", err)
		os.Exit(1)
	}
	g, ok := game.(*marble.Game)
	if !ok {
		logger.Error("course cannot be simulated headless", "course", courseID)
		os.Exit(1)
	}

	cfg := runtimeConfig(cmd)
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	g.Reset(cfg)
	if cfgErr := g.ConfigError(); cfgErr != nil {
		logger.Warn("using default course config", "error", cfgErr)
	}
	if flagBlocks < 0 {
		logger.Error("invalid course length", "blocks", flagBlocks)
		os.Exit(1)
	}
	applyBlocks(cmd, g)

	run := g.Run()
	logger.Info("course ready",
		"course", courseID,
		"seed", marble.SeedKey(run.Seed),
		"blocks", run.BlockCount,
		"layout", g.Snapshot().Types,
	)

	restarts := 0
	unsubscribe := g.Subscribe(func(prev, next state.RunState) {
		if next.Phase == state.Ready && prev.Phase != state.Ready {
			restarts++
		}
		logger.Info("phase", "from", prev.Phase, "to", next.Phase, "ball", g.Ball())
	})

	secondTicks := cfg.TickRate
	if secondTicks <= 0 {
		secondTicks = 60
	}

	var completed *time.Duration
	tick := 0
	for ; tick < flagSimTicks && completed == nil; tick++ {
		frame := core.NewInputFrame()
		frame.Set(core.ActionForward)
		if flagSimJumpEvery > 0 && tick%flagSimJumpEvery == 0 {
			frame.Set(core.ActionJump)
		}

		result := g.Step(frame)
		completed = result.Completed

		if tick%secondTicks == 0 {
			logger.Debug("tick", "n", tick, "ball", g.Ball(), "elapsed", result.State.Elapsed)
		}
	}

	unsubscribe()

	if completed == nil {
		logger.Warn("goal not reached", "ticks", tick, "restarts", restarts)
		fmt.Printf("DNF after %d ticks (%d restarts)\n", tick, restarts)
		os.Exit(2)
	}

	logger.Info("goal reached", "time", *completed, "ticks", tick, "restarts", restarts)
	fmt.Printf("%s %.2fs\n", marble.SeedKey(run.Seed), completed.Seconds())

	if !flagSimSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open times database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveTime(storage.TimeEntry{
		CourseID:   courseID,
		Seed:       run.Seed,
		BlockCount: run.BlockCount,
		Duration:   *completed,
		Player:     "sim",
	})
	if err != nil {
		logger.Error("cannot save run", "error", err)
		return
	}
	logger.Info("run saved", "id", id)
}
