// Package marble implements the marble run course: a ball rolled across a
// seeded line of moving obstacles toward a goal, against the clock.
//
// The Game type wires the simulation core together and exposes it through
// the registry.Game interface. Each Step runs, in order: obstacle commands,
// the physics step, the player controller, the camera, and the run clock.
package marble

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/config"
	"github.com/vovakirdan/marble-run/internal/core"
	"github.com/vovakirdan/marble-run/internal/games/marble/camera"
	"github.com/vovakirdan/marble-run/internal/games/marble/level"
	"github.com/vovakirdan/marble-run/internal/games/marble/obstacle"
	"github.com/vovakirdan/marble-run/internal/games/marble/player"
	"github.com/vovakirdan/marble-run/internal/games/marble/state"
	"github.com/vovakirdan/marble-run/internal/physics"
	"github.com/vovakirdan/marble-run/internal/registry"
)

// clockOrigin anchors the simulated run clock.
var clockOrigin = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = "" // Use config default
	}
	difficultyPreset = p
}

// Game implements a marble run course.
type Game struct {
	id          string
	title       string
	description string
	blockCount  int // fixed course length of this variant; <0 uses config

	runtime core.RuntimeConfig
	cfg     config.MarbleConfig
	cfgErr  error
	types   []obstacle.Type

	newSpace  func(cfg config.MarbleConfig) physics.Space
	space     physics.Space
	generator *level.Generator
	course    *course

	clock      *state.SimClock
	machine    *state.Machine
	controller *player.Controller
	rig        *camera.Rig

	seeds     *rand.Rand // layout seeds for renewed courses
	simTime   float64    // seconds since Reset; drives obstacle animation
	tickCount int
	paused    bool
	prevFrame core.InputFrame

	best    time.Duration
	hasBest bool
}

// New creates a course variant. A negative blockCount uses the configured
// course length.
func New(id, title, description string, blockCount int) *Game {
	return &Game{
		id:          id,
		title:       title,
		description: description,
		blockCount:  blockCount,
		newSpace:    newWorld,
	}
}

// newWorld builds the built-in physics world from configuration.
func newWorld(cfg config.MarbleConfig) physics.Space {
	w := physics.NewWorld()
	w.SetGravity(mgl64.Vec3{0, cfg.Physics.Gravity, 0})
	if cfg.Physics.Substeps > 0 {
		w.SetSubsteps(cfg.Physics.Substeps)
	}
	return w
}

// ID returns the unique identifier for this course.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this course.
func (g *Game) Title() string { return g.title }

// Description returns a one-line summary for listings.
func (g *Game) Description() string { return g.description }

// Reset loads configuration, generates the first layout and builds a fresh
// world, run and camera.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load course config
	cfg, err := config.LoadMarble(configPath)
	g.cfgErr = err
	if err != nil {
		cfg = config.DefaultMarbleConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyMarblePreset(&cfg, difficultyPreset)
	}
	if g.blockCount >= 0 {
		cfg.Level.BlockCount = g.blockCount
	}
	g.cfg = cfg

	types, err := level.ParseTypes(cfg.Level.Types)
	if err != nil || len(types) == 0 {
		if g.cfgErr == nil {
			g.cfgErr = err
		}
		types = obstacle.CourseTypes()
	}
	g.types = types

	if runtime.Seed != 0 {
		g.generator = level.NewReplayGenerator(runtime.Seed)
		g.seeds = rand.New(rand.NewSource(runtime.Seed))
	} else {
		g.generator = level.NewGenerator()
		g.seeds = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.generator.Spacing = cfg.Level.Spacing

	if g.controller != nil {
		g.controller.Close()
	}
	g.clock = state.NewSimClock(clockOrigin)
	g.machine = state.NewMachine(g.clock, cfg.Level.BlockCount, runtime.LevelSeed)
	g.rig = camera.NewRig(cameraConfig(cfg.Camera))
	g.space = g.newSpace(cfg)

	g.simTime = 0
	g.tickCount = 0
	g.paused = false
	g.prevFrame = core.NewInputFrame()
	g.best, g.hasBest = 0, false

	g.rebuild()
}

// rebuild regenerates the layout for the machine's seed and block count and
// replaces every body in the world. The camera is left where it is.
func (g *Game) rebuild() {
	s := g.machine.State()

	layout, err := g.generator.Generate(s.BlockCount, s.Seed, g.types)
	if err != nil {
		// Types and count are validated in Reset; fall back to an empty course.
		layout, _ = g.generator.Generate(0, s.Seed, obstacle.CourseTypes())
	}

	g.course = buildCourse(g.space, layout, g.cfg, g.simTime)

	if g.controller != nil {
		g.controller.Close()
	}
	g.controller = player.New(g.course.ball, g.space, g.machine, playerConfig(g.cfg))
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	pressed := func(a core.Action) bool { return in.Has(a) && !g.prevFrame.Has(a) }
	defer func() { g.prevFrame = in.Clone() }()

	// Handle pause toggle
	if pressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if pressed(core.ActionRenew) {
		g.Renew()
	}

	dt := g.runtime.TickDuration()
	seconds := dt.Seconds()
	before := g.machine.Phase()

	g.course.driver.Drive(g.simTime + seconds)
	g.space.Step(seconds)
	g.controller.Update(playerInput(in), seconds)
	g.rig.Update(g.course.ball.Translation(), seconds)

	g.clock.Advance(dt)
	g.simTime += seconds
	g.tickCount++

	result := core.StepResult{State: g.State()}
	if before != state.Ended && g.machine.Phase() == state.Ended {
		if d, ok := g.machine.Completion(); ok {
			g.recordTime(d)
			result.Completed = &d
			result.State = g.State()
		}
	}
	return result
}

// recordTime keeps the best completion of the current layout.
func (g *Game) recordTime(d time.Duration) {
	if !g.hasBest || d < g.best {
		g.best = d
		g.hasBest = true
	}
}

// SetBestTime seeds the best time of the current layout, typically from
// persistent storage.
func (g *Game) SetBestTime(d time.Duration) {
	if d > 0 {
		g.recordTime(d)
	}
}

// BestTime returns the best completion on the current layout.
func (g *Game) BestTime() (time.Duration, bool) {
	return g.best, g.hasBest
}

// Qualified reports whether the best time unlocks a new layout.
func (g *Game) Qualified() bool {
	return g.hasBest && g.best < g.cfg.Rules.QualifyTime
}

// Renew switches to a fresh layout when Qualified. The best time belongs
// to the old layout and is dropped.
func (g *Game) Renew() bool {
	if !g.Qualified() {
		return false
	}
	g.forceRenew(g.seeds.Float64())
	return true
}

// forceRenew switches to seed without checking qualification.
func (g *Game) forceRenew(seed float64) {
	g.machine.Renew(seed)
	g.best, g.hasBest = 0, false
	g.rebuild()
}

// SetBlockCount switches to a course of n obstacles on the current seed and
// returns to Ready. A changed length is a different layout, so the best
// time is dropped. Negative counts are ignored.
func (g *Game) SetBlockCount(n int) {
	if n < 0 || g.machine == nil || n == g.machine.State().BlockCount {
		return
	}
	g.blockCount = n
	g.cfg.Level.BlockCount = n
	g.machine.SetBlockCount(n)
	g.best, g.hasBest = 0, false
	g.rebuild()
}

// Subscribe registers l for run transitions. Listeners run synchronously
// inside Step.
func (g *Game) Subscribe(l state.Listener) func() {
	return g.machine.Subscribe(l)
}

// Layout returns the current course layout.
func (g *Game) Layout() level.Layout { return g.course.layout }

// Run returns the run state.
func (g *Game) Run() state.RunState { return g.machine.State() }

// Camera returns the smoothed camera.
func (g *Game) Camera() camera.State { return g.rig.State() }

// Ball returns the ball position.
func (g *Game) Ball() mgl64.Vec3 { return g.course.ball.Translation() }

// ConfigError returns the problem found while loading configuration, if
// any. The game falls back to defaults in that case.
func (g *Game) ConfigError() error { return g.cfgErr }

// State returns the current run state in platform terms.
func (g *Game) State() core.GameState {
	s := g.machine.State()
	return core.GameState{
		Phase:      s.Phase.String(),
		Elapsed:    g.machine.Elapsed(),
		Finished:   s.Phase == state.Ended,
		Paused:     g.paused,
		Seed:       s.Seed,
		BlockCount: s.BlockCount,
	}
}

// SeedKey formats a layout seed for storage and display.
func SeedKey(seed float64) string {
	return fmt.Sprintf("%.6f", seed)
}

func playerInput(in core.InputFrame) player.Input {
	return player.Input{
		Forward:   in.Has(core.ActionForward),
		Backward:  in.Has(core.ActionBackward),
		Leftward:  in.Has(core.ActionLeft),
		Rightward: in.Has(core.ActionRight),
		Jump:      in.Has(core.ActionJump),
		Restart:   in.Has(core.ActionRestart),
	}
}

func playerConfig(cfg config.MarbleConfig) player.Config {
	p := cfg.Player
	return player.Config{
		Start:           p.Start,
		ImpulseStrength: p.ImpulseStrength,
		TorqueStrength:  p.TorqueStrength,
		JumpImpulse:     p.JumpImpulse,
		RayOffset:       p.RayOffset,
		RayLength:       p.RayLength,
		GroundThreshold: p.GroundThreshold,
		FailHeight:      p.FailHeight,
		Spacing:         cfg.Level.Spacing,
	}
}

func cameraConfig(c config.CameraConfig) camera.Config {
	return camera.Config{
		Offset:       c.Offset,
		TargetOffset: c.TargetOffset,
		Smoothing:    c.Smoothing,
		Initial: camera.State{
			Position: c.InitialPosition,
			Target:   c.InitialTarget,
		},
	}
}

// Register the course variants with the registry
func init() {
	registry.Register("marble", func() registry.Game {
		return New("marble", "Marble Run", "Configured course length (10 blocks by default)", -1)
	})
	registry.Register("marble_sprint", func() registry.Game {
		return New("marble_sprint", "Marble Sprint", "Short 5-block course", 5)
	})
	registry.Register("marble_marathon", func() registry.Game {
		return New("marble_marathon", "Marble Marathon", "Long 20-block course", 20)
	})
}
