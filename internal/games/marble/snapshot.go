package marble

import (
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/games/marble/camera"
	"github.com/vovakirdan/marble-run/internal/games/marble/obstacle"
)

// Snapshot is a comparable summary of the simulation, used to check that
// two games fed the same seeds and inputs stay in lockstep.
type Snapshot struct {
	Tick    int
	Phase   string
	Seed    float64
	Ball    mgl64.Vec3
	Camera  camera.State
	Elapsed time.Duration
	Types   string
}

// Snapshot captures the current simulation state.
func (g *Game) Snapshot() Snapshot {
	s := g.machine.State()
	return Snapshot{
		Tick:    g.tickCount,
		Phase:   s.Phase.String(),
		Seed:    s.Seed,
		Ball:    g.course.ball.Translation(),
		Camera:  g.rig.State(),
		Elapsed: g.machine.Elapsed(),
		Types:   typeString(g.course.layout.Types()),
	}
}

func typeString(types []obstacle.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}
