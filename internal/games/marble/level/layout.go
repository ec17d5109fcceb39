// Package level builds course layouts: a start block, a seeded sequence of
// obstacle blocks and a goal block, enclosed by boundary walls.
package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/games/marble/obstacle"
)

// ObstacleSpec places one block on the course.
type ObstacleSpec struct {
	Type        obstacle.Type `yaml:"type"`
	Index       int           `yaml:"index"`
	Position    mgl64.Vec3    `yaml:"position,flow"`
	RandomPhase float64       `yaml:"phase"`
	Speed       float64       `yaml:"speed,omitempty"`
}

// Wall is a fixed boundary box.
type Wall struct {
	Center mgl64.Vec3 `yaml:"center,flow"`
	Size   mgl64.Vec3 `yaml:"size,flow"`
}

// Layout is a generated course.
type Layout struct {
	Seed       float64        `yaml:"seed"`
	BlockCount int            `yaml:"block_count"`
	Spacing    float64        `yaml:"spacing"`
	Start      ObstacleSpec   `yaml:"start"`
	Obstacles  []ObstacleSpec `yaml:"obstacles"`
	End        ObstacleSpec   `yaml:"end"`
	Walls      []Wall         `yaml:"walls"`
}

// Blocks returns start, obstacles and end in course order.
func (l Layout) Blocks() []ObstacleSpec {
	blocks := make([]ObstacleSpec, 0, len(l.Obstacles)+2)
	blocks = append(blocks, l.Start)
	blocks = append(blocks, l.Obstacles...)
	blocks = append(blocks, l.End)
	return blocks
}

// Types returns the obstacle type sequence, without start and end.
func (l Layout) Types() []obstacle.Type {
	types := make([]obstacle.Type, len(l.Obstacles))
	for i, o := range l.Obstacles {
		types[i] = o.Type
	}
	return types
}

// finishMargin keeps the goal line a fixed distance short of the far end of
// the course whatever the spacing.
const finishMargin = 2

// FinishZ is the depth the player must pass to complete the course. At the
// default spacing this is the near edge of the goal block.
func (l Layout) FinishZ() float64 {
	return -(float64(l.BlockCount+1)*l.Spacing - finishMargin)
}

// Length is the number of block slots, start and end included.
func (l Layout) Length() int {
	return l.BlockCount + 2
}
