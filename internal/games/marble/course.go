package marble

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/marble-run/internal/config"
	"github.com/vovakirdan/marble-run/internal/games/marble/level"
	"github.com/vovakirdan/marble-run/internal/games/marble/obstacle"
	"github.com/vovakirdan/marble-run/internal/physics"
)

// part is a body placed on the course, remembered for rendering.
type part struct {
	kind  obstacle.Type
	base  mgl64.Vec3
	body  physics.BodyRef
	floor bool
}

// course is a layout instantiated as bodies in a physics space.
type course struct {
	layout level.Layout
	ball   physics.BodyRef
	driver *obstacle.Driver
	parts  []part
	walls  []physics.BodyRef
}

// buildCourse clears space and fills it with the floors, moving parts and
// walls of layout plus the player ball. Moving parts start at their pose
// for time t.
func buildCourse(space physics.Space, layout level.Layout, cfg config.MarbleConfig, t float64) *course {
	space.Clear()

	c := &course{
		layout: layout,
		driver: obstacle.NewDriver(),
	}

	for _, block := range layout.Blocks() {
		if obstacle.HasFloor(block.Type) {
			body := space.CreateBody(physics.BodyDesc{
				Kind:     physics.Fixed,
				Pose:     physics.IdentityPose(block.Position.Add(obstacle.FloorOffset)),
				Shape:    physics.Box(obstacle.FloorSize),
				Friction: cfg.Level.FloorFriction,
			})
			c.parts = append(c.parts, part{kind: block.Type, base: block.Position, body: body, floor: true})
		}

		shape, ok := obstacle.Shape(block.Type)
		if !ok {
			continue
		}
		body := space.CreateBody(physics.BodyDesc{
			Kind:        physics.Kinematic,
			Pose:        obstacle.TargetPose(block.Type, block.Position, block.RandomPhase, block.Speed, t),
			Shape:       shape,
			Restitution: cfg.Level.ObstacleRestitution,
			Friction:    cfg.Level.ObstacleFriction,
		})
		c.parts = append(c.parts, part{kind: block.Type, base: block.Position, body: body})
		c.driver.Add(obstacle.Animated{
			Kind:   block.Type,
			Base:   block.Position,
			Phase:  block.RandomPhase,
			Speed:  block.Speed,
			Target: body,
		})
	}

	for _, w := range layout.Walls {
		c.walls = append(c.walls, space.CreateBody(physics.BodyDesc{
			Kind:        physics.Fixed,
			Pose:        physics.IdentityPose(w.Center),
			Shape:       physics.Box(w.Size),
			Restitution: cfg.Level.WallRestitution,
		}))
	}

	p := cfg.Player
	c.ball = space.CreateBody(physics.BodyDesc{
		Kind:           physics.Dynamic,
		Pose:           physics.IdentityPose(p.Start),
		Shape:          physics.Ball(p.Radius),
		Density:        p.Density,
		Restitution:    p.Restitution,
		Friction:       p.Friction,
		LinearDamping:  p.LinearDamping,
		AngularDamping: p.AngularDamping,
	})

	return c
}
