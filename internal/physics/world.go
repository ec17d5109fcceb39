package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Defaults used by NewWorld.
const (
	DefaultGravity  = -9.81
	DefaultSubsteps = 4

	// Closing speeds below this do not bounce, which keeps resting contact quiet.
	restingSpeed = 1.0
)

// World is a small rigid body world: dynamic balls colliding against fixed
// and kinematic oriented boxes. It is only as general as the course needs.
type World struct {
	gravity  mgl64.Vec3
	substeps int
	bodies   []*RigidBody
}

// RigidBody is a body owned by a World.
type RigidBody struct {
	handle BodyHandle
	kind   BodyKind
	shape  Shape

	pos    mgl64.Vec3
	rot    mgl64.Quat
	vel    mgl64.Vec3
	angvel mgl64.Vec3

	// Kinematic bookkeeping: pending targets and the pose before the last move.
	nextPos *mgl64.Vec3
	nextRot *mgl64.Quat
	prevPos mgl64.Vec3
	prevRot mgl64.Quat
	stepDt  float64

	invMass        float64
	invInertia     float64
	restitution    float64
	friction       float64
	linearDamping  float64
	angularDamping float64
}

// NewWorld creates an empty world with standard gravity.
func NewWorld() *World {
	return &World{
		gravity:  mgl64.Vec3{0, DefaultGravity, 0},
		substeps: DefaultSubsteps,
	}
}

// SetGravity replaces the gravity vector.
func (w *World) SetGravity(g mgl64.Vec3) {
	w.gravity = g
}

// SetSubsteps sets how many integration substeps each Step performs.
func (w *World) SetSubsteps(n int) {
	if n < 1 {
		n = 1
	}
	w.substeps = n
}

// CreateBody adds a body to the world.
func (w *World) CreateBody(desc BodyDesc) BodyRef {
	rot := desc.Pose.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}

	b := &RigidBody{
		handle:         BodyHandle(len(w.bodies)),
		kind:           desc.Kind,
		shape:          desc.Shape,
		pos:            desc.Pose.Position,
		rot:            rot.Normalize(),
		restitution:    desc.Restitution,
		friction:       desc.Friction,
		linearDamping:  desc.LinearDamping,
		angularDamping: desc.AngularDamping,
	}
	b.prevPos, b.prevRot = b.pos, b.rot

	if desc.Kind == Dynamic {
		density := desc.Density
		if density <= 0 {
			density = 1
		}
		mass, inertia := massProperties(desc.Shape, density)
		b.invMass = 1 / mass
		b.invInertia = 1 / inertia
	}

	w.bodies = append(w.bodies, b)
	return b
}

// massProperties returns mass and the (isotropic) moment of inertia.
// Boxes use the inertia of their bounding sphere, which is enough for the
// rare dynamic box.
func massProperties(s Shape, density float64) (float64, float64) {
	switch s.Kind {
	case ShapeBall:
		r := s.Radius
		m := density * 4.0 / 3.0 * math.Pi * r * r * r
		return m, 0.4 * m * r * r
	default:
		he := s.HalfExtents
		m := density * 8 * he.X() * he.Y() * he.Z()
		return m, m * (he.LenSqr()) / 3
	}
}

// Bodies returns every body in creation order.
func (w *World) Bodies() []BodyRef {
	out := make([]BodyRef, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b
	}
	return out
}

// Clear removes every body.
func (w *World) Clear() {
	w.bodies = w.bodies[:0]
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	// Kinematic bodies jump to their commanded pose; the previous pose is
	// kept so contacts can see how fast the surface moved.
	for _, b := range w.bodies {
		if b.kind != Kinematic {
			continue
		}
		b.prevPos, b.prevRot = b.pos, b.rot
		b.stepDt = dt
		if b.nextPos != nil {
			b.vel = b.nextPos.Sub(b.pos).Mul(1 / dt)
			b.pos = *b.nextPos
			b.nextPos = nil
		} else {
			b.vel = mgl64.Vec3{}
		}
		if b.nextRot != nil {
			b.rot = *b.nextRot
			b.nextRot = nil
		}
	}

	h := dt / float64(w.substeps)
	for i := 0; i < w.substeps; i++ {
		w.substep(h)
	}
}

func (w *World) substep(h float64) {
	for _, b := range w.bodies {
		if b.kind != Dynamic {
			continue
		}

		b.vel = b.vel.Add(w.gravity.Mul(h))
		b.vel = b.vel.Mul(1 / (1 + h*b.linearDamping))
		b.angvel = b.angvel.Mul(1 / (1 + h*b.angularDamping))

		b.pos = b.pos.Add(b.vel.Mul(h))
		spin := mgl64.Quat{W: 0, V: b.angvel}
		b.rot = b.rot.Add(spin.Mul(b.rot).Scale(0.5 * h)).Normalize()

		for _, other := range w.bodies {
			if other == b || other.kind == Dynamic {
				continue
			}
			if c, ok := collide(b, other); ok {
				resolve(b, other, c)
			}
		}
	}
}

// CastRay returns the closest hit along ray within maxToi.
// Rays starting inside a collider hit it at toi 0.
func (w *World) CastRay(ray Ray, maxToi float64) (Hit, bool) {
	best := Hit{Toi: math.Inf(1)}
	found := false

	for _, b := range w.bodies {
		toi, ok := rayBody(ray, b)
		if !ok || toi > maxToi || toi >= best.Toi {
			continue
		}
		best = Hit{Body: b.handle, Toi: toi}
		found = true
	}
	return best, found
}

// Handle returns the body's handle.
func (b *RigidBody) Handle() BodyHandle { return b.handle }

// Kind returns the body's kind.
func (b *RigidBody) Kind() BodyKind { return b.kind }

// Shape returns the body's collider.
func (b *RigidBody) Shape() Shape { return b.shape }

// Pose returns the current pose.
func (b *RigidBody) Pose() Pose { return Pose{Position: b.pos, Rotation: b.rot} }

// Translation returns the current position.
func (b *RigidBody) Translation() mgl64.Vec3 { return b.pos }

// Linvel returns the linear velocity.
func (b *RigidBody) Linvel() mgl64.Vec3 { return b.vel }

// Angvel returns the angular velocity.
func (b *RigidBody) Angvel() mgl64.Vec3 { return b.angvel }

// ApplyImpulse changes linear momentum. No-op for non-dynamic bodies.
func (b *RigidBody) ApplyImpulse(impulse mgl64.Vec3) {
	b.vel = b.vel.Add(impulse.Mul(b.invMass))
}

// ApplyTorqueImpulse changes angular momentum. No-op for non-dynamic bodies.
func (b *RigidBody) ApplyTorqueImpulse(torque mgl64.Vec3) {
	b.angvel = b.angvel.Add(torque.Mul(b.invInertia))
}

// SetTranslation teleports the body.
func (b *RigidBody) SetTranslation(p mgl64.Vec3) {
	b.pos = p
	b.prevPos = p
}

// SetLinvel overwrites the linear velocity.
func (b *RigidBody) SetLinvel(v mgl64.Vec3) { b.vel = v }

// SetAngvel overwrites the angular velocity.
func (b *RigidBody) SetAngvel(w mgl64.Vec3) { b.angvel = w }

// SetNextKinematicTranslation commands the position for the next step.
func (b *RigidBody) SetNextKinematicTranslation(p mgl64.Vec3) {
	if b.kind != Kinematic {
		return
	}
	b.nextPos = &p
}

// SetNextKinematicRotation commands the orientation for the next step.
func (b *RigidBody) SetNextKinematicRotation(q mgl64.Quat) {
	if b.kind != Kinematic {
		return
	}
	q = q.Normalize()
	b.nextRot = &q
}

// pointVelocity returns how fast the surface point p of a kinematic body
// moved during the last step.
func (b *RigidBody) pointVelocity(p mgl64.Vec3) mgl64.Vec3 {
	if b.kind != Kinematic || b.stepDt == 0 {
		return mgl64.Vec3{}
	}
	local := b.rot.Inverse().Rotate(p.Sub(b.pos))
	before := b.prevPos.Add(b.prevRot.Rotate(local))
	return p.Sub(before).Mul(1 / b.stepDt)
}

var _ Space = (*World)(nil)
