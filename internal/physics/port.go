// Package physics defines the rigid body world the course simulation runs on.
//
// The simulation core only talks to the small interfaces in this file: Body
// for the player's dynamic body, KinematicTarget for commanded obstacles and
// RayCaster for ground checks. World is the built-in implementation used by
// the terminal game; tests substitute their own fakes.
package physics

import "github.com/go-gl/mathgl/mgl64"

// BodyKind selects how a body moves.
type BodyKind int

const (
	Fixed     BodyKind = iota // never moves
	Kinematic                 // pose commanded every step
	Dynamic                   // integrated from forces, impulses and contacts
)

func (k BodyKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// BodyHandle identifies a body inside a world.
type BodyHandle int

// Pose is a position plus orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns a pose at p with no rotation.
func IdentityPose(p mgl64.Vec3) Pose {
	return Pose{Position: p, Rotation: mgl64.QuatIdent()}
}

// ShapeKind is the collider geometry of a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeBall
)

// Shape describes a collider. Boxes use HalfExtents, balls use Radius.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
}

// Box returns a box collider with the given full size.
func Box(size mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: size.Mul(0.5)}
}

// Ball returns a sphere collider.
func Ball(radius float64) Shape {
	return Shape{Kind: ShapeBall, Radius: radius}
}

// BodyDesc describes a body to create.
type BodyDesc struct {
	Kind           BodyKind
	Pose           Pose
	Shape          Shape
	Density        float64 // Dynamic bodies only; defaults to 1
	Restitution    float64
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
}

// Ray is a half line. Dir is expected to be unit length so that time of
// impact equals distance.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at time of impact toi.
func (r Ray) At(toi float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(toi))
}

// Hit is the result of a successful ray cast.
type Hit struct {
	Body BodyHandle
	Toi  float64
}

// Body is the dynamic body surface the player controller drives.
type Body interface {
	Translation() mgl64.Vec3
	Linvel() mgl64.Vec3
	Angvel() mgl64.Vec3
	ApplyImpulse(impulse mgl64.Vec3)
	ApplyTorqueImpulse(torque mgl64.Vec3)
	SetTranslation(p mgl64.Vec3)
	SetLinvel(v mgl64.Vec3)
	SetAngvel(w mgl64.Vec3)
}

// KinematicTarget receives commanded poses, applied at the next world step.
type KinematicTarget interface {
	SetNextKinematicTranslation(p mgl64.Vec3)
	SetNextKinematicRotation(q mgl64.Quat)
}

// RayCaster answers ray queries against every collider in the world.
// A miss is reported with ok == false, never as an error.
type RayCaster interface {
	CastRay(ray Ray, maxToi float64) (hit Hit, ok bool)
}

// BodyRef is what a world hands out for a created body.
type BodyRef interface {
	Body
	KinematicTarget
	Handle() BodyHandle
	Kind() BodyKind
	Pose() Pose
	Shape() Shape
}

// Space is the full world surface used by the course builder and step loop.
type Space interface {
	RayCaster
	CreateBody(desc BodyDesc) BodyRef
	Bodies() []BodyRef
	Step(dt float64)
	Clear()
}
