package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// contact describes a ball touching another body. Normal points from the
// other body toward the ball.
type contact struct {
	normal mgl64.Vec3
	depth  float64
	point  mgl64.Vec3
}

// collide tests a dynamic ball against a fixed or kinematic body.
func collide(ball, other *RigidBody) (contact, bool) {
	if ball.shape.Kind != ShapeBall {
		return contact{}, false
	}
	r := ball.shape.Radius

	switch other.shape.Kind {
	case ShapeBall:
		d := ball.pos.Sub(other.pos)
		dist := d.Len()
		overlap := r + other.shape.Radius - dist
		if overlap <= 0 {
			return contact{}, false
		}
		n := mgl64.Vec3{0, 1, 0}
		if dist > 1e-9 {
			n = d.Mul(1 / dist)
		}
		return contact{normal: n, depth: overlap, point: ball.pos.Sub(n.Mul(r))}, true

	default:
		inv := other.rot.Inverse()
		local := inv.Rotate(ball.pos.Sub(other.pos))
		he := other.shape.HalfExtents

		closest := mgl64.Vec3{
			clamp(local.X(), -he.X(), he.X()),
			clamp(local.Y(), -he.Y(), he.Y()),
			clamp(local.Z(), -he.Z(), he.Z()),
		}
		d := local.Sub(closest)
		dist := d.Len()

		var nLocal mgl64.Vec3
		var depth float64
		if dist > 1e-9 {
			if dist >= r {
				return contact{}, false
			}
			nLocal = d.Mul(1 / dist)
			depth = r - dist
		} else {
			// Center inside the box: push out along the shallowest axis.
			axis, pen := 0, math.Inf(1)
			for i := 0; i < 3; i++ {
				if p := he[i] - math.Abs(local[i]); p < pen {
					axis, pen = i, p
				}
			}
			nLocal[axis] = 1
			if local[axis] < 0 {
				nLocal[axis] = -1
			}
			depth = r + pen
		}

		n := other.rot.Rotate(nLocal)
		point := other.pos.Add(other.rot.Rotate(closest))
		return contact{normal: n, depth: depth, point: point}, true
	}
}

// resolve pushes the ball out of the contact and applies restitution and
// Coulomb friction. Friction acts at the contact point, so it couples spin
// and rolling.
func resolve(ball, other *RigidBody, c contact) {
	ball.pos = ball.pos.Add(c.normal.Mul(c.depth))

	surface := other.pointVelocity(c.point)
	arm := c.normal.Mul(-ball.shape.Radius)

	rel := ball.vel.Sub(surface)
	vn := rel.Dot(c.normal)
	if vn >= 0 {
		return
	}

	e := (ball.restitution + other.restitution) / 2
	if -vn < restingSpeed {
		e = 0
	}
	jn := -(1 + e) * vn / ball.invMass
	ball.vel = ball.vel.Add(c.normal.Mul(jn * ball.invMass))

	// Tangential velocity of the ball's contact point relative to the surface.
	vc := ball.vel.Add(ball.angvel.Cross(arm)).Sub(surface)
	vt := vc.Sub(c.normal.Mul(vc.Dot(c.normal)))
	speed := vt.Len()
	if speed < 1e-9 {
		return
	}
	tangent := vt.Mul(1 / speed)

	r := ball.shape.Radius
	k := ball.invMass + r*r*ball.invInertia
	jt := speed / k
	mu := (ball.friction + other.friction) / 2
	if limit := mu * jn; jt > limit {
		jt = limit
	}

	p := tangent.Mul(-jt)
	ball.vel = ball.vel.Add(p.Mul(ball.invMass))
	ball.angvel = ball.angvel.Add(arm.Cross(p).Mul(ball.invInertia))
}

// rayBody returns the time of impact of ray against b.
func rayBody(ray Ray, b *RigidBody) (float64, bool) {
	switch b.shape.Kind {
	case ShapeBall:
		return raySphere(ray, b.pos, b.shape.Radius)
	default:
		inv := b.rot.Inverse()
		local := Ray{
			Origin: inv.Rotate(ray.Origin.Sub(b.pos)),
			Dir:    inv.Rotate(ray.Dir),
		}
		return rayBox(local, b.shape.HalfExtents)
	}
}

// rayBox is the slab test against a box centred on the origin.
func rayBox(ray Ray, he mgl64.Vec3) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		o, d := ray.Origin[i], ray.Dir[i]
		if math.Abs(d) < 1e-12 {
			if o < -he[i] || o > he[i] {
				return 0, false
			}
			continue
		}
		t1 := (-he[i] - o) / d
		t2 := (he[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func raySphere(ray Ray, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := ray.Origin.Sub(center)
	c := oc.LenSqr() - radius*radius
	if c <= 0 {
		return 0, true
	}
	b := oc.Dot(ray.Dir)
	a := ray.Dir.LenSqr()
	disc := b*b - a*c
	if b > 0 || disc < 0 {
		return 0, false
	}
	return (-b - math.Sqrt(disc)) / a, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
