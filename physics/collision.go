package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
	"github.com/lixenwraith/vi-drive/world"
)

// Contact is one resolved impact between the body and a world box
type Contact struct {
	Position    mgl64.Vec3 // deepest body corner at impact height
	Normal      mgl64.Vec2 // points from the obstacle toward the vehicle
	Depth       float64
	ImpactSpeed float64
	Kind        world.Kind
	Name        string
}

// Footprint is the vehicle body as a world box
func Footprint(cfg *config.Config, st *vehicle.State) world.Box {
	return world.Box{
		Center:      vmath.Planar(st.Body.Position),
		HalfExtents: mgl64.Vec2{cfg.Vehicle.BodyWidth / 2, cfg.Vehicle.BodyLength / 2},
		Yaw:         st.Body.Yaw,
	}
}

// Overlap runs a separating axis test between two boxes
// Returns the minimum translation normal (pointing from b toward a) and depth
func Overlap(a, b world.Box) (mgl64.Vec2, float64, bool) {
	ar, af := a.Axes()
	br, bf := b.Axes()
	axes := [4]mgl64.Vec2{ar, af, br, bf}

	d := a.Center.Sub(b.Center)
	best := math.Inf(1)
	var normal mgl64.Vec2

	for _, n := range axes {
		dist := d.Dot(n)
		depth := a.Radius(n) + b.Radius(n) - math.Abs(dist)
		if depth <= 0 {
			return mgl64.Vec2{}, 0, false
		}
		if depth < best {
			best = depth
			normal = n
			if dist < 0 {
				normal = n.Mul(-1)
			}
		}
	}
	return normal, best, true
}

// Collide pushes the body out of every overlapping box and reflects its velocity
// Impacts slower than MinImpactSpeed resolve silently; faster ones get a random yaw kick, count, and are returned
func Collide(cfg *config.Config, st *vehicle.State, w *world.World, rng *vmath.FastRand) []Contact {
	if w == nil || len(w.Boxes) == 0 {
		return nil
	}

	var contacts []Contact
	b := &st.Body

	for i := range w.Boxes {
		box := &w.Boxes[i]
		body := Footprint(cfg, st)
		n, depth, hit := Overlap(body, *box)
		if !hit {
			continue
		}

		// Deepest corner before the push-out is where the impact lands
		corner := body.Center
		minProj := math.Inf(1)
		for _, c := range body.Corners() {
			if p := c.Dot(n); p < minProj {
				minProj, corner = p, c
			}
		}

		pos := vmath.Planar(b.Position).Add(n.Mul(depth))
		b.Position = vmath.Lift(pos, b.Position.Y())

		v := st.PlanarVelocity()
		vn := v.Dot(n)
		if vn >= 0 {
			continue
		}

		prof := ProfileFor(cfg, box.Kind)
		tangent := v.Sub(n.Mul(vn)).Mul(1 - prof.Friction)
		v = tangent.Sub(n.Mul(vn * prof.Restitution))
		b.Velocity = vmath.Lift(v, b.Velocity.Y())

		impact := -vn
		if impact < cfg.Collision.MinImpactSpeed {
			continue
		}

		b.YawRate = vmath.Clamp(b.YawRate+rng.Range(prof.AngularVariance),
			-cfg.Integrator.MaxYawRate, cfg.Integrator.MaxYawRate)
		st.Collisions++

		contacts = append(contacts, Contact{
			Position:    vmath.Lift(corner, b.Position.Y()),
			Normal:      n,
			Depth:       depth,
			ImpactSpeed: impact,
			Kind:        box.Kind,
			Name:        box.Name,
		})
	}
	return contacts
}
