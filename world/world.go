// Package world holds the static geometry the vehicle can hit
package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Kind selects the collision response profile of a box
type Kind int

const (
	KindWall Kind = iota
	KindGate
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindGate:
		return "gate"
	default:
		return "unknown"
	}
}

// Box is an oriented rectangle in the ground plane, unbounded in height
// Center and extents use (x, z); HalfExtents.X is across the box heading, HalfExtents.Y along it
type Box struct {
	Name        string
	Center      mgl64.Vec2
	HalfExtents mgl64.Vec2
	Yaw         float64
	Kind        Kind
}

// Axes returns the box's unit right and forward axes
func (b Box) Axes() (right, forward mgl64.Vec2) {
	return vmath.Right(b.Yaw), vmath.Forward(b.Yaw)
}

// Corners returns the four corners counter-clockwise from rear-left
func (b Box) Corners() [4]mgl64.Vec2 {
	r, f := b.Axes()
	rx := r.Mul(b.HalfExtents.X())
	fy := f.Mul(b.HalfExtents.Y())
	return [4]mgl64.Vec2{
		b.Center.Sub(rx).Sub(fy),
		b.Center.Add(rx).Sub(fy),
		b.Center.Add(rx).Add(fy),
		b.Center.Sub(rx).Add(fy),
	}
}

// Contains reports whether p lies inside the box
func (b Box) Contains(p mgl64.Vec2) bool {
	lat, long := vmath.ToLocal(b.Yaw, p.Sub(b.Center))
	return math.Abs(lat) <= b.HalfExtents.X() && math.Abs(long) <= b.HalfExtents.Y()
}

// Radius projects the box onto unit axis n and returns the half-length of the projection
func (b Box) Radius(n mgl64.Vec2) float64 {
	r, f := b.Axes()
	return math.Abs(r.Dot(n))*b.HalfExtents.X() + math.Abs(f.Dot(n))*b.HalfExtents.Y()
}

// World is the static scene: obstacles and where the vehicle (re)spawns
type World struct {
	Boxes []Box
	Spawn vehicle.Pose
}

// Empty is an open world with the spawn at the origin facing +z
func Empty() *World {
	return &World{}
}

// Wall builds an axis-aligned wall between two corners
func Wall(name string, minX, minZ, maxX, maxZ float64) Box {
	return Box{
		Name:        name,
		Center:      mgl64.Vec2{(minX + maxX) / 2, (minZ + maxZ) / 2},
		HalfExtents: mgl64.Vec2{math.Abs(maxX-minX) / 2, math.Abs(maxZ-minZ) / 2},
		Kind:        KindWall,
	}
}

const (
	wallThickness = 1.0
	gatePost      = 0.4
	gateGap       = 6.0
)

// Arena is a square of side 2*half enclosed by walls, with a gate across the middle of the north half
func Arena(half float64) *World {
	outer := half + wallThickness
	w := &World{
		Boxes: []Box{
			Wall("north", -outer, half, outer, outer),
			Wall("south", -outer, -outer, outer, -half),
			Wall("west", -outer, -half, -half, half),
			Wall("east", half, -half, outer, half),
		},
	}

	z := half / 2
	for i, x := range []float64{-gateGap / 2, gateGap / 2} {
		name := "gate-left"
		if i == 1 {
			name = "gate-right"
		}
		w.Boxes = append(w.Boxes, Box{
			Name:        name,
			Center:      mgl64.Vec2{x, z},
			HalfExtents: mgl64.Vec2{gatePost, gatePost},
			Kind:        KindGate,
		})
	}
	return w
}

// Bounds returns the planar extent covering every box, or zero vectors for an empty world
func (w *World) Bounds() (lo, hi mgl64.Vec2) {
	if len(w.Boxes) == 0 {
		return lo, hi
	}
	lo = mgl64.Vec2{math.Inf(1), math.Inf(1)}
	hi = mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, b := range w.Boxes {
		for _, c := range b.Corners() {
			lo = mgl64.Vec2{math.Min(lo.X(), c.X()), math.Min(lo.Y(), c.Y())}
			hi = mgl64.Vec2{math.Max(hi.X(), c.X()), math.Max(hi.Y(), c.Y())}
		}
	}
	return lo, hi
}
