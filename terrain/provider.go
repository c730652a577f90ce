package terrain

import "github.com/go-gl/mathgl/mgl64"

// Sample is the answer to one ground query at (x, z)
type Sample struct {
	GroundHeight float64
	Surface      SurfaceType
	Friction     float64
	Supported    bool
}

// Provider answers ground queries in world x/z
type Provider interface {
	Query(x, z float64) Sample
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(x, z float64) Sample

func (f ProviderFunc) Query(x, z float64) Sample { return f(x, z) }

func supported(height float64, s SurfaceType) Sample {
	return Sample{GroundHeight: height, Surface: s, Friction: s.Props().Friction, Supported: true}
}

func unsupported(height float64) Sample {
	return Sample{GroundHeight: height, Surface: Void}
}

// Flat is an infinite plane
type Flat struct {
	Height  float64
	Surface SurfaceType
}

func (f Flat) Query(x, z float64) Sample {
	return supported(f.Height, f.Surface)
}

// Bounded is a plane supported only inside an axis-aligned rectangle
type Bounded struct {
	Min, Max mgl64.Vec2 // (x, z)
	Height   float64
	Surface  SurfaceType
}

func (b Bounded) Query(x, z float64) Sample {
	if x < b.Min.X() || x > b.Max.X() || z < b.Min.Y() || z > b.Max.Y() {
		return unsupported(b.Height)
	}
	return supported(b.Height, b.Surface)
}

// Edge is a half-plane: supported behind the line through Origin, void past it along Normal
type Edge struct {
	Origin  mgl64.Vec2
	Normal  mgl64.Vec2
	Height  float64
	Surface SurfaceType
}

func (e Edge) Query(x, z float64) Sample {
	p := mgl64.Vec2{x, z}
	if p.Sub(e.Origin).Dot(e.Normal) > 0 {
		return unsupported(e.Height)
	}
	return supported(e.Height, e.Surface)
}

// Patch overrides the surface inside a rectangle
type Patch struct {
	Min, Max mgl64.Vec2
	Surface  SurfaceType
}

func (p Patch) contains(x, z float64) bool {
	return x >= p.Min.X() && x <= p.Max.X() && z >= p.Min.Y() && z <= p.Max.Y()
}

// Patchwork lays surface patches over a base provider; later patches win
type Patchwork struct {
	Base    Provider
	Patches []Patch
}

func (p Patchwork) Query(x, z float64) Sample {
	s := p.Base.Query(x, z)
	if !s.Supported {
		return s
	}
	for i := len(p.Patches) - 1; i >= 0; i-- {
		if p.Patches[i].contains(x, z) {
			return supported(s.GroundHeight, p.Patches[i].Surface)
		}
	}
	return s
}
