// Package terrain defines the ground/surface provider queried per wheel and the contact resolver
package terrain

// SurfaceType identifies a road surface
type SurfaceType int

const (
	Asphalt SurfaceType = iota
	Concrete
	Gravel
	Grass
	Dirt
	Ice
	Void
	surfaceCount
)

// Surface is the read-only grip description of a surface type
type Surface struct {
	Name              string
	Friction          float64
	RollingResistance float64 // multiplier on the base coefficient
	SpeedPenalty      float64 // 1/s linear drag on each wheel's mass share
	SlipMultiplier    float64 // > 1 softens tire stiffness
}

var surfaces = [surfaceCount]Surface{
	Asphalt:  {Name: "asphalt", Friction: 1.0, RollingResistance: 1.0, SlipMultiplier: 1.0},
	Concrete: {Name: "concrete", Friction: 0.95, RollingResistance: 1.0, SlipMultiplier: 1.0},
	Gravel:   {Name: "gravel", Friction: 0.7, RollingResistance: 2.5, SpeedPenalty: 0.05, SlipMultiplier: 1.3},
	Grass:    {Name: "grass", Friction: 0.6, RollingResistance: 3.0, SpeedPenalty: 0.08, SlipMultiplier: 1.4},
	Dirt:     {Name: "dirt", Friction: 0.65, RollingResistance: 2.0, SpeedPenalty: 0.04, SlipMultiplier: 1.25},
	Ice:      {Name: "ice", Friction: 0.15, RollingResistance: 0.8, SlipMultiplier: 2.0},
	Void:     {Name: "void", SlipMultiplier: 1.0},
}

// Props returns the surface table entry; unknown types read as Void
func (t SurfaceType) Props() Surface {
	if t < 0 || t >= surfaceCount {
		return surfaces[Void]
	}
	return surfaces[t]
}

func (t SurfaceType) String() string {
	return t.Props().Name
}
