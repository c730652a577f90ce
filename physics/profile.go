package physics

import (
	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/world"
)

// CollisionProfile defines the response against one kind of geometry
type CollisionProfile struct {
	Restitution     float64 // fraction of normal approach speed returned, < 1
	AngularVariance float64 // random yaw-rate kick spread in rad/s
	Friction        float64 // fraction of tangential speed lost per impact
}

// ProfileFor returns the configured profile for a geometry kind
func ProfileFor(cfg *config.Config, k world.Kind) CollisionProfile {
	p := cfg.Collision.Wall
	if k == world.KindGate {
		p = cfg.Collision.Gate
	}
	return CollisionProfile{
		Restitution:     p.Restitution,
		AngularVariance: p.AngularVariance,
		Friction:        p.Friction,
	}
}
