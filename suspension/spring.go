// Package suspension integrates per-corner spring-dampers and distributes dynamic weight transfer
package suspension

import (
	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Spring is one corner's spring-damper; compression is positive into bump
type Spring struct {
	Rate            float64 // N/m
	Damping         float64 // N·s/m
	RestCompression float64
	MaxCompression  float64
	MaxExtension    float64
	CornerMass      float64
}

func NewSpring(cfg *config.Config) Spring {
	s := cfg.Suspension
	return Spring{
		Rate:            s.Rate,
		Damping:         s.Damping,
		RestCompression: s.RestCompression,
		MaxCompression:  s.MaxCompression,
		MaxExtension:    s.MaxExtension,
		CornerMass:      cfg.Vehicle.Mass / 4,
	}
}

// Equilibrium is the compression at which the spring carries load
func (s Spring) Equilibrium(load float64) float64 {
	return vmath.Clamp(s.RestCompression+load/s.Rate, -s.MaxExtension, s.MaxCompression)
}

// Step advances compression and its rate by dt under load (semi-implicit Euler)
// Hitting a travel limit zeroes the rate so the stop cannot return energy
func (s Spring) Step(comp, rate, load, dt float64) (float64, float64) {
	springForce := -s.Rate * (comp - s.RestCompression)
	damperForce := -s.Damping * rate
	accel := (load + springForce + damperForce) / s.CornerMass

	rate = vmath.Finite(rate + accel*dt)
	comp = vmath.FiniteOr(comp+rate*dt, s.RestCompression)

	if comp > s.MaxCompression {
		comp = s.MaxCompression
		if rate > 0 {
			rate = 0
		}
	} else if comp < -s.MaxExtension {
		comp = -s.MaxExtension
		if rate < 0 {
			rate = 0
		}
	}
	return comp, rate
}

// NormalForce is the force the corner presses into the ground, never negative
// At full bump the stop carries whatever load the spring cannot
func (s Spring) NormalForce(comp, rate, load float64) float64 {
	f := s.Rate*(comp-s.RestCompression) + s.Damping*rate
	if comp >= s.MaxCompression && load > f {
		f = load
	}
	if f < 0 || !vmath.IsFinite(f) {
		return 0
	}
	return f
}
