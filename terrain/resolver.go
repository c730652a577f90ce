package terrain

import (
	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Resolve queries p once per wheel, records contact on the state, and classifies the regime
// A wheel is on the ground when its surface is supported and its bottom sits within tolerance of it
func Resolve(cfg *config.Config, st *vehicle.State, p Provider) vehicle.Regime {
	maxDepth := cfg.Contact.PartialMaxSag + cfg.Contact.Tolerance
	grounded := 0

	for _, id := range vehicle.All {
		pos := st.WheelWorld(cfg, id)
		s := p.Query(pos.X(), pos.Z())
		props := s.Surface.Props()

		height := vmath.FiniteOr(s.GroundHeight, st.Wheels[id].Contact.GroundHeight)
		gap := pos.Y() - height
		onGround := s.Supported && gap <= cfg.Contact.Tolerance && gap >= -maxDepth

		friction := vmath.Finite(s.Friction)
		if friction < 0 {
			friction = 0
		}

		st.Wheels[id].Contact = vehicle.Contact{
			GroundHeight:      height,
			Supported:         s.Supported,
			OnGround:          onGround,
			Friction:          friction,
			RollingResistance: props.RollingResistance,
			SpeedPenalty:      props.SpeedPenalty,
			SlipMultiplier:    props.SlipMultiplier,
			Surface:           props.Name,
		}
		if onGround {
			grounded++
		}
	}

	switch grounded {
	case int(vehicle.WheelCount):
		return vehicle.ContactFull
	case 0:
		return vehicle.ContactNone
	default:
		return vehicle.ContactPartial
	}
}

// GravityScale is the share of gravity left unsupported by the ground in a regime
func GravityScale(cfg *config.Config, r vehicle.Regime) float64 {
	switch r {
	case vehicle.ContactFull:
		return cfg.Contact.GravityFull
	case vehicle.ContactPartial:
		return cfg.Contact.GravityPartial
	default:
		return cfg.Contact.GravityNone
	}
}
