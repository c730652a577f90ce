package suspension

import (
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vehicle"
	"github.com/lixenwraith/vi-drive/vmath"
)

// LateralAccel is the steady-turn acceleration v²/R with R = wheelbase / tan|steer|
// Positive is toward the right, matching positive steer
func LateralAccel(speed, steer, wheelbase float64) float64 {
	if math.Abs(steer) < 1e-4 {
		return 0
	}
	radius := wheelbase / math.Tan(math.Abs(steer))
	return vmath.Sign(steer) * vmath.SafeDiv(speed*speed, radius, 0)
}

// Transfer returns longitudinal and lateral load transfer in N, each clamped to a fraction of weight
// Positive long moves load rearward, positive lat moves load to the left (outside of a right turn)
func Transfer(cfg *config.Config, longAccel, latAccel float64) (long, lat float64) {
	v := cfg.Vehicle
	limit := cfg.Suspension.TransferMaxFraction * v.Weight()
	long = v.Mass * vmath.Finite(longAccel) * v.CoGHeight / v.Wheelbase()
	lat = v.Mass * vmath.Finite(latAccel) * v.CoGHeight / v.TrackWidth
	return vmath.Clamp(long, -limit, limit), vmath.Clamp(lat, -limit, limit)
}

// Distribute spreads transfers over the static corner loads
// Fronts see more of the longitudinal swing, rears more of the lateral swing
func Distribute(cfg *config.Config, long, lat float64) [vehicle.WheelCount]float64 {
	s := cfg.Suspension
	var loads [vehicle.WheelCount]float64
	for _, id := range vehicle.All {
		longShare, latShare := s.LongRearBias, s.LatRearBias
		longSign, latSign := 1.0, 1.0
		if id.IsFront() {
			longShare, latShare = s.LongFrontBias, s.LatFrontBias
			longSign = -1
		}
		if !id.IsLeft() {
			latSign = -1
		}
		l := vehicle.StaticCornerLoad(cfg, id) + longSign*long/2*longShare + latSign*lat/2*latShare
		loads[id] = math.Max(0, l)
	}
	return loads
}

// BodyAngles derives display pitch and roll from compression beyond static rest
// Nose-down pitch is negative, right-side-down roll is positive
func BodyAngles(cfg *config.Config, comp [vehicle.WheelCount]float64) (pitch, roll float64) {
	var d [vehicle.WheelCount]float64
	for _, id := range vehicle.All {
		d[id] = comp[id] - vehicle.StaticRestCompression(cfg, id)
	}
	front := (d[vehicle.FrontLeft] + d[vehicle.FrontRight]) / 2
	rear := (d[vehicle.RearLeft] + d[vehicle.RearRight]) / 2
	left := (d[vehicle.FrontLeft] + d[vehicle.RearLeft]) / 2
	right := (d[vehicle.FrontRight] + d[vehicle.RearRight]) / 2

	pitch = math.Atan2(rear-front, cfg.Vehicle.Wheelbase())
	roll = math.Atan2(right-left, cfg.Vehicle.TrackWidth)
	return pitch, roll
}
