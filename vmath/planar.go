package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Planar helpers work in the ground plane: mgl64.Vec2{X: world x, Y: world z}
// Yaw 0 faces +z; positive yaw turns toward +x (right)

// Forward returns the unit heading vector for yaw
func Forward(yaw float64) mgl64.Vec2 {
	s, c := math.Sincos(yaw)
	return mgl64.Vec2{s, c}
}

// Right returns the unit vector to the right of heading for yaw
func Right(yaw float64) mgl64.Vec2 {
	s, c := math.Sincos(yaw)
	return mgl64.Vec2{c, -s}
}

// ToWorld maps a local (lateral, longitudinal) offset into the plane for yaw
func ToWorld(yaw, lateral, longitudinal float64) mgl64.Vec2 {
	return Right(yaw).Mul(lateral).Add(Forward(yaw).Mul(longitudinal))
}

// ToLocal projects a planar vector onto the (lateral, longitudinal) axes for yaw
func ToLocal(yaw float64, v mgl64.Vec2) (lateral, longitudinal float64) {
	return v.Dot(Right(yaw)), v.Dot(Forward(yaw))
}

// YawTorque returns the torque about +y of force f applied at lever r, positive = yaw increases
func YawTorque(r, f mgl64.Vec2) float64 {
	return r.Y()*f.X() - r.X()*f.Y()
}

// Planar drops the vertical component of a world vector
func Planar(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v.X(), v.Z()}
}

// Lift builds a world vector from a planar vector and height
func Lift(p mgl64.Vec2, y float64) mgl64.Vec3 {
	return mgl64.Vec3{p.X(), y, p.Y()}
}

// ClampMagnitude2 limits planar vector magnitude, returning the applied scale
func ClampMagnitude2(v mgl64.Vec2, maxMag float64) (mgl64.Vec2, float64) {
	mag := v.Len()
	if mag <= maxMag || mag == 0 {
		return v, 1
	}
	s := maxMag / mag
	return v.Mul(s), s
}

// FiniteVec3 returns v with non-finite components replaced by fallback components
func FiniteVec3(v, fallback mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		FiniteOr(v.X(), fallback.X()),
		FiniteOr(v.Y(), fallback.Y()),
		FiniteOr(v.Z(), fallback.Z()),
	}
}
