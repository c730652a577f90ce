// Package tire computes per-wheel slip and the combined-slip tire forces
package tire

import (
	"math"

	"github.com/lixenwraith/vi-drive/vmath"
)

// Curve is the empirical tire curve F = D·sin(C·atan(B·x − E·(B·x − atan(B·x))))
type Curve struct {
	B, C, D, E float64
}

func (c Curve) Eval(x float64) float64 {
	bx := c.B * x
	return c.D * math.Sin(c.C*math.Atan(bx-c.E*(bx-math.Atan(bx))))
}

// PeakSlip is the slip at which the curve reaches D, capped at 1
func (c Curve) PeakSlip() float64 {
	if c.C <= 1 {
		return 1
	}
	return math.Min(1, c.solve(math.Tan(math.Pi/(2*c.C)))/c.B)
}

// Invert returns the slip on the rising branch that produces force f
// Demands at or beyond D map to PeakSlip
func (c Curve) Invert(f float64) float64 {
	if c.D <= 0 || c.B <= 0 || f == 0 {
		return 0
	}
	r := math.Abs(f) / c.D
	if r >= 1 {
		return vmath.Sign(f) * c.PeakSlip()
	}
	angle := math.Asin(r) / c.C
	if angle >= math.Pi/2-1e-9 {
		return vmath.Sign(f)
	}
	x := c.solve(math.Tan(angle)) / c.B
	return vmath.Sign(f) * math.Min(x, 1)
}

// solve finds u ≥ 0 with (1−E)·u + E·atan(u) = phi by Newton iteration
func (c Curve) solve(phi float64) float64 {
	u := phi
	for i := 0; i < 20; i++ {
		g := (1-c.E)*u + c.E*math.Atan(u) - phi
		dg := (1 - c.E) + c.E/(1+u*u)
		if dg <= 1e-12 {
			break
		}
		next := u - g/dg
		if next < 0 {
			next = u / 2
		}
		if math.Abs(next-u) < 1e-12 {
			u = next
			break
		}
		u = next
	}
	return vmath.Finite(u)
}
