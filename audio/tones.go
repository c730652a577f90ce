package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/vmath"
)

// Thump is a decaying noise burst over a low rumble, scaled by impact strength
type Thump struct {
	sr   beep.SampleRate
	gain float64
	rng  *vmath.FastRand
	pos  int
}

// NewThump creates a thump whose loudness follows impact speed in m/s
func NewThump(sr beep.SampleRate, impact float64, seed uint64) *Thump {
	return &Thump{
		sr:   sr,
		gain: vmath.Clamp(impact/parameter.ThumpFullSpeed, parameter.ThumpMinGain, 1),
		rng:  vmath.NewFastRand(seed),
	}
}

func (g *Thump) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * parameter.ThumpDecay)

		noise := g.rng.Range(1)
		rumble := 0.6 * math.Sin(2*math.Pi*parameter.ThumpRumbleHz*t)
		s := g.gain * envelope * (0.3*noise + rumble) * 0.5

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Thump) Err() error {
	return nil
}

// Squeal is two detuned partials with a little noise, looping while any tire skids
type Squeal struct {
	sr     beep.SampleRate
	wheels atomic.Int32 // skidding wheel count
	rng    *vmath.FastRand
	pos    int
}

func NewSqueal(sr beep.SampleRate) *Squeal {
	return &Squeal{sr: sr, rng: vmath.NewFastRand(0x5EED)}
}

func (g *Squeal) Stream(samples [][2]float64) (n int, ok bool) {
	gain := parameter.SquealGain * float64(g.wheels.Load())
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		s := math.Sin(2*math.Pi*parameter.SquealHz*t) +
			0.7*math.Sin(2*math.Pi*(parameter.SquealHz+parameter.SquealDetune)*t) +
			0.2*g.rng.Range(1)
		s *= gain * 0.5

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

// SetWheels sets how many wheels are skidding; zero is silent
func (g *Squeal) SetWheels(n int) {
	g.wheels.Store(int32(n))
}

func (g *Squeal) Err() error {
	return nil
}
