// Package scenario drives the simulation headless from scripted input timelines
package scenario

import (
	"math"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/vehicle"
)

// Scenario is a scripted run: a starting state, an input timeline and an environment
type Scenario struct {
	Name     string
	Duration float64
	Env      sim.Env
	Setup    func(cfg *config.Config, st *vehicle.State) // nil starts at rest on the spawn
	Input    func(t float64) sim.Input                   // t is simulated seconds since start
}

// Sample is the per-tick telemetry row
type Sample struct {
	Tick         uint64
	Time         float64
	Speed        float64
	ForwardSpeed float64
	RPM          float64
	Gear         drivetrain.Gear
	Clutch       float64
	YawRate      float64
	Height       float64
	Pitch        float64
	PitchRate    float64
	NormalSum    float64
	Regime       vehicle.Regime
	Skidding     bool
	SlipRatio    [vehicle.WheelCount]float64
	SlipAngle    [vehicle.WheelCount]float64
}

// Telemetry is everything one run produced
type Telemetry struct {
	Name       string
	Samples    []Sample
	Events     []event.Event
	Violations map[uint64][]sim.Violation // keyed by tick, only ticks with violations
	Final      vehicle.State
}

// Run steps sc at fixed dt and records every tick
func Run(cfg *config.Config, sc Scenario, dt float64) Telemetry {
	st := vehicle.New(cfg, sc.Env.Spawn())
	if sc.Setup != nil {
		sc.Setup(cfg, &st)
	}
	input := sc.Input
	if input == nil {
		input = func(float64) sim.Input { return sim.Input{} }
	}

	ticks := int(math.Round(sc.Duration / dt))
	tel := Telemetry{
		Name:       sc.Name,
		Samples:    make([]Sample, 0, ticks),
		Violations: make(map[uint64][]sim.Violation),
	}

	for i := 0; i < ticks; i++ {
		var evs []event.Event
		st, evs = sim.Step(cfg, sc.Env, st, input(float64(i)*dt), dt)
		tel.Events = append(tel.Events, evs...)
		tel.Samples = append(tel.Samples, sample(&st))
		if vs := sim.Validate(cfg, &st); len(vs) > 0 {
			tel.Violations[st.Tick] = vs
		}
	}
	tel.Final = st
	return tel
}

func sample(st *vehicle.State) Sample {
	s := Sample{
		Tick:         st.Tick,
		Time:         st.Time,
		Speed:        st.Speed(),
		ForwardSpeed: st.ForwardSpeed(),
		RPM:          st.Drivetrain.RPM,
		Gear:         st.Drivetrain.Gear,
		Clutch:       st.Drivetrain.Clutch,
		YawRate:      st.Body.YawRate,
		Height:       st.Body.Position.Y(),
		Pitch:        st.Body.Pitch,
		PitchRate:    st.Body.PitchRate,
		NormalSum:    st.TotalNormalForce(),
		Regime:       st.Regime,
		Skidding:     st.Skidding,
	}
	for _, id := range vehicle.All {
		s.SlipRatio[id] = st.Wheels[id].SlipRatio
		s.SlipAngle[id] = st.Wheels[id].SlipAngle
	}
	return s
}

// Series extracts one column against time
func (t *Telemetry) Series(col func(Sample) float64) (times, values []float64) {
	times = make([]float64, len(t.Samples))
	values = make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		times[i] = s.Time
		values[i] = col(s)
	}
	return times, values
}

// EventsOf filters the recorded events by type, preserving order
func (t *Telemetry) EventsOf(typ event.EventType) []event.Event {
	var out []event.Event
	for _, ev := range t.Events {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// TopSpeed is the highest planar speed recorded
func (t *Telemetry) TopSpeed() float64 {
	top := 0.0
	for _, s := range t.Samples {
		top = math.Max(top, s.Speed)
	}
	return top
}

// ViolationCount totals violations over all ticks
func (t *Telemetry) ViolationCount() int {
	n := 0
	for _, vs := range t.Violations {
		n += len(vs)
	}
	return n
}
