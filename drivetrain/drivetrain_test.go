package drivetrain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-drive/config"
)

const dt = 1.0 / 60.0

func defaults() *config.DrivetrainConfig {
	return &config.Default().Drivetrain
}

func TestCurveFactor(t *testing.T) {
	cfg := defaults()
	assert.InDelta(t, 1.0, CurveFactor(cfg, cfg.TargetRPM), 1e-9)
	assert.InDelta(t, cfg.MinCurveFactor, CurveFactor(cfg, cfg.IdleRPM), 1e-9)
	assert.InDelta(t, cfg.MinCurveFactor, CurveFactor(cfg, 20000), 1e-9)

	// rises toward target, falls after
	assert.Less(t, CurveFactor(cfg, 2500), CurveFactor(cfg, 3500))
	assert.Greater(t, CurveFactor(cfg, 5000), CurveFactor(cfg, 6000))

	for rpm := 0.0; rpm <= cfg.RedlineRPM; rpm += 100 {
		f := CurveFactor(cfg, rpm)
		require.GreaterOrEqual(t, f, cfg.MinCurveFactor, "rpm %v", rpm)
		require.LessOrEqual(t, f, 1.0, "rpm %v", rpm)
	}
}

func TestGearForSpeed(t *testing.T) {
	cfg := defaults()
	tests := []struct {
		speed float64
		want  Gear
	}{
		{0, 1}, {7.9, 1}, {8, 2}, {14, 2}, {15, 3}, {30, 4}, {31, 5}, {45, 6}, {-5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GearForSpeed(cfg, tt.speed), "speed %v", tt.speed)
	}
}

func TestRatioAndValidity(t *testing.T) {
	cfg := defaults()
	assert.Equal(t, -cfg.ReverseRatio, Ratio(cfg, Reverse))
	assert.Equal(t, cfg.GearRatios[0], Ratio(cfg, First))
	assert.Equal(t, 0.0, Ratio(cfg, 0))
	assert.True(t, Reverse.Valid(cfg))
	assert.True(t, Gear(6).Valid(cfg))
	assert.False(t, Gear(7).Valid(cfg))
	assert.False(t, Gear(0).Valid(cfg))
	assert.Equal(t, "R", Reverse.String())
	assert.Equal(t, "3", Gear(3).String())
}

func twoGears() *config.DrivetrainConfig {
	cfg := defaults()
	cfg.GearRatios = []float64{3.0, 2.0}
	cfg.ShiftSpeeds = []float64{0, 8}
	return cfg
}

func TestFit(t *testing.T) {
	cfg := twoGears()
	tests := []struct {
		in, want Gear
	}{
		{First, First},
		{2, 2},
		{3, 2},
		{6, 2},
		{0, First},
		{Reverse, Reverse},
	}
	for _, tt := range tests {
		if got := Fit(cfg, tt.in); got != tt.want {
			t.Errorf("Fit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUpdateAfterGearTableShrinks(t *testing.T) {
	radius := config.Default().Vehicle.WheelRadius
	speed := 15.0
	st := Settle(defaults(), speed, radius)
	require.Equal(t, Gear(3), st.Gear)

	cfg := twoGears()
	var out Output
	require.NotPanics(t, func() {
		out = Update(cfg, st, Control{Throttle: 1, Speed: speed, WheelSpeed: speed / radius, Dt: dt})
	})
	assert.Equal(t, Gear(2), out.State.Gear)
	assert.True(t, out.State.Gear.Valid(cfg))
	assert.True(t, out.Shifted)
	assert.Equal(t, Gear(3), out.From)
	assert.Equal(t, Gear(2), out.To)
	assert.False(t, out.State.Shifting, "already in the band's gear")

	// Caught mid-shift toward a gear the new table lacks
	st.Shifting, st.TargetGear = true, 4
	out = Update(cfg, st, Control{Throttle: 1, Speed: speed, WheelSpeed: speed / radius, Dt: dt})
	assert.Equal(t, Gear(2), out.State.Gear)
	assert.Equal(t, Gear(2), out.State.TargetGear)

	// Downshift check past the table end
	for range 120 {
		out = Update(cfg, out.State, Control{Speed: 2, WheelSpeed: 2 / radius, Dt: dt})
		require.True(t, out.State.Gear.Valid(cfg))
	}
	assert.Equal(t, First, out.State.Gear)
}

func TestUpshiftRPMIncreasesWithGear(t *testing.T) {
	cfg := defaults()
	radius := config.Default().Vehicle.WheelRadius
	prev := 0.0
	for g := First; int(g) < len(cfg.GearRatios); g++ {
		rpm := CoupledRPM(cfg, g, cfg.ShiftSpeeds[g]/radius)
		assert.Greater(t, rpm, prev, "gear %v", g)
		assert.Less(t, rpm, cfg.RedlineRPM, "gear %v", g)
		prev = rpm
	}
}

func TestLaunchFromRest(t *testing.T) {
	cfg := defaults()
	st := Initial(cfg)

	var out Output
	for i := 0; i < 30; i++ {
		out = Update(cfg, st, Control{Throttle: 1, Speed: 0, Dt: dt})
		st = out.State
	}

	assert.Equal(t, First, st.Gear)
	assert.InDelta(t, cfg.ClutchLaunchMin, st.Clutch, 1e-9)
	assert.Greater(t, st.RPM, 2500.0, "slipping clutch lets rpm climb toward launch rpm")
	assert.LessOrEqual(t, st.RPM, cfg.LaunchRPM+1)
	assert.Greater(t, out.WheelTorque, 0.0)
	assert.False(t, out.ServiceBrake)
}

func TestAutoUpshiftTakesShiftTime(t *testing.T) {
	cfg := defaults()
	radius := config.Default().Vehicle.WheelRadius
	st := Settle(cfg, 7.5, radius)
	require.Equal(t, First, st.Gear)

	speed := 8.5
	out := Update(cfg, st, Control{Throttle: 1, Speed: speed, WheelSpeed: speed / radius, Dt: dt})
	st = out.State
	require.True(t, st.Shifting)
	assert.Equal(t, Gear(2), st.TargetGear)
	assert.Equal(t, 0.0, st.Clutch)
	assert.Equal(t, 0.0, out.WheelTorque, "no drive while the clutch is open")

	ticks := 0
	for !out.Shifted {
		out = Update(cfg, st, Control{Throttle: 1, Speed: speed, WheelSpeed: speed / radius, Dt: dt})
		st = out.State
		ticks++
		require.Less(t, ticks, 100)
	}
	assert.InDelta(t, cfg.ShiftTime, float64(ticks)*dt, dt+1e-9)
	assert.Equal(t, First, out.From)
	assert.Equal(t, Gear(2), out.To)
	assert.Equal(t, Gear(2), st.Gear)
	assert.Greater(t, out.ShiftRPM, cfg.IdleRPM)
}

func TestDownshiftHysteresis(t *testing.T) {
	cfg := defaults()
	radius := config.Default().Vehicle.WheelRadius
	st := Settle(cfg, 16, radius)
	require.Equal(t, Gear(3), st.Gear)

	out := Update(cfg, st, Control{Speed: 14, WheelSpeed: 14 / radius, Dt: dt})
	assert.False(t, out.State.Shifting, "inside margin")

	out = Update(cfg, st, Control{Speed: 12.5, WheelSpeed: 12.5 / radius, Dt: dt})
	assert.True(t, out.State.Shifting)
	assert.Equal(t, Gear(2), out.State.TargetGear)
}

func TestReverseEngagement(t *testing.T) {
	cfg := defaults()
	st := Initial(cfg)

	// held brake shorter than the delay does not engage
	elapsed := 0.0
	for elapsed+dt < cfg.ReverseDelay-dt {
		st = Update(cfg, st, Control{Brake: true, Dt: dt}).State
		elapsed += dt
	}
	assert.Equal(t, First, st.Gear)

	// releasing resets the counter
	st = Update(cfg, st, Control{Dt: dt}).State
	assert.Equal(t, 0.0, st.StoppedTime)

	var out Output
	engaged := false
	for i := 0; i < 60 && !engaged; i++ {
		out = Update(cfg, st, Control{Brake: true, Dt: dt})
		st = out.State
		engaged = st.Gear == Reverse
	}
	require.True(t, engaged)
	assert.True(t, out.Shifted)
	assert.Equal(t, Reverse, out.To)

	// brake pedal now drives backward
	out = Update(cfg, st, Control{Brake: true, Dt: dt})
	assert.Less(t, out.WheelTorque, 0.0)
	assert.False(t, out.ServiceBrake)
	assert.Equal(t, 1.0, out.DriveThrottle)

	// throttle pedal brakes while reversing
	out = Update(cfg, out.State, Control{Throttle: 1, Speed: -2, Dt: dt})
	assert.True(t, out.ServiceBrake)
	assert.Equal(t, Reverse, out.State.Gear)

	// stationary with brake released returns to 1st
	out = Update(cfg, out.State, Control{Speed: 0, Dt: dt})
	assert.Equal(t, First, out.State.Gear)
	assert.True(t, out.Shifted)
	assert.Equal(t, Reverse, out.From)
}

func TestNoReverseWhileMoving(t *testing.T) {
	cfg := defaults()
	st := Initial(cfg)
	for i := 0; i < 120; i++ {
		st = Update(cfg, st, Control{Brake: true, Speed: 3, Dt: dt}).State
	}
	assert.NotEqual(t, Reverse, st.Gear)
}

func TestRevLimiterCutsFuel(t *testing.T) {
	cfg := defaults()
	st := Initial(cfg)
	st.RPM = cfg.RedlineRPM

	// stationary: clutch slipping toward launch rpm, limiter engages first
	out := Update(cfg, st, Control{Throttle: 1, Dt: dt})
	assert.True(t, out.LimiterEngaged)
	assert.True(t, out.State.Limiter)
	assert.Equal(t, 0.0, out.EngineTorque)
	assert.LessOrEqual(t, out.State.RPM, cfg.RedlineRPM)

	// stays cut until rpm falls below hysteresis
	st = out.State
	st.RPM = cfg.RedlineRPM - cfg.LimiterHysteresis/2
	out = Update(cfg, st, Control{Throttle: 1, Dt: dt})
	assert.True(t, out.State.Limiter)
	assert.False(t, out.LimiterEngaged)

	st = out.State
	st.RPM = cfg.RedlineRPM - cfg.LimiterHysteresis - 10
	out = Update(cfg, st, Control{Throttle: 1, Dt: dt})
	assert.False(t, out.State.Limiter)
	assert.Greater(t, out.EngineTorque, 0.0)
}

func TestIdleSettlesAtRest(t *testing.T) {
	cfg := defaults()
	st := Initial(cfg)
	st.RPM = 5000
	for i := 0; i < 600; i++ {
		st = Update(cfg, st, Control{Dt: dt}).State
	}
	assert.InDelta(t, cfg.IdleRPM, st.RPM, 1e-6)
	assert.Equal(t, 0.0, st.Clutch, "clutch opens below stall speed without throttle")
}

func TestEngineBrakingOpposesMotion(t *testing.T) {
	cfg := defaults()
	radius := config.Default().Vehicle.WheelRadius
	st := Settle(cfg, 20, radius)
	out := Update(cfg, st, Control{Speed: 20, WheelSpeed: 20 / radius, Dt: dt})
	assert.Less(t, out.WheelTorque, 0.0)
	assert.Equal(t, 1.0, out.State.Clutch)
}

func TestNonFiniteInputsHeld(t *testing.T) {
	cfg := defaults()
	st := Initial(cfg)
	nan := math.NaN()
	out := Update(cfg, st, Control{Throttle: nan, Speed: nan, WheelSpeed: 0, Dt: dt})
	assert.GreaterOrEqual(t, out.State.RPM, cfg.IdleRPM)
	assert.LessOrEqual(t, out.State.RPM, cfg.RedlineRPM)
	assert.Equal(t, First, out.State.Gear)
}
