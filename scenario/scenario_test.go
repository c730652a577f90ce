package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/vehicle"
)

const dt = 1.0 / 60

func TestRunRecordsEveryTick(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, Handbrake(20), dt)

	require.Len(t, tel.Samples, 180)
	assert.Equal(t, "handbrake-20", tel.Name)
	assert.Equal(t, uint64(1), tel.Samples[0].Tick)
	assert.Equal(t, uint64(180), tel.Final.Tick)

	times, speeds := tel.Series(func(s Sample) float64 { return s.Speed })
	require.Len(t, times, 180)
	require.Len(t, speeds, 180)
	assert.InDelta(t, dt, times[0], 1e-12)
	assert.InDelta(t, 3.0, times[179], 1e-9)
	assert.Less(t, speeds[179], speeds[0])
}

func TestLaunchPreset(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, Launch(), dt)

	assert.Zero(t, tel.ViolationCount())
	prev := 0.0
	for _, s := range tel.Samples[:120] {
		assert.GreaterOrEqual(t, s.ForwardSpeed, prev-0.01, "tick %d", s.Tick)
		prev = s.ForwardSpeed
	}

	shifts := tel.EventsOf(event.EventGearChange)
	require.GreaterOrEqual(t, len(shifts), 2)
	lastRPM := 0.0
	for _, ev := range shifts {
		p := ev.Payload.(event.GearChangePayload)
		assert.Equal(t, p.From+1, p.To)
		assert.Greater(t, p.RPM, lastRPM)
		lastRPM = p.RPM
	}
	assert.Greater(t, tel.TopSpeed(), 15.0)
}

func TestHandbrakePresetLocksFronts(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, Handbrake(20), dt)

	first := tel.Samples[0]
	assert.Equal(t, -1.0, first.SlipRatio[vehicle.FrontLeft])
	assert.Equal(t, -1.0, first.SlipRatio[vehicle.FrontRight])
	assert.Greater(t, first.SlipRatio[vehicle.RearLeft], -0.25)

	starts := tel.EventsOf(event.EventSkidStart)
	assert.NotEmpty(t, starts)
}

func TestSteadySteerPreset(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, SteadySteer(), dt)

	skidded := false
	for _, s := range tel.Samples {
		skidded = skidded || s.Skidding
		assert.LessOrEqual(t, s.YawRate, cfg.Integrator.MaxYawRate+1e-9)
		assert.GreaterOrEqual(t, s.YawRate, -cfg.Integrator.MaxYawRate-1e-9)
	}
	assert.True(t, skidded)
	assert.Zero(t, tel.ViolationCount())
}

func TestDriveOffEdgePreset(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, DriveOffEdge(), dt)

	respawns := tel.EventsOf(event.EventRespawn)
	require.Len(t, respawns, 1)
	at := respawns[0].Tick

	sawAirborne := false
	for _, s := range tel.Samples {
		if s.Tick >= at {
			break
		}
		if s.Regime == vehicle.ContactNone {
			sawAirborne = true
			assert.Less(t, s.Pitch, 0.0, "nose drops while airborne forward")
		}
	}
	assert.True(t, sawAirborne)

	for tick := range tel.Violations {
		assert.Less(t, tick, at, "no violations after respawn")
	}
	assert.Equal(t, 1, tel.Final.Respawns)
	assert.Equal(t, vehicle.ContactFull, tel.Final.Regime)
}

func TestCoastPresetComesToRest(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, Coast(20), dt)

	assert.Equal(t, 0.0, tel.Final.Speed())
	assert.Equal(t, drivetrain.First, tel.Final.Drivetrain.Gear)
	assert.InDelta(t, cfg.Drivetrain.IdleRPM, tel.Final.Drivetrain.RPM, 1)
	assert.Zero(t, tel.ViolationCount())
}

func TestWallHitPreset(t *testing.T) {
	cfg := config.Default()
	tel := Run(cfg, WallHit(), dt)

	hits := tel.EventsOf(event.EventCollision)
	require.NotEmpty(t, hits)
	p := hits[0].Payload.(event.CollisionPayload)
	assert.Equal(t, "wall", p.Target)
	assert.Greater(t, p.ImpactSpeed, cfg.Collision.MinImpactSpeed)
	assert.Equal(t, len(hits), tel.Final.Collisions)
}

func TestRunDeterministic(t *testing.T) {
	cfg := config.Default()
	a := Run(cfg, WallHit(), dt)
	b := Run(cfg, WallHit(), dt)

	assert.Equal(t, a.Final, b.Final)
	assert.Equal(t, a.Events, b.Events)
}

func TestByName(t *testing.T) {
	for _, sc := range All() {
		got, err := ByName(sc.Name)
		require.NoError(t, err, sc.Name)
		assert.Equal(t, sc.Name, got.Name)
	}

	_, err := ByName("barrel-roll")
	assert.ErrorIs(t, err, ErrUnknown)
}
