package terrain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/vehicle"
)

func TestSurfaceTable(t *testing.T) {
	assert.Equal(t, "asphalt", Asphalt.String())
	assert.Less(t, Ice.Props().Friction, Gravel.Props().Friction)
	assert.Greater(t, Grass.Props().RollingResistance, Asphalt.Props().RollingResistance)
	assert.Equal(t, Void.Props(), SurfaceType(42).Props())
}

func TestProviders(t *testing.T) {
	flat := Flat{Height: 2, Surface: Concrete}
	s := flat.Query(1e6, -1e6)
	assert.True(t, s.Supported)
	assert.Equal(t, 2.0, s.GroundHeight)
	assert.Equal(t, Concrete.Props().Friction, s.Friction)

	box := Bounded{Min: mgl64.Vec2{-10, -10}, Max: mgl64.Vec2{10, 10}, Surface: Asphalt}
	assert.True(t, box.Query(0, 9).Supported)
	assert.False(t, box.Query(0, 11).Supported)
	assert.Equal(t, Void, box.Query(11, 0).Surface)

	edge := Edge{Origin: mgl64.Vec2{0, 20}, Normal: mgl64.Vec2{0, 1}, Surface: Asphalt}
	assert.True(t, edge.Query(100, 19.9).Supported)
	assert.False(t, edge.Query(-100, 20.1).Supported)

	patchy := Patchwork{
		Base: box,
		Patches: []Patch{
			{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{5, 5}, Surface: Grass},
			{Min: mgl64.Vec2{2, 2}, Max: mgl64.Vec2{3, 3}, Surface: Ice},
		},
	}
	assert.Equal(t, Grass, patchy.Query(1, 1).Surface)
	assert.Equal(t, Ice, patchy.Query(2.5, 2.5).Surface)
	assert.Equal(t, Asphalt, patchy.Query(-1, -1).Surface)
	assert.False(t, patchy.Query(50, 0).Supported)

	fn := ProviderFunc(func(x, z float64) Sample { return Sample{GroundHeight: x + z, Supported: true} })
	assert.Equal(t, 3.0, fn.Query(1, 2).GroundHeight)
}

func TestResolveRegimes(t *testing.T) {
	cfg := config.Default()

	st := vehicle.New(cfg, vehicle.Pose{})
	assert.Equal(t, vehicle.ContactFull, Resolve(cfg, &st, Flat{Surface: Gravel}))
	for _, id := range vehicle.All {
		c := st.Wheels[id].Contact
		assert.True(t, c.OnGround)
		assert.Equal(t, "gravel", c.Surface)
		assert.Equal(t, Gravel.Props().SlipMultiplier, c.SlipMultiplier)
	}

	// front axle past the edge
	edge := Edge{Origin: mgl64.Vec2{0, 1}, Normal: mgl64.Vec2{0, 1}}
	assert.Equal(t, vehicle.ContactPartial, Resolve(cfg, &st, edge))
	assert.False(t, st.Wheels[vehicle.FrontLeft].Contact.OnGround)
	assert.True(t, st.Wheels[vehicle.RearRight].Contact.OnGround)

	// everything past the edge
	edge.Origin = mgl64.Vec2{0, -5}
	assert.Equal(t, vehicle.ContactNone, Resolve(cfg, &st, edge))
}

func TestResolveHeightGap(t *testing.T) {
	cfg := config.Default()
	st := vehicle.New(cfg, vehicle.Pose{})

	st.Body.Position[1] += 1.0 // lifted well above the ground
	assert.Equal(t, vehicle.ContactNone, Resolve(cfg, &st, Flat{}))

	st.Body.Position[1] -= 1.0 + cfg.Contact.Tolerance/2
	assert.Equal(t, vehicle.ContactFull, Resolve(cfg, &st, Flat{}))

	st.Body.Position[1] = -10 // far beneath a supported surface is not contact
	assert.Equal(t, vehicle.ContactNone, Resolve(cfg, &st, Flat{}))
}

func TestResolveSanitizesSamples(t *testing.T) {
	cfg := config.Default()
	st := vehicle.New(cfg, vehicle.Pose{})
	nan := math.NaN()
	bad := ProviderFunc(func(x, z float64) Sample {
		return Sample{GroundHeight: nan, Friction: -3, Supported: true}
	})
	regime := Resolve(cfg, &st, bad)
	require.Equal(t, vehicle.ContactFull, regime, "prior ground height is kept")
	for _, id := range vehicle.All {
		assert.Equal(t, 0.0, st.Wheels[id].Contact.Friction)
	}
}

func TestGravityScale(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 0.0, GravityScale(cfg, vehicle.ContactFull))
	assert.Equal(t, 0.5, GravityScale(cfg, vehicle.ContactPartial))
	assert.Equal(t, 1.0, GravityScale(cfg, vehicle.ContactNone))
}
