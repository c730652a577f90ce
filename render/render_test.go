package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/status"
	"github.com/lixenwraith/vi-drive/world"
)

const (
	testW = 80
	testH = 24
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(testW, testH)
	t.Cleanup(s.Fini)
	return s
}

func cellAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func row(s tcell.SimulationScreen, y int) string {
	var b strings.Builder
	for x := 0; x < testW; x++ {
		b.WriteRune(cellAt(s, x, y))
	}
	return b.String()
}

func rest() *sim.Snapshot {
	return &sim.Snapshot{Gear: drivetrain.First, RPM: 900}
}

func TestDrawCarAndHeading(t *testing.T) {
	scr := newScreen(t)
	v := NewView(scr, nil, config.Default())
	v.Draw(rest(), nil)

	field := testH - hudRows
	assert.Equal(t, glyphCar, cellAt(scr, testW/2, field/2))
	assert.Equal(t, '↑', cellAt(scr, testW/2, field/2-2))
	assert.Equal(t, ' ', cellAt(scr, 0, 0))
}

func TestDrawWorldBoxes(t *testing.T) {
	scr := newScreen(t)
	w := &world.World{Boxes: []world.Box{
		world.Wall("north", -20, 4.5, 20, 6.5),
		{Name: "post", Center: mgl64.Vec2{-10, -5}, HalfExtents: mgl64.Vec2{1, 1}, Kind: world.KindGate},
	}}
	v := NewView(scr, w, config.Default())
	v.Draw(rest(), nil)

	// z = 11 - row, x = (col - 40) / 2 at the default scale
	assert.Equal(t, glyphWall, cellAt(scr, 10, 5))
	assert.Equal(t, glyphWall, cellAt(scr, 70, 6))
	assert.Equal(t, ' ', cellAt(scr, 10, 3))
	assert.Equal(t, glyphGate, cellAt(scr, 20, 16))
}

func TestHUDLine(t *testing.T) {
	s := rest()
	s.Speed = 10
	s.RPM = 4200
	s.Gear = drivetrain.First + 2
	line := HUDLine(s)
	assert.Contains(t, line, "36.0 km/h")
	assert.Contains(t, line, "gear 3")
	assert.Contains(t, line, "4200 rpm")
	assert.Contains(t, line, "full")
	assert.NotContains(t, line, "SKID")

	s.Wheels[0].Skidding = true
	s.Limiter = true
	assert.Contains(t, HUDLine(s), "SKID")
	assert.Contains(t, HUDLine(s), "LIMIT")

	s.Gear = drivetrain.Reverse
	assert.Contains(t, HUDLine(s), "gear R")
}

func TestDrawHUD(t *testing.T) {
	scr := newScreen(t)
	v := NewView(scr, nil, config.Default())
	s := rest()
	s.RPM = 7000
	v.Draw(s, nil)

	hud := row(scr, testH-hudRows)
	assert.Contains(t, hud, "km/h")
	assert.Contains(t, hud, strings.Repeat(string(rpmFill), parameter.RPMBarWidth))
	assert.Contains(t, row(scr, testH-1), "respawns 0")
}

func TestSkidMarksFollowEvents(t *testing.T) {
	scr := newScreen(t)
	v := NewView(scr, nil, config.Default())

	v.HandleEvent(nil, event.Event{Type: event.EventSkidStart, Payload: event.SkidPayload{Position: mgl64.Vec3{0, 0, -6}}})
	assert.Equal(t, 1, v.Marks())
	v.Draw(rest(), nil)
	assert.Equal(t, glyphMark, cellAt(scr, testW/2, (testH-hudRows)/2+6))

	// Skidding wheels on the ground lay marks every frame
	s := rest()
	s.Wheels[2].Skidding = true
	s.Wheels[2].OnGround = true
	s.Wheels[3].Skidding = true
	v.Draw(s, nil)
	assert.Equal(t, 2, v.Marks())

	v.HandleEvent(nil, event.Event{Type: event.EventRespawn, Payload: event.RespawnPayload{Count: 1}})
	assert.Equal(t, 0, v.Marks())
}

func TestSkidMarkRingIsBounded(t *testing.T) {
	v := NewView(newScreen(t), nil, config.Default())
	for i := 0; i < parameter.SkidMarkCapacity+10; i++ {
		v.mark(mgl64.Vec2{float64(i), 0})
	}
	assert.Equal(t, parameter.SkidMarkCapacity, v.Marks())
	assert.Equal(t, float64(parameter.SkidMarkCapacity), v.marks[0].X(), "oldest overwritten first")
}

func TestImpactFlash(t *testing.T) {
	scr := newScreen(t)
	v := NewView(scr, nil, config.Default())
	v.HandleEvent(nil, event.Event{Type: event.EventCollision, Payload: event.CollisionPayload{ImpactSpeed: 4}})
	v.Draw(rest(), nil)
	assert.Contains(t, row(scr, testH-hudRows), "IMPACT")

	for range parameter.ImpactFlashFrames {
		v.Draw(rest(), nil)
	}
	assert.NotContains(t, row(scr, testH-hudRows), "IMPACT")
}

func TestMetricsOverlay(t *testing.T) {
	scr := newScreen(t)
	v := NewView(scr, nil, config.Default())
	reg := status.NewRegistry()
	reg.Floats.Get(status.KeySpeed).Set(12.5)
	reg.Strings.Get(status.KeyGear).Store("2")

	v.Draw(rest(), reg)
	assert.NotContains(t, row(scr, 0), status.KeyGear)

	v.ToggleOverlay()
	v.Draw(rest(), reg)
	assert.Contains(t, row(scr, 0), status.KeyGear+" 2")
	assert.Contains(t, row(scr, 1), status.KeySpeed+" 12.50")
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		yaw  float64
		want rune
	}{
		{0, '↑'},
		{0.1, '↑'},
		{1.5708, '→'},
		{-0.7854, '↖'},
		{3.1416, '↓'},
		{-3.1416, '↓'},
		{2.3562, '↘'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.yaw); got != tt.want {
			t.Errorf("headingGlyph(%v) = %q, want %q", tt.yaw, got, tt.want)
		}
	}
}

func TestZoomClamps(t *testing.T) {
	v := NewView(newScreen(t), nil, config.Default())
	for range 20 {
		v.Zoom(2)
	}
	assert.Equal(t, parameter.ViewMaxScale, v.scale)
	for range 40 {
		v.Zoom(0.5)
	}
	assert.Equal(t, parameter.ViewMinScale, v.scale)
}
