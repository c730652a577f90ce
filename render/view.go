// Package render draws a top-down character view of the vehicle and its world with tcell
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/status"
	"github.com/lixenwraith/vi-drive/vmath"
	"github.com/lixenwraith/vi-drive/world"
)

// View renders snapshots onto a tcell screen with the camera following the car
// Terminal cells are about twice as tall as wide, so one row spans two columns of ground
type View struct {
	screen  tcell.Screen
	world   *world.World
	vehicle config.VehicleConfig
	redline float64

	scale   float64 // columns per metre
	overlay bool

	marks []mgl64.Vec2 // skid marks, ring of parameter.SkidMarkCapacity
	next  int
	flash int // frames left of impact highlight
}

func NewView(screen tcell.Screen, w *world.World, cfg *config.Config) *View {
	if w == nil {
		w = world.Empty()
	}
	return &View{
		screen:  screen,
		world:   w,
		vehicle: cfg.Vehicle,
		redline: cfg.Drivetrain.RedlineRPM,
		scale:   parameter.ViewScale,
		marks:   make([]mgl64.Vec2, 0, parameter.SkidMarkCapacity),
	}
}

// Zoom multiplies the scale, bounded to a usable range
func (v *View) Zoom(factor float64) {
	v.scale = vmath.Clamp(v.scale*factor, parameter.ViewMinScale, parameter.ViewMaxScale)
}

func (v *View) ToggleOverlay() {
	v.overlay = !v.overlay
}

// EventTypes implements event.Handler
func (v *View) EventTypes() []event.EventType {
	return []event.EventType{event.EventCollision, event.EventSkidStart, event.EventRespawn}
}

// HandleEvent implements event.Handler
func (v *View) HandleEvent(_ *sim.Snapshot, ev event.Event) {
	switch p := ev.Payload.(type) {
	case event.CollisionPayload:
		v.flash = parameter.ImpactFlashFrames
	case event.SkidPayload:
		v.mark(vmath.Planar(p.Position))
	case event.RespawnPayload:
		v.marks = v.marks[:0]
		v.next = 0
	}
}

func (v *View) mark(p mgl64.Vec2) {
	if len(v.marks) < cap(v.marks) {
		v.marks = append(v.marks, p)
		return
	}
	v.marks[v.next] = p
	v.next = (v.next + 1) % len(v.marks)
}

// Marks returns the number of skid marks held
func (v *View) Marks() int {
	return len(v.marks)
}

// toScreen maps a ground point to a cell for a camera centred on cam
func (v *View) toScreen(cam, p mgl64.Vec2, w, h int) (int, int) {
	d := p.Sub(cam)
	x := w/2 + int(math.Round(d.X()*v.scale))
	y := h/2 - int(math.Round(d.Y()*v.scale/2))
	return x, y
}

// toWorld maps a cell centre back to the ground
func (v *View) toWorld(cam mgl64.Vec2, x, y, w, h int) mgl64.Vec2 {
	return mgl64.Vec2{
		cam.X() + float64(x-w/2)/v.scale,
		cam.Y() - float64(y-h/2)*2/v.scale,
	}
}

// Draw renders one frame; reg feeds the overlay and may be nil
func (v *View) Draw(s *sim.Snapshot, reg *status.Registry) {
	v.screen.Clear()
	w, h := v.screen.Size()
	if w <= 0 || h <= hudRows {
		v.screen.Show()
		return
	}
	field := h - hudRows
	cam := vmath.Planar(s.Position)

	for _, wh := range s.Wheels {
		if wh.Skidding && wh.OnGround {
			v.mark(vmath.Planar(wh.WorldPosition))
		}
	}

	car := world.Box{
		Center:      cam,
		HalfExtents: mgl64.Vec2{v.vehicle.BodyWidth / 2, v.vehicle.BodyLength / 2},
		Yaw:         s.Yaw,
	}
	carStyle := styleCar
	if v.flash > 0 {
		carStyle = styleImpact
		v.flash--
	}

	for y := 0; y < field; y++ {
		for x := 0; x < w; x++ {
			p := v.toWorld(cam, x, y, w, field)
			switch {
			case car.Contains(p):
				v.screen.SetContent(x, y, glyphCar, nil, carStyle)
			default:
				if b, ok := v.boxAt(p); ok {
					v.screen.SetContent(x, y, glyphFor(b.Kind), nil, styleFor(b.Kind))
				}
			}
		}
	}

	for _, m := range v.marks {
		x, y := v.toScreen(cam, m, w, field)
		if x < 0 || x >= w || y < 0 || y >= field || car.Contains(m) {
			continue
		}
		v.screen.SetContent(x, y, glyphMark, nil, styleMark)
	}

	nose := cam.Add(vmath.Forward(s.Yaw).Mul(v.vehicle.BodyLength / 2))
	if x, y := v.toScreen(cam, nose, w, field); x >= 0 && x < w && y >= 0 && y < field {
		v.screen.SetContent(x, y, headingGlyph(s.Yaw), nil, styleNose)
	}

	v.drawHUD(s, w, h)
	if v.overlay && reg != nil {
		v.drawOverlay(reg, w)
	}
	v.screen.Show()
}

func (v *View) boxAt(p mgl64.Vec2) (world.Box, bool) {
	for _, b := range v.world.Boxes {
		if b.Contains(p) {
			return b, true
		}
	}
	return world.Box{}, false
}

// headingGlyph picks one of eight arrows for yaw; 0 faces up the screen
func headingGlyph(yaw float64) rune {
	arrows := [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}
	octant := int(math.Round(vmath.WrapAngle(yaw)/(math.Pi/4))) & 7
	return arrows[octant]
}

func glyphFor(k world.Kind) rune {
	if k == world.KindGate {
		return glyphGate
	}
	return glyphWall
}

func styleFor(k world.Kind) tcell.Style {
	if k == world.KindGate {
		return styleGate
	}
	return styleWall
}
