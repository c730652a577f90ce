package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/status"
	"github.com/lixenwraith/vi-drive/vmath"
)

const hudRows = 2

const (
	glyphCar  = '▓'
	glyphWall = '█'
	glyphGate = '▒'
	glyphMark = '·'
	rpmFill   = '■'
	rpmEmpty  = '□'
)

var (
	styleCar    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleImpact = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleNose   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGate   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleMark   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 90))
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleRPM    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
	styleRedRPM = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// drawText writes s from (x, y), clipped to the screen width
func (v *View) drawText(x, y int, style tcell.Style, s string) int {
	w, _ := v.screen.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// HUDLine formats the primary readout
func HUDLine(s *sim.Snapshot) string {
	line := fmt.Sprintf(" %5.1f km/h  gear %-2s  %4.0f rpm  %-8s",
		s.Speed*3.6, s.Gear, s.RPM, s.Regime)
	if s.Shifting {
		line += " shift"
	}
	if s.AnySkid() {
		line += " SKID"
	}
	if s.Limiter {
		line += " LIMIT"
	}
	return line
}

func (v *View) drawHUD(s *sim.Snapshot, w, h int) {
	top := h - hudRows
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, top, ' ', nil, styleHUD)
	}

	x := v.drawText(0, top, styleHUD, HUDLine(s))
	x = v.drawText(x, top, styleHUD, "  ")

	frac := vmath.Clamp01(s.RPM / v.redline)
	filled := int(frac * parameter.RPMBarWidth)
	style := styleRPM
	if frac >= parameter.RPMBarRedFrac {
		style = styleRedRPM
	}
	bar := strings.Repeat(string(rpmFill), filled) + strings.Repeat(string(rpmEmpty), parameter.RPMBarWidth-filled)
	v.drawText(x, top, style, bar)

	if v.flash > 0 {
		v.drawText(w-len(" IMPACT "), top, styleWarn, " IMPACT ")
	}

	v.drawText(0, top+1, styleStatus, fmt.Sprintf(" t %.1fs  hits %d  respawns %d  clutch %.2f  pos %.1f,%.1f",
		s.Time, s.Collisions, s.Respawns, s.Clutch, s.Position.X(), s.Position.Z()))
}

// drawOverlay lists every registry metric down the right edge
func (v *View) drawOverlay(reg *status.Registry, w int) {
	lines := reg.Lines()
	width := 0
	for _, l := range lines {
		width = max(width, len(l.Key)+len(l.Value)+3)
	}
	x := max(w-width, 0)
	for i, l := range lines {
		v.drawText(x, i, styleHUD, fmt.Sprintf(" %s %s ", l.Key, l.Value)+strings.Repeat(" ", width-len(l.Key)-len(l.Value)-3))
	}
}
