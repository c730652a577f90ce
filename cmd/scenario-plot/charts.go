package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/lixenwraith/vi-drive/scenario"
	"github.com/lixenwraith/vi-drive/vehicle"
)

// chart is one PNG: a shared time axis with one or more columns
type chart struct {
	file   string
	title  string
	ylabel string
	series []column
}

type column struct {
	name string
	get  func(scenario.Sample) float64
}

var charts = []chart{
	{"speed.png", "Speed", "m/s", []column{
		{"speed", func(s scenario.Sample) float64 { return s.Speed }},
		{"forward", func(s scenario.Sample) float64 { return s.ForwardSpeed }},
	}},
	{"engine.png", "Engine", "rpm", []column{
		{"rpm", func(s scenario.Sample) float64 { return s.RPM }},
	}},
	{"gear.png", "Gear and clutch", "", []column{
		{"gear", func(s scenario.Sample) float64 { return float64(s.Gear) }},
		{"clutch", func(s scenario.Sample) float64 { return s.Clutch }},
	}},
	{"yaw.png", "Yaw rate", "rad/s", []column{
		{"yaw rate", func(s scenario.Sample) float64 { return s.YawRate }},
	}},
	{"slip.png", "Slip ratio", "", wheelColumns(func(s scenario.Sample, id vehicle.WheelID) float64 { return s.SlipRatio[id] })},
	{"slip_angle.png", "Slip angle", "rad", wheelColumns(func(s scenario.Sample, id vehicle.WheelID) float64 { return s.SlipAngle[id] })},
	{"vertical.png", "Height and pitch", "m / rad", []column{
		{"height", func(s scenario.Sample) float64 { return s.Height }},
		{"pitch", func(s scenario.Sample) float64 { return s.Pitch }},
	}},
	{"load.png", "Normal force sum", "N", []column{
		{"normal sum", func(s scenario.Sample) float64 { return s.NormalSum }},
	}},
}

func wheelColumns(get func(scenario.Sample, vehicle.WheelID) float64) []column {
	cols := make([]column, 0, len(vehicle.All))
	for _, id := range vehicle.All {
		cols = append(cols, column{id.String(), func(s scenario.Sample) float64 { return get(s, id) }})
	}
	return cols
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.Text = "time (s)"
	p.X.Padding = vg.Points(8)
	p.Y.Padding = vg.Points(8)
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
}

// writeChart renders c for tel into dir
func writeChart(dir string, tel *scenario.Telemetry, c chart) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", tel.Name, c.title)
	p.Y.Label.Text = c.ylabel
	stylePlot(p)

	for i, col := range c.series {
		times, values := tel.Series(col.get)
		pts := make(plotter.XYs, len(times))
		for j := range times {
			pts[j].X = times[j]
			pts[j].Y = finite(values[j])
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("%s %s: %w", c.file, col.name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = palette[i%len(palette)]
		p.Add(line)
		p.Legend.Add(col.name, line)
	}

	path := filepath.Join(dir, c.file)
	return path, savePNG(p, path)
}

func savePNG(p *plot.Plot, filename string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 4*vg.Inch),
		vgimg.UseDPI(120),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return bw.Flush()
}

// writeCSV dumps every sample row for offline analysis
func writeCSV(path string, tel *scenario.Telemetry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"tick", "time", "speed", "forward", "rpm", "gear", "clutch", "yaw_rate", "height", "pitch", "normal_sum", "regime", "skidding"}
	for _, id := range vehicle.All {
		header = append(header, "slip_"+id.String(), "alpha_"+id.String())
	}
	if err := w.Write(header); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
	for _, s := range tel.Samples {
		row := []string{
			strconv.FormatUint(s.Tick, 10), ff(s.Time), ff(s.Speed), ff(s.ForwardSpeed), ff(s.RPM),
			s.Gear.String(), ff(s.Clutch), ff(s.YawRate), ff(s.Height), ff(s.Pitch), ff(s.NormalSum),
			s.Regime.String(), strconv.FormatBool(s.Skidding),
		}
		for _, id := range vehicle.All {
			row = append(row, ff(s.SlipRatio[id]), ff(s.SlipAngle[id]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
