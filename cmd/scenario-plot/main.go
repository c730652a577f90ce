// Command scenario-plot runs the scripted scenarios headless and charts their telemetry
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/logging"
	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/scenario"
)

var (
	configPath = flag.String("config", "", "Config file (toml, yaml or json)")
	name       = flag.String("scenario", "all", "Scenario name or 'all'")
	outDir     = flag.String("out", "plots", "Output directory, one subdirectory per scenario")
	dtFlag     = flag.Float64("dt", parameter.FixedStepSeconds, "Fixed step in seconds")
	csvFlag    = flag.Bool("csv", true, "Also write samples.csv")
	logLevel   = flag.String("log-level", "info", "Log level: trace|debug|info|warn|error")
	listFlag   = flag.Bool("list", false, "List scenario names and exit")
)

func main() {
	flag.Parse()
	log := logging.New(os.Stderr, *logLevel, true)

	if *listFlag {
		for _, sc := range scenario.All() {
			fmt.Printf("%-16s %5.1fs\n", sc.Name, sc.Duration)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	var runs []scenario.Scenario
	if *name == "all" {
		runs = scenario.All()
	} else {
		sc, err := scenario.ByName(*name)
		if err != nil {
			log.Fatal().Err(err).Str("scenario", *name).Msg("lookup")
		}
		runs = []scenario.Scenario{sc}
	}

	failed := 0
	for _, sc := range runs {
		tel := scenario.Run(cfg, sc, *dtFlag)
		summarize(log, &tel)
		if err := render(*outDir, &tel, *csvFlag); err != nil {
			log.Error().Err(err).Str("scenario", sc.Name).Msg("render")
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func summarize(log zerolog.Logger, tel *scenario.Telemetry) {
	lvl := zerolog.InfoLevel
	if tel.ViolationCount() > 0 {
		lvl = zerolog.WarnLevel
	}
	log.WithLevel(lvl).
		Str("scenario", tel.Name).
		Int("ticks", len(tel.Samples)).
		Float64("top_speed", tel.TopSpeed()).
		Int("shifts", len(tel.EventsOf(event.EventGearChange))).
		Int("collisions", len(tel.EventsOf(event.EventCollision))).
		Int("respawns", len(tel.EventsOf(event.EventRespawn))).
		Int("violations", tel.ViolationCount()).
		Msg("run")

	for tick, vs := range tel.Violations {
		for _, v := range vs {
			log.Debug().Uint64("tick", tick).Str("check", v.Check).Str("where", v.Where()).Float64("value", v.Value).Msg("violation")
		}
	}
}

// render writes every chart, and optionally the csv, under dir/<scenario>
func render(dir string, tel *scenario.Telemetry, withCSV bool) error {
	sub := filepath.Join(dir, tel.Name)
	if err := os.MkdirAll(sub, 0755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	for _, c := range charts {
		if _, err := writeChart(sub, tel, c); err != nil {
			return err
		}
	}
	if withCSV {
		if err := writeCSV(filepath.Join(sub, "samples.csv"), tel); err != nil {
			return fmt.Errorf("samples.csv: %w", err)
		}
	}
	return nil
}
