package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-drive/audio"
	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/render"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/terrain"
	"github.com/lixenwraith/vi-drive/world"
)

var (
	configPath = flag.String("config", "", "Config file (toml, yaml or json)")
	arenaHalf  = flag.Float64("arena", 40, "Walled arena half-size in metres, 0 for open ground with an edge")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/drive-sandbox.log")
	logLevel   = flag.String("log-level", "info", "Log level: trace|debug|info|warn|error")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
)

// Sandbox is the interactive host: terminal input in, simulator ticks, view and audio out
type Sandbox struct {
	screen tcell.Screen
	sim    *sim.Simulator
	router *event.Router[*sim.Snapshot]
	view   *render.View
	player *audio.Player
	keys   keyState
	log    zerolog.Logger

	paused bool
	muted  bool
}

// buildEnv lays out either a walled arena with surface patches or open ground that ends
func buildEnv(half float64) sim.Env {
	patches := []terrain.Patch{
		{Min: mgl64.Vec2{-30, 8}, Max: mgl64.Vec2{-10, 30}, Surface: terrain.Gravel},
		{Min: mgl64.Vec2{10, -30}, Max: mgl64.Vec2{30, -10}, Surface: terrain.Ice},
		{Min: mgl64.Vec2{10, 8}, Max: mgl64.Vec2{30, 30}, Surface: terrain.Grass},
	}
	if half <= 0 {
		ground := terrain.Bounded{
			Min:     mgl64.Vec2{-parameter.OpenGroundHalf, -parameter.OpenGroundHalf},
			Max:     mgl64.Vec2{parameter.OpenGroundHalf, parameter.OpenGroundHalf},
			Surface: terrain.Asphalt,
		}
		return sim.Env{Terrain: terrain.Patchwork{Base: ground, Patches: patches}}
	}
	return sim.Env{
		Terrain: terrain.Patchwork{Base: terrain.Flat{Surface: terrain.Asphalt}, Patches: patches},
		World:   world.Arena(half),
	}
}

func NewSandbox(cfg *config.Config, env sim.Env, log zerolog.Logger) (*Sandbox, error) {
	s, err := sim.New(cfg, env, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.HideCursor()

	sb := &Sandbox{
		screen: screen,
		sim:    s,
		router: event.NewRouter[*sim.Snapshot](s.Queue()),
		view:   render.NewView(screen, env.World, cfg),
		player: audio.NewPlayer(log),
		log:    log,
	}

	// Non-fatal, the sandbox runs without sound
	if err := sb.player.Initialize(); err != nil {
		log.Warn().Err(err).Msg("audio disabled")
	}
	sb.muted = *muteFlag
	sb.player.SetMuted(sb.muted)

	sb.router.Register(sb.view)
	sb.router.Register(sb.player)
	sb.router.Register(event.HandlerFunc[*sim.Snapshot]{
		Types: []event.EventType{event.EventRevLimiter},
		Fn: func(_ *sim.Snapshot, ev event.Event) {
			p := ev.Payload.(event.RevLimiterPayload)
			log.Debug().Uint64("tick", ev.Tick).Float64("rpm", p.RPM).Stringer("gear", p.Gear).Msg("rev limiter")
		},
	})
	return sb, nil
}

// handleInput returns false when the sandbox should exit
func (sb *Sandbox) handleInput(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if c, ok := controlFor(ev); ok {
			sb.keys.press(c, now)
			return true
		}
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			sb.sim.Reset()
			sb.keys.reset()
		case 'p':
			sb.paused = !sb.paused
		case 'o':
			sb.view.ToggleOverlay()
		case 'm':
			sb.muted = !sb.muted
			sb.player.SetMuted(sb.muted)
		case '+', '=':
			sb.view.Zoom(parameter.ViewZoomStep)
		case '-':
			sb.view.Zoom(1 / parameter.ViewZoomStep)
		}

	case *tcell.EventResize:
		sb.screen.Sync()
	}
	return true
}

func (sb *Sandbox) frame(now time.Time, dt float64) {
	in := sb.keys.input(now)
	snap := sb.sim.Snapshot()
	if !sb.paused {
		snap = sb.sim.Tick(in, dt)
	}
	sb.router.DispatchAll(&snap)
	sb.player.Update(&snap, in.Throttle)
	sb.view.Draw(&snap, sb.sim.Registry())
}

func (sb *Sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !sb.handleInput(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			sb.frame(now, now.Sub(last).Seconds())
			last = now
		}
	}
}

func (sb *Sandbox) cleanup() {
	sb.player.Cleanup()
	sb.screen.Fini()
}

func main() {
	flag.Parse()

	log, logFile, err := setupLogging(*debugFlag, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	sb, err := NewSandbox(cfg, buildEnv(*arenaHalf), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			sb.cleanup()
			log.Error().Interface("panic", r).Msg("crashed")
			fmt.Fprintf(os.Stderr, "drive-sandbox crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	sb.run()
	sb.cleanup()
	log.Info().Uint64("ticks", sb.sim.Snapshot().Tick).Msg("exit")
}
