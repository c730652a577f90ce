package sim

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-drive/config"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/logging"
	"github.com/lixenwraith/vi-drive/status"
	"github.com/lixenwraith/vi-drive/vehicle"
)

// Simulator hosts one vehicle for a real-time loop
// Tick is called from the host loop only; Snapshot, Queue and Registry are safe from any goroutine
type Simulator struct {
	// ===== Mutex-Protected =====
	mu    sync.RWMutex
	cfg   *config.Config
	env   Env
	state vehicle.State
	snap  Snapshot

	// ===== Immutable After New =====
	queue    *event.Queue
	registry *status.Registry
	log      zerolog.Logger
	warn     zerolog.Logger

	// Cached metric pointers
	tick       *atomic.Int64
	collisions *atomic.Int64
	respawns   *atomic.Int64
	violations *atomic.Int64
	dropped    *status.AtomicFloat
	speed      *status.AtomicFloat
	topSpeed   *status.AtomicFloat
	rpm        *status.AtomicFloat
	clutch     *status.AtomicFloat
	skidding   *atomic.Bool
	limiter    *atomic.Bool
	gear       *status.AtomicString
	contact    *status.AtomicString
}

// Option configures a Simulator
type Option func(*Simulator)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

func WithRegistry(r *status.Registry) Option {
	return func(s *Simulator) { s.registry = r }
}

// WithQueue shares an existing event queue, e.g. one a router already drains
func WithQueue(q *event.Queue) Option {
	return func(s *Simulator) { s.queue = q }
}

// New validates cfg and places a vehicle at the environment's spawn
func New(cfg *config.Config, env Env, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulator config: %w", err)
	}

	s := &Simulator{
		cfg: cfg,
		env: env,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.queue == nil {
		s.queue = event.NewQueue()
	}
	if s.registry == nil {
		s.registry = status.NewRegistry()
	}
	s.warn = logging.Sampled(s.log, 10, time.Second)

	r := s.registry
	s.tick = r.Ints.Get(status.KeyTick)
	s.collisions = r.Ints.Get(status.KeyCollisions)
	s.respawns = r.Ints.Get(status.KeyRespawns)
	s.violations = r.Ints.Get(status.KeyViolations)
	s.dropped = r.Floats.Get(status.KeyDropped)
	s.speed = r.Floats.Get(status.KeySpeed)
	s.topSpeed = r.Floats.Get(status.KeyTopSpeed)
	s.rpm = r.Floats.Get(status.KeyRPM)
	s.clutch = r.Floats.Get(status.KeyClutch)
	s.skidding = r.Bools.Get(status.KeySkidding)
	s.limiter = r.Bools.Get(status.KeyLimiter)
	s.gear = r.Strings.Get(status.KeyGear)
	s.contact = r.Strings.Get(status.KeyContact)

	s.state = vehicle.New(cfg, env.Spawn())
	s.snap = TakeSnapshot(cfg, &s.state)
	s.publish()

	s.log.Info().
		Float64("fixed_step", cfg.Step.FixedStep).
		Float64("max_step", cfg.Step.MaxStep).
		Uint64("seed", cfg.Step.Seed).
		Msg("simulator ready")
	return s, nil
}

// Tick advances one step with dt clamped to the configured maximum
// Events go to the queue; broken invariants are logged and counted, never fatal
func (s *Simulator) Tick(in Input, dt float64) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dt > s.cfg.Step.MaxStep {
		s.dropped.Set(s.dropped.Get() + dt - s.cfg.Step.MaxStep)
		dt = s.cfg.Step.MaxStep
	}

	next, evs := Step(s.cfg, s.env, s.state, in, dt)
	s.state = next
	s.snap = TakeSnapshot(s.cfg, &s.state)

	s.queue.PushAll(evs)
	s.logEvents(evs)

	if vs := Validate(s.cfg, &s.state); len(vs) > 0 {
		s.violations.Add(int64(len(vs)))
		for _, v := range vs {
			s.warn.Warn().
				Uint64("tick", s.state.Tick).
				Str("check", v.Check).
				Str("wheel", v.Where()).
				Float64("value", v.Value).
				Msg("invariant violated")
		}
	}

	s.publish()
	return s.snap
}

func (s *Simulator) logEvents(evs []event.Event) {
	for _, ev := range evs {
		switch p := ev.Payload.(type) {
		case event.GearChangePayload:
			s.log.Debug().Uint64("tick", ev.Tick).
				Stringer("from", p.From).Stringer("to", p.To).Float64("rpm", p.RPM).
				Msg("gear change")
		case event.RespawnPayload:
			s.log.Info().Uint64("tick", ev.Tick).
				Float64("x", p.FallPosition.X()).Float64("y", p.FallPosition.Y()).Float64("z", p.FallPosition.Z()).
				Int("count", p.Count).
				Msg("respawn")
		case event.CollisionPayload:
			s.log.Debug().Uint64("tick", ev.Tick).
				Str("target", p.Target).Float64("impact", p.ImpactSpeed).
				Msg("collision")
		case event.ContactPayload:
			s.log.Debug().Uint64("tick", ev.Tick).
				Stringer("from", p.From).Stringer("to", p.To).
				Msg("contact regime")
		}
	}
}

func (s *Simulator) publish() {
	st := &s.snap
	s.tick.Store(int64(st.Tick))
	s.collisions.Store(int64(st.Collisions))
	s.respawns.Store(int64(st.Respawns))
	s.speed.Set(st.Speed)
	s.topSpeed.Max(st.Speed)
	s.rpm.Set(st.RPM)
	s.clutch.Set(st.Clutch)
	s.skidding.Store(st.AnySkid())
	s.limiter.Store(st.Limiter)
	s.gear.Store(st.Gear.String())
	s.contact.Store(st.Regime.String())
}

// Snapshot returns the state as of the last completed tick
func (s *Simulator) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// State returns a copy of the full vehicle state
func (s *Simulator) State() vehicle.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Simulator) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetConfig swaps the configuration between ticks; an invalid config is rejected and the old one kept
func (s *Simulator) SetConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	s.mu.Lock()
	s.cfg = cfg
	s.state.Retune(cfg)
	s.snap = TakeSnapshot(cfg, &s.state)
	s.mu.Unlock()
	s.log.Info().Msg("config swapped")
	return nil
}

// Reset returns the vehicle to the spawn at rest; counters survive
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reset(s.cfg, s.env.Spawn())
	s.snap = TakeSnapshot(s.cfg, &s.state)
	s.publish()
	s.log.Info().Uint64("tick", s.state.Tick).Msg("reset")
}

// Queue is the event stream consumers drain
func (s *Simulator) Queue() *event.Queue {
	return s.queue
}

func (s *Simulator) Registry() *status.Registry {
	return s.registry
}
