// Package audio voices the vehicle from snapshots and routed simulation events
package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-drive/drivetrain"
	"github.com/lixenwraith/vi-drive/event"
	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/sim"
	"github.com/lixenwraith/vi-drive/vehicle"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Player owns the mix: a continuous engine voice, a squeal loop and one-shot tones
// Without an audio device it stays silent and every call is a no-op apart from voice updates
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	master *effects.Volume
	engine *EngineVoice
	squeal *Squeal
	skids  [vehicle.WheelCount]bool
	thumps uint64 // seeds successive thumps

	active bool // mixer is being drained
	device bool // mixer is attached to the speaker
	log    zerolog.Logger
}

func NewPlayer(log zerolog.Logger) *Player {
	p := &Player{
		mixer:  &beep.Mixer{},
		engine: NewEngineVoice(sampleRate),
		squeal: NewSqueal(sampleRate),
		log:    log,
	}
	p.master = &effects.Volume{Streamer: p.mixer, Base: 2, Volume: parameter.MasterVolume}
	return p
}

// Initialize opens the speaker; on failure the player stays silent and the error is returned for logging
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	p.attach()
	p.device = true
	speaker.Play(p.master)
	p.log.Info().Int("sample_rate", int(sampleRate)).Msg("audio ready")
	return nil
}

// attach seeds the mixer with the permanent voices
func (p *Player) attach() {
	p.mixer.Add(p.engine, p.squeal)
	p.active = true
}

// Cleanup silences everything; safe without Initialize
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	p.withMixer(p.mixer.Clear)
	if p.device {
		speaker.Close()
	}
	p.squeal.SetWheels(0)
	p.skids = [vehicle.WheelCount]bool{}
	p.active = false
	p.device = false
}

// Active reports whether sound is being produced
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// SetMuted toggles the master output
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withMixer(func() { p.master.Silent = muted })
}

// Update feeds the engine voice from the latest snapshot and pedal position
func (p *Player) Update(s *sim.Snapshot, throttle float64) {
	p.engine.Set(s.RPM, throttle, s.Limiter)
}

// EventTypes implements event.Handler
func (p *Player) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventCollision,
		event.EventSkidStart,
		event.EventSkidEnd,
		event.EventGearChange,
		event.EventRespawn,
	}
}

// HandleEvent implements event.Handler
func (p *Player) HandleEvent(_ *sim.Snapshot, ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}

	switch pl := ev.Payload.(type) {
	case event.CollisionPayload:
		p.thumps++
		thump := NewThump(sampleRate, pl.ImpactSpeed, ev.Tick^p.thumps)
		p.add(beep.Take(sampleRate.N(parameter.ThumpDuration), thump))

	case event.GearChangePayload:
		freq := parameter.ChirpUpshiftHz
		if pl.To < pl.From || pl.To == drivetrain.Reverse {
			freq = parameter.ChirpDownshiftHz
		}
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			p.log.Debug().Err(err).Float64("freq", freq).Msg("chirp")
			return
		}
		vol := &effects.Volume{Streamer: tone, Base: 2, Volume: parameter.ChirpVolume}
		p.add(beep.Take(sampleRate.N(parameter.ChirpDuration), vol))

	case event.SkidPayload:
		p.skids[pl.Wheel] = ev.Type == event.EventSkidStart
		p.squeal.SetWheels(p.skidCount())

	case event.RespawnPayload:
		p.skids = [vehicle.WheelCount]bool{}
		p.squeal.SetWheels(0)
	}
}

func (p *Player) skidCount() int {
	n := 0
	for _, s := range p.skids {
		if s {
			n++
		}
	}
	return n
}

func (p *Player) add(s beep.Streamer) {
	p.withMixer(func() { p.mixer.Add(s) })
}

// withMixer runs fn under the speaker lock when the speaker is draining the mixer
func (p *Player) withMixer(fn func()) {
	if p.device {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
