package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-drive/parameter"
	"github.com/lixenwraith/vi-drive/sim"
)

type control int

const (
	ctrlThrottle control = iota
	ctrlBrake
	ctrlLeft
	ctrlRight
	ctrlHandbrake
	controlCount
)

// controlFor maps driving keys; arrows and wasd are interchangeable
func controlFor(ev *tcell.EventKey) (control, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ctrlThrottle, true
	case tcell.KeyDown:
		return ctrlBrake, true
	case tcell.KeyLeft:
		return ctrlLeft, true
	case tcell.KeyRight:
		return ctrlRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ctrlThrottle, true
		case 's', 'S':
			return ctrlBrake, true
		case 'a', 'A':
			return ctrlLeft, true
		case 'd', 'D':
			return ctrlRight, true
		case ' ':
			return ctrlHandbrake, true
		}
	}
	return 0, false
}

// keyState infers held keys from terminal auto-repeat
// A fresh press holds for the initial repeat delay, each repeat extends by the repeat interval
type keyState struct {
	first [controlCount]time.Time
	last  [controlCount]time.Time
}

func (k *keyState) press(c control, now time.Time) {
	if k.last[c].IsZero() || now.Sub(k.last[c]) > parameter.KeyFirstRepeat {
		k.first[c] = now
	}
	k.last[c] = now
}

func (k *keyState) held(c control, now time.Time) bool {
	last := k.last[c]
	if last.IsZero() {
		return false
	}
	window := parameter.KeyHoldTimeout
	if last.Equal(k.first[c]) {
		window = parameter.KeyFirstRepeat
	}
	return now.Sub(last) <= window
}

func (k *keyState) reset() {
	*k = keyState{}
}

// input builds the tick's controls from the keys held at now
func (k *keyState) input(now time.Time) sim.Input {
	var in sim.Input
	if k.held(ctrlThrottle, now) {
		in.Throttle = 1
	}
	in.Brake = k.held(ctrlBrake, now)
	in.Handbrake = k.held(ctrlHandbrake, now)
	if k.held(ctrlLeft, now) {
		in.Steer--
	}
	if k.held(ctrlRight, now) {
		in.Steer++
	}
	return in
}
