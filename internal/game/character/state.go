// Package character implements the weapon-handling action state machine of
// one player character: held inputs, latched actions cleared only by
// animation completion, the guards between them, fire-rate gating, and the
// holster/unholster sequence used to switch weapons.
//
// A Character is single-threaded. Every method must be called from the one
// goroutine that drives Tick.
package character

import (
	"fmt"
	"time"
)

// Intent names a held input.
type Intent int

const (
	IntentFire Intent = iota
	IntentAim
	IntentRun
	IntentJump
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentFire:
		return "fire"
	case IntentAim:
		return "aim"
	case IntentRun:
		return "run"
	case IntentJump:
		return "jump"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// Held is the raw press state of the hold-type inputs, independent of
// whether the matching action is currently allowed.
type Held struct {
	Fire bool
	Aim  bool
	Run  bool
	Jump bool
}

// Vec2 is a two-axis input value. For movement, Y is forward and X is
// lateral.
type Vec2 struct {
	X float64
	Y float64
}

// ActionState is a point-in-time copy of a character's action flags.
type ActionState struct {
	// Derived every tick from Held and the latched flags.
	Aiming  bool
	Running bool
	Jumping bool

	// Latched until the matching completion callback.
	Reloading  bool
	Inspecting bool
	Holstering bool

	Holstered bool

	// LastActionAt is the tick time of the last fire attempt that passed the
	// fire-rate gate, real or empty.
	LastActionAt time.Duration
	Held         Held
}

// latchKind identifies one of the actions that stay in flight until an
// animation reports completion.
type latchKind int

const (
	latchReload latchKind = iota
	latchInspect
	latchHolster
	latchCount
)

func (k latchKind) String() string {
	switch k {
	case latchReload:
		return "reload"
	case latchInspect:
		return "inspect"
	case latchHolster:
		return "holster"
	default:
		return "unknown"
	}
}

// latch is an in-flight action node. It is entered by an accepted intent and
// left only through its completion callback (or the optional watchdog).
type latch struct {
	active bool
	since  time.Duration
}

func (l *latch) enter(now time.Duration) {
	if !l.active {
		l.since = now
	}
	l.active = true
}

// leave reports whether the latch was active.
func (l *latch) leave() bool {
	was := l.active
	l.active = false
	return was
}

// age is the time spent in flight; zero when inactive.
func (l *latch) age(now time.Duration) time.Duration {
	if !l.active {
		return 0
	}
	return now - l.since
}
