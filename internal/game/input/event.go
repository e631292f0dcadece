// Package input maps device input events onto character intents.
package input

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/shooter/internal/game/character"
)

// ErrUnknownAction is returned when an event names an action that has no
// binding.
var ErrUnknownAction = errors.New("unknown input action")

// ErrUnknownPhase is returned when an event carries an unrecognised phase.
var ErrUnknownPhase = errors.New("unknown input phase")

// Action names a bound input.
type Action string

const (
	ActionFire       Action = "fire"
	ActionAim        Action = "aim"
	ActionRun        Action = "run"
	ActionJump       Action = "jump"
	ActionReload     Action = "reload"
	ActionInspect    Action = "inspect"
	ActionHolster    Action = "holster"
	ActionNextWeapon Action = "next_weapon"
	ActionLockCursor Action = "lock_cursor"
	ActionMove       Action = "move"
	ActionLook       Action = "look"
	ActionTutorial   Action = "tutorial"
)

// Actions lists every bound action.
var Actions = []Action{
	ActionFire, ActionAim, ActionRun, ActionJump,
	ActionReload, ActionInspect, ActionHolster, ActionNextWeapon,
	ActionLockCursor, ActionMove, ActionLook, ActionTutorial,
}

// Phase is the edge an event reports.
type Phase string

const (
	// PhaseStarted begins a hold.
	PhaseStarted Phase = "started"
	// PhasePerformed is a one-shot trigger.
	PhasePerformed Phase = "performed"
	// PhaseCanceled ends a hold.
	PhaseCanceled Phase = "canceled"
)

// Event is one input edge. Value carries the axis for move and look, and
// the scroll delta in Y for next_weapon.
type Event struct {
	Action Action         `yaml:"action"`
	Phase  Phase          `yaml:"phase"`
	Value  character.Vec2 `yaml:"value"`
}

// Validate reports an unknown action or phase.
func (e Event) Validate() error {
	known := false
	for _, a := range Actions {
		if a == e.Action {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownAction, e.Action)
	}
	switch e.Phase {
	case PhaseStarted, PhasePerformed, PhaseCanceled:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPhase, e.Phase)
	}
}

// Started returns a hold-begin event.
func Started(a Action) Event { return Event{Action: a, Phase: PhaseStarted} }

// Performed returns a one-shot event.
func Performed(a Action) Event { return Event{Action: a, Phase: PhasePerformed} }

// Canceled returns a hold-end event.
func Canceled(a Action) Event { return Event{Action: a, Phase: PhaseCanceled} }

// Axis returns a performed axis event for move or look.
func Axis(a Action, v character.Vec2) Event {
	return Event{Action: a, Phase: PhasePerformed, Value: v}
}
