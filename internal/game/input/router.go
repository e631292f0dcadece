package input

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/game/character"
)

// Target receives routed intents. *character.Character implements it.
type Target interface {
	SetHeld(intent character.Intent, held bool)
	TryFire() bool
	TryReload() bool
	TryInspect() bool
	TryHolster() bool
	TryCycleWeapon(scroll float64) bool
	SetMovement(v character.Vec2)
	SetLook(v character.Vec2)
	ToggleCursorLock() bool
	CursorLocked() bool
	SetTutorialVisible(visible bool)
}

// holdIntents maps hold-type actions to the held input they drive.
var holdIntents = map[Action]character.Intent{
	ActionFire: character.IntentFire,
	ActionAim:  character.IntentAim,
	ActionRun:  character.IntentRun,
	ActionJump: character.IntentJump,
}

// Router dispatches input events to a Target.
//
// While the cursor is unlocked only lock_cursor and tutorial events are
// honoured; move and look read as zero and everything else is dropped.
type Router struct {
	target Target
	logger *zap.Logger
}

// NewRouter creates a Router.
//
// Precondition: target and logger must be non-nil.
func NewRouter(target Target, logger *zap.Logger) *Router {
	if target == nil {
		panic("input.NewRouter: target must not be nil")
	}
	if logger == nil {
		panic("input.NewRouter: logger must not be nil")
	}
	return &Router{target: target, logger: logger}
}

// Dispatch routes ev and reports whether it changed character state.
// Invalid events are logged and dropped.
func (r *Router) Dispatch(ev Event) bool {
	if err := ev.Validate(); err != nil {
		r.logger.Warn("dropping input event", zap.Error(err))
		return false
	}

	switch ev.Action {
	case ActionLockCursor:
		if ev.Phase != PhasePerformed {
			return false
		}
		r.target.ToggleCursorLock()
		return true
	case ActionTutorial:
		switch ev.Phase {
		case PhaseStarted:
			r.target.SetTutorialVisible(true)
			return true
		case PhaseCanceled:
			r.target.SetTutorialVisible(false)
			return true
		}
		return false
	case ActionMove, ActionLook:
		v := ev.Value
		if !r.target.CursorLocked() || ev.Phase == PhaseCanceled {
			v = character.Vec2{}
		}
		if ev.Action == ActionMove {
			r.target.SetMovement(v)
		} else {
			r.target.SetLook(v)
		}
		return true
	}

	// Releases are recorded even while the cursor is unlocked so held state
	// always matches the device.
	if intent, ok := holdIntents[ev.Action]; ok && ev.Phase == PhaseCanceled {
		r.target.SetHeld(intent, false)
		return true
	}

	if !r.target.CursorLocked() {
		return false
	}

	if intent, ok := holdIntents[ev.Action]; ok {
		if ev.Phase == PhaseStarted {
			r.target.SetHeld(intent, true)
			return true
		}
		if ev.Action == ActionFire {
			return r.target.TryFire()
		}
		return false
	}

	if ev.Phase != PhasePerformed {
		return false
	}
	switch ev.Action {
	case ActionReload:
		return r.target.TryReload()
	case ActionInspect:
		return r.target.TryInspect()
	case ActionHolster:
		return r.target.TryHolster()
	case ActionNextWeapon:
		return r.target.TryCycleWeapon(ev.Value.Y)
	}
	return false
}
