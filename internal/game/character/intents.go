package character

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/game/animation"
)

// SetHeld records the raw press state of a hold-type input. Guards are not
// evaluated here; the next Tick derives the action flags.
func (c *Character) SetHeld(intent Intent, held bool) {
	switch intent {
	case IntentFire:
		c.held.Fire = held
	case IntentAim:
		c.held.Aim = held
	case IntentRun:
		c.held.Run = held
	case IntentJump:
		c.held.Jump = held
	}
}

// SetMovement records the movement input.
func (c *Character) SetMovement(v Vec2) { c.move = v }

// SetLook records the look input.
func (c *Character) SetLook(v Vec2) { c.look = v }

// SetTutorialVisible shows or hides the controls overlay.
func (c *Character) SetTutorialVisible(visible bool) { c.tutorial = visible }

// ToggleCursorLock flips the cursor lock and returns the new state.
func (c *Character) ToggleCursorLock() bool {
	c.cursorLocked = !c.cursorLocked
	c.logger.Debug("cursor lock", zap.Bool("locked", c.cursorLocked))
	return c.cursorLocked
}

// TryFire handles a fire press edge.
//
// With ammunition loaded, a semi-automatic weapon fires once if the fire-rate
// gate is open; an automatic weapon does nothing here because Tick fires it
// while fire is held. With the magazine empty, either kind plays the empty
// click under the same gate.
//
// Postcondition: returns true iff a shot or an empty click happened.
func (c *Character) TryFire() bool {
	if !c.canFire() {
		return false
	}
	w := c.equipped
	if w.HasAmmunition() && w.IsAutomatic() {
		return false
	}
	if !c.gateOpen() {
		return false
	}
	if w.HasAmmunition() {
		c.fire()
	} else {
		c.fireEmpty()
	}
	c.assertInvariants()
	return true
}

func (c *Character) fire() {
	c.lastActionAt = c.now
	c.hasFired = true
	if err := c.equipped.Fire(); err != nil {
		c.logger.Error("fire with empty weapon", zap.String("weapon", c.equipped.ID()), zap.Error(err))
		return
	}
	c.sink.Notify(animation.EventFire, animation.LayerOverlay, c.settings.FireBlend)
}

func (c *Character) fireEmpty() {
	c.lastActionAt = c.now
	c.hasFired = true
	c.sink.Notify(animation.EventFireEmpty, animation.LayerOverlay, c.settings.FireBlend)
}

// TryReload starts a reload. The rounds are added immediately; the reload
// stays in flight until OnAnimationEndedReload.
func (c *Character) TryReload() bool {
	if !c.canReload() {
		return false
	}
	ev := animation.EventReloadEmpty
	if c.equipped.HasAmmunition() {
		ev = animation.EventReload
	}
	c.sink.Notify(ev, animation.LayerActions, 0)
	c.latches[latchReload].enter(c.now)
	c.equipped.Reload()
	c.logger.Debug("reload started",
		zap.String("weapon", c.equipped.ID()),
		zap.Stringer("animation", ev),
		zap.Int("ammunition", c.equipped.Ammunition()),
	)
	c.settle()
	return true
}

// TryInspect starts an inspect, in flight until OnAnimationEndedInspect.
func (c *Character) TryInspect() bool {
	if !c.canInspect() {
		return false
	}
	c.sink.Notify(animation.EventInspect, animation.LayerActions, 0)
	c.latches[latchInspect].enter(c.now)
	c.settle()
	return true
}

// TryHolster toggles the holstered state, in flight until
// OnAnimationEndedHolster.
func (c *Character) TryHolster() bool {
	if !c.canHolster() {
		return false
	}
	c.setHolstered(!c.holstered)
	c.latches[latchHolster].enter(c.now)
	ev := animation.EventUnholster
	if c.holstered {
		ev = animation.EventHolster
	}
	c.sink.Notify(ev, animation.LayerHolster, 0)
	c.settle()
	return true
}

// TrySwitchWeapon starts the switch sequence to the weapon at target.
//
// Out-of-range targets and the currently equipped index are rejected. While a
// switch is holstering out, the SwitchQueue policy retargets it; SwitchDrop
// rejects the request.
func (c *Character) TrySwitchWeapon(target int) bool {
	if !c.inv.InRange(target) || target == c.inv.EquippedIndex() {
		return false
	}
	if c.settings.SwitchPolicy == SwitchQueue && c.seq.Phase() == PhaseHolsteringOut {
		if c.seq.Retarget(target) {
			c.logger.Debug("weapon switch retargeted", zap.Int("target", target))
			return true
		}
	}
	if !c.canChangeWeapon() {
		return false
	}
	if !c.seq.Start(c, target) {
		return false
	}
	c.settle()
	return true
}

// TryCycleWeapon switches to the next weapon for a non-negative scroll and to
// the previous one otherwise. Under SwitchQueue a switch still holstering out
// is stepped from its pending target.
func (c *Character) TryCycleWeapon(scroll float64) bool {
	if c.inv.Len() == 0 {
		return false
	}
	from := c.inv.EquippedIndex()
	if c.settings.SwitchPolicy == SwitchQueue && c.seq.Phase() == PhaseHolsteringOut {
		from = c.seq.Target()
	}
	target := c.inv.NextFrom(from)
	if scroll < 0 {
		target = c.inv.LastFrom(from)
	}
	return c.TrySwitchWeapon(target)
}

// settle refreshes derived flags after a latch change and checks the
// invariants.
func (c *Character) settle() {
	c.recompute()
	c.assertInvariants()
}

func (c *Character) isHolstered() bool { return c.holstered }

func (c *Character) beginHolster() {
	c.setHolstered(true)
	c.latches[latchHolster].enter(c.now)
	c.sink.Notify(animation.EventHolster, animation.LayerHolster, 0)
}

func (c *Character) bindWeapon(index int) {
	c.setHolstered(false)
	c.sink.Notify(animation.EventUnholster, animation.LayerHolster, 0)
	c.inv.Equip(index)
	c.refreshWeaponSetup()
	id := ""
	if c.equipped != nil {
		id = c.equipped.ID()
	}
	c.logger.Info("weapon equipped", zap.Int("index", index), zap.String("weapon", id))
}
