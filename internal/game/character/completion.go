package character

import (
	"go.uber.org/zap"
)

// OnAnimationEndedReload clears the reload latch. Repeated calls are no-ops.
func (c *Character) OnAnimationEndedReload() {
	if c.latches[latchReload].leave() {
		c.logger.Debug("reload finished")
	}
	c.settle()
}

// OnAnimationEndedInspect clears the inspect latch. Repeated calls are no-ops.
func (c *Character) OnAnimationEndedInspect() {
	if c.latches[latchInspect].leave() {
		c.logger.Debug("inspect finished")
	}
	c.settle()
}

// OnAnimationEndedHolster clears the holster latch and resumes a weapon
// switch waiting on it. Repeated calls are no-ops.
func (c *Character) OnAnimationEndedHolster() {
	if c.latches[latchHolster].leave() {
		c.logger.Debug("holster finished", zap.Bool("holstered", c.holstered))
	}
	c.seq.Resume(c)
	c.settle()
}

// checkWatchdog force-releases latches older than the configured timeout
// through their completion callbacks.
func (c *Character) checkWatchdog() {
	limit := c.settings.LatchTimeout
	if limit <= 0 {
		return
	}
	for k := latchKind(0); k < latchCount; k++ {
		age := c.latches[k].age(c.now)
		if !c.latches[k].active || age < limit {
			continue
		}
		c.logger.Warn("animation completion overdue; releasing",
			zap.Stringer("action", k),
			zap.Duration("age", age),
			zap.Duration("timeout", limit),
		)
		switch k {
		case latchReload:
			c.OnAnimationEndedReload()
		case latchInspect:
			c.OnAnimationEndedInspect()
		case latchHolster:
			c.OnAnimationEndedHolster()
		}
	}
}

// EjectCasing forwards the casing-eject animation event to the equipped
// weapon.
func (c *Character) EjectCasing() {
	if c.equipped != nil {
		c.equipped.EjectCasing()
	}
}

// FillAmmunition forwards the ammunition-fill animation event to the equipped
// weapon.
func (c *Character) FillAmmunition(amount int) {
	if c.equipped != nil {
		c.equipped.FillAmmunition(amount)
	}
}

// SetActiveMagazine shows or hides the equipped weapon's magazine.
func (c *Character) SetActiveMagazine(active bool) {
	if c.equipped != nil {
		c.equipped.SetMagazineVisible(active)
	}
}
