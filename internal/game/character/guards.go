package character

import "math"

// Guards are pure reads of the current flags and held inputs.

func (c *Character) reloading() bool  { return c.latches[latchReload].active }
func (c *Character) inspecting() bool { return c.latches[latchInspect].active }
func (c *Character) holstering() bool { return c.latches[latchHolster].active }

func (c *Character) canFire() bool {
	return c.equipped != nil && !c.holstered && !c.holstering() && !c.reloading() && !c.inspecting()
}

func (c *Character) canReload() bool {
	return c.equipped != nil && !c.reloading() && !c.inspecting() && !c.holstering()
}

func (c *Character) canInspect() bool {
	return c.equipped != nil && !c.holstered && !c.holstering() && !c.reloading() && !c.inspecting()
}

func (c *Character) canHolster() bool {
	return !c.reloading() && !c.inspecting()
}

func (c *Character) canChangeWeapon() bool {
	return !c.holstering() && !c.reloading() && !c.inspecting()
}

func (c *Character) canAim() bool {
	return c.equipped != nil && !c.holstered && !c.holstering() && !c.reloading() && !c.inspecting()
}

// canRun reads the aiming flag, so recompute must set aiming first.
func (c *Character) canRun() bool {
	if c.holstered || c.inspecting() || c.reloading() || c.aiming {
		return false
	}
	if c.held.Fire && c.equipped != nil && c.equipped.HasAmmunition() {
		return false
	}
	// Backward or purely sideways movement never runs.
	if c.move.Y <= 0 || math.Abs(math.Abs(c.move.X)-1) < 0.01 {
		return false
	}
	return true
}

// gateOpen reports whether the fire-rate interval has elapsed since the last
// gated fire attempt. The first attempt is always allowed.
func (c *Character) gateOpen() bool {
	if !c.hasFired {
		return true
	}
	return c.now-c.lastActionAt >= c.equipped.ShotInterval()
}
