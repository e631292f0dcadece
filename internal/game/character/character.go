package character

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/config"
	"github.com/cory-johannsen/shooter/internal/game/animation"
	"github.com/cory-johannsen/shooter/internal/game/inventory"
	"github.com/cory-johannsen/shooter/internal/game/weapon"
)

// Settings tunes one Character.
type Settings struct {
	DampTimeLocomotion time.Duration
	DampTimeAiming     time.Duration
	FireBlend          time.Duration
	CursorLocked       bool
	SwitchPolicy       SwitchPolicy
	// LatchTimeout force-releases an in-flight action older than this.
	// Zero disables the watchdog.
	LatchTimeout time.Duration
}

// SettingsFromConfig converts the character config section.
func SettingsFromConfig(cfg config.CharacterConfig) Settings {
	policy := SwitchDrop
	if cfg.SwitchPolicy == config.SwitchPolicyQueue {
		policy = SwitchQueue
	}
	return Settings{
		DampTimeLocomotion: cfg.DampTimeLocomotion,
		DampTimeAiming:     cfg.DampTimeAiming,
		FireBlend:          cfg.FireBlend,
		CursorLocked:       cfg.CursorLocked,
		SwitchPolicy:       policy,
		LatchTimeout:       cfg.LatchTimeout,
	}
}

// Character owns the action state of one player character.
//
// Intents (Try*, SetHeld) may be called any number of times between ticks;
// they are evaluated against the state at the current tick time. Completion
// callbacks come from the animation sink and clear the matching latch.
type Character struct {
	inv      *inventory.Inventory
	sink     animation.Sink
	settings Settings
	logger   *zap.Logger
	seq      *Sequencer

	now          time.Duration
	lastActionAt time.Duration
	hasFired     bool

	held    Held
	aiming  bool
	running bool
	jumping bool

	holstered bool
	latches   [latchCount]latch

	move         Vec2
	look         Vec2
	cursorLocked bool
	tutorial     bool

	equipped *weapon.Weapon
	scope    *weapon.Scope
	magazine *weapon.Magazine
}

// New creates a Character over an initialized inventory.
//
// Precondition: inv, sink, and logger must be non-nil.
// Postcondition: Returns a Character with the inventory's equipped weapon
// cached and every action flag cleared.
func New(inv *inventory.Inventory, sink animation.Sink, settings Settings, logger *zap.Logger) *Character {
	if inv == nil {
		panic("character.New: inventory must not be nil")
	}
	if sink == nil {
		panic("character.New: sink must not be nil")
	}
	if logger == nil {
		panic("character.New: logger must not be nil")
	}
	if settings.SwitchPolicy == "" {
		settings.SwitchPolicy = SwitchDrop
	}
	c := &Character{
		inv:          inv,
		sink:         sink,
		settings:     settings,
		logger:       logger,
		cursorLocked: settings.CursorLocked,
	}
	c.seq = NewSequencer(func(from, to SequencePhase, target int) {
		c.logger.Debug("equip sequence",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Int("target", target),
		)
	})
	c.refreshWeaponSetup()
	return c
}

// Tick advances the character clock by dt and runs the per-tick work:
// watchdog, derived-flag recompute, automatic fire, animator parameters.
//
// Precondition: dt >= 0.
func (c *Character) Tick(dt time.Duration) {
	if dt < 0 {
		panic(fmt.Sprintf("character.Tick: negative dt %s", dt))
	}
	c.now += dt
	c.checkWatchdog()
	c.recompute()
	c.autoFire()
	c.updateAnimator(dt)
	c.assertInvariants()
}

// recompute derives aiming, running, and jumping from held inputs and
// latched flags.
func (c *Character) recompute() {
	c.aiming = c.held.Aim && c.canAim()
	c.running = c.held.Run && c.canRun()
	c.jumping = c.held.Jump
}

// autoFire fires an automatic weapon while fire is held and the gate is open.
func (c *Character) autoFire() {
	w := c.equipped
	if !c.held.Fire || w == nil || !w.IsAutomatic() || !w.HasAmmunition() {
		return
	}
	if !c.canFire() || !c.gateOpen() {
		return
	}
	c.fire()
}

func (c *Character) updateAnimator(dt time.Duration) {
	movement := math.Min(1, math.Abs(c.move.X)+math.Abs(c.move.Y))
	c.sink.SetFloat(animation.ParamMovement, movement, c.settings.DampTimeLocomotion, dt)
	aiming := 0.0
	if c.aiming {
		aiming = 1
	}
	c.sink.SetFloat(animation.ParamAiming, aiming, c.settings.DampTimeAiming/4, dt)
	c.sink.SetBool(animation.ParamAim, c.aiming)
	c.sink.SetBool(animation.ParamRunning, c.running)
}

// refreshWeaponSetup re-reads the equipped weapon and its attachments.
func (c *Character) refreshWeaponSetup() {
	c.equipped = c.inv.Equipped()
	c.scope = nil
	c.magazine = nil
	if c.equipped != nil {
		c.scope = c.equipped.Scope()
		c.magazine = c.equipped.Magazine()
	}
}

func (c *Character) setHolstered(v bool) {
	c.holstered = v
	c.sink.SetBool(animation.ParamHolstered, v)
}

// assertInvariants panics when guard logic has let two latched actions or
// an illegal derived flag through.
func (c *Character) assertInvariants() {
	n := 0
	for i := range c.latches {
		if c.latches[i].active {
			n++
		}
	}
	if n > 1 {
		panic(fmt.Sprintf("character: %d actions latched at once: %+v", n, c.State()))
	}
	if c.holstered && (c.aiming || c.running) {
		panic(fmt.Sprintf("character: aiming or running while holstered: %+v", c.State()))
	}
	if c.aiming && (c.equipped == nil || n > 0) {
		panic(fmt.Sprintf("character: aiming during a latched action: %+v", c.State()))
	}
}

// State returns a snapshot of the action flags.
func (c *Character) State() ActionState {
	return ActionState{
		Aiming:       c.aiming,
		Running:      c.running,
		Jumping:      c.jumping,
		Reloading:    c.latches[latchReload].active,
		Inspecting:   c.latches[latchInspect].active,
		Holstering:   c.latches[latchHolster].active,
		Holstered:    c.holstered,
		LastActionAt: c.lastActionAt,
		Held:         c.held,
	}
}

// Now returns the character clock.
func (c *Character) Now() time.Duration { return c.now }

// IsAiming reports the derived aiming flag.
func (c *Character) IsAiming() bool { return c.aiming }

// IsRunning reports the derived running flag.
func (c *Character) IsRunning() bool { return c.running }

// IsJumping reports whether jump is held. Grounding is the movement
// collaborator's concern.
func (c *Character) IsJumping() bool { return c.jumping }

// IsHolstered reports whether the weapon is put away.
func (c *Character) IsHolstered() bool { return c.holstered }

// CrosshairVisible reports whether a hip-fire crosshair should be drawn.
func (c *Character) CrosshairVisible() bool { return !c.aiming && !c.holstered }

// EquippedWeapon returns the cached equipped weapon, or nil.
func (c *Character) EquippedWeapon() *weapon.Weapon { return c.equipped }

// EquippedScope returns the equipped weapon's scope, or nil.
func (c *Character) EquippedScope() *weapon.Scope { return c.scope }

// EquippedMagazine returns the equipped weapon's magazine, or nil.
func (c *Character) EquippedMagazine() *weapon.Magazine { return c.magazine }

// EquippedIndex returns the inventory index of the equipped weapon.
func (c *Character) EquippedIndex() int { return c.inv.EquippedIndex() }

// Inventory returns the carried weapons.
func (c *Character) Inventory() *inventory.Inventory { return c.inv }

// SequencePhase returns the phase of the weapon-switch sequence.
func (c *Character) SequencePhase() SequencePhase { return c.seq.Phase() }

// SequenceTarget returns the inventory index an in-flight switch will bind.
func (c *Character) SequenceTarget() int { return c.seq.Target() }

// Movement returns the last movement input.
func (c *Character) Movement() Vec2 { return c.move }

// Look returns the last look input.
func (c *Character) Look() Vec2 { return c.look }

// CursorLocked reports whether gameplay input is accepted.
func (c *Character) CursorLocked() bool { return c.cursorLocked }

// TutorialVisible reports whether the controls overlay is shown.
func (c *Character) TutorialVisible() bool { return c.tutorial }
