package weapon

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrEmpty is returned by Fire when no rounds are loaded.
var ErrEmpty = errors.New("weapon: no ammunition")

// Hooks receives the weapon's effect calls. Implementations must not call
// back into the Weapon.
type Hooks interface {
	// Fired is called after a round has been consumed.
	Fired(weaponID string, remaining int)
	// ReloadAmount returns how many rounds a reload adds.
	ReloadAmount(weaponID string, current, capacity int) int
	// CasingEjected is called for each ejected casing.
	CasingEjected(weaponID string)
}

// FillHooks is the default Hooks: a reload fills the weapon to capacity and
// the other effects do nothing.
type FillHooks struct{}

// Fired does nothing.
func (FillHooks) Fired(string, int) {}

// ReloadAmount returns the number of missing rounds.
func (FillHooks) ReloadAmount(_ string, current, capacity int) int { return capacity - current }

// CasingEjected does nothing.
func (FillHooks) CasingEjected(string) {}

// Weapon is one carried instance of a Record with its ammunition state.
// Invariant: 0 <= Ammunition() <= Capacity().
type Weapon struct {
	// InstanceID distinguishes two carried copies of the same Record.
	InstanceID string

	record          *Record
	hooks           Hooks
	ammunition      int
	active          bool
	magazineVisible bool
	casings         int
}

// NewWeapon returns a fully loaded, inactive Weapon for r. A nil hooks uses
// FillHooks.
//
// Precondition:  r must be non-nil and valid (panics otherwise).
// Postcondition: Ammunition() == Capacity(); Active() == false.
func NewWeapon(r *Record, hooks Hooks) *Weapon {
	if r == nil {
		panic("weapon: NewWeapon: record must not be nil")
	}
	if err := r.Validate(); err != nil {
		panic(fmt.Sprintf("weapon: NewWeapon: %v", err))
	}
	if hooks == nil {
		hooks = FillHooks{}
	}
	return &Weapon{
		InstanceID:      uuid.NewString(),
		record:          r,
		hooks:           hooks,
		ammunition:      r.Capacity(),
		magazineVisible: true,
	}
}

// ID returns the Record ID.
func (w *Weapon) ID() string { return w.record.ID }

// Record returns the static definition.
func (w *Weapon) Record() *Record { return w.record }

// Scope returns the attached scope, or nil.
func (w *Weapon) Scope() *Scope { return w.record.Scope }

// Magazine returns the attached magazine, or nil.
func (w *Weapon) Magazine() *Magazine { return w.record.Magazine }

// IsAutomatic reports whether the weapon fires while the trigger is held.
func (w *Weapon) IsAutomatic() bool { return w.record.IsAutomatic() }

// RateOfFire returns rounds per minute.
func (w *Weapon) RateOfFire() float64 { return w.record.RateOfFire }

// ShotInterval returns the fire-rate gate interval.
func (w *Weapon) ShotInterval() time.Duration { return w.record.ShotInterval() }

// Capacity returns the effective round capacity.
func (w *Weapon) Capacity() int { return w.record.Capacity() }

// Ammunition returns the loaded round count.
func (w *Weapon) Ammunition() int { return w.ammunition }

// HasAmmunition reports whether at least one round is loaded.
//
// Postcondition: result == (Ammunition() > 0).
func (w *Weapon) HasAmmunition() bool { return w.ammunition > 0 }

// Active reports whether the weapon is the equipped one.
func (w *Weapon) Active() bool { return w.active }

// SetActive toggles whether the weapon is the equipped one.
func (w *Weapon) SetActive(active bool) { w.active = active }

// MagazineVisible reports whether the magazine is currently shown.
func (w *Weapon) MagazineVisible() bool { return w.magazineVisible }

// SetMagazineVisible shows or hides the magazine during reload animations.
func (w *Weapon) SetMagazineVisible(visible bool) { w.magazineVisible = visible }

// Casings returns the number of casings ejected so far.
func (w *Weapon) Casings() int { return w.casings }

// Fire consumes one round.
//
// Postcondition: on success Ammunition() decreases by one; returns ErrEmpty
// and leaves state unchanged when no rounds are loaded.
func (w *Weapon) Fire() error {
	if w.ammunition <= 0 {
		return ErrEmpty
	}
	w.ammunition--
	w.hooks.Fired(w.record.ID, w.ammunition)
	return nil
}

// Reload adds the number of rounds chosen by the weapon's hooks.
//
// Postcondition: 0 <= Ammunition() <= Capacity().
func (w *Weapon) Reload() {
	amount := w.hooks.ReloadAmount(w.record.ID, w.ammunition, w.Capacity())
	w.FillAmmunition(amount)
}

// FillAmmunition adds amount rounds, clamped to capacity. Non-positive
// amounts are ignored.
//
// Postcondition: 0 <= Ammunition() <= Capacity().
func (w *Weapon) FillAmmunition(amount int) {
	if amount <= 0 {
		return
	}
	w.ammunition += amount
	if c := w.Capacity(); w.ammunition > c {
		w.ammunition = c
	}
}

// EjectCasing records one ejected casing.
func (w *Weapon) EjectCasing() {
	w.casings++
	w.hooks.CasingEjected(w.record.ID)
}
