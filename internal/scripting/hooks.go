package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/shooter/internal/game/weapon"
)

// Hook names looked up in weapon scripts.
const (
	HookOnFire        = "on_fire"
	HookOnReload      = "on_reload"
	HookOnEjectCasing = "on_eject_casing"
)

// WeaponHooks adapts a Manager to weapon.Hooks. Weapons without a matching
// hook fall back to weapon.FillHooks behaviour.
//
//	on_fire(weapon_id, remaining)
//	on_reload(weapon_id, current, capacity) -> rounds to add
//	on_eject_casing(weapon_id)
type WeaponHooks struct {
	mgr      *Manager
	fallback weapon.FillHooks
}

var _ weapon.Hooks = (*WeaponHooks)(nil)

// NewWeaponHooks wraps mgr.
//
// Precondition: mgr must be non-nil.
func NewWeaponHooks(mgr *Manager) *WeaponHooks {
	if mgr == nil {
		panic("scripting.NewWeaponHooks: manager must not be nil")
	}
	return &WeaponHooks{mgr: mgr}
}

// Fired calls on_fire.
func (h *WeaponHooks) Fired(weaponID string, remaining int) {
	h.mgr.CallHook(weaponID, HookOnFire, lua.LString(weaponID), lua.LNumber(remaining))
}

// ReloadAmount calls on_reload and uses its numeric result. A missing hook,
// a runtime error, or a non-number result fills to capacity.
func (h *WeaponHooks) ReloadAmount(weaponID string, current, capacity int) int {
	ret := h.mgr.CallHook(weaponID, HookOnReload,
		lua.LString(weaponID), lua.LNumber(current), lua.LNumber(capacity))
	if n, ok := ret.(lua.LNumber); ok {
		return int(n)
	}
	return h.fallback.ReloadAmount(weaponID, current, capacity)
}

// CasingEjected calls on_eject_casing.
func (h *WeaponHooks) CasingEjected(weaponID string) {
	h.mgr.CallHook(weaponID, HookOnEjectCasing, lua.LString(weaponID))
}
