// Package inventory holds the ordered set of weapons a character carries and
// tracks which one is equipped.
package inventory

import "github.com/cory-johannsen/shooter/internal/game/weapon"

// NoneEquipped is the equipped index when no weapon is equipped.
const NoneEquipped = -1

// Inventory owns an ordered, fixed-size sequence of weapons. Insertion order
// is the equip-cycle order.
// Invariant: at most one weapon is Active, and it is the one at EquippedIndex.
type Inventory struct {
	weapons       []*weapon.Weapon
	equippedIndex int
}

// New returns an Inventory over weapons with nothing equipped.
//
// Postcondition: EquippedIndex() == NoneEquipped; every weapon is inactive.
func New(weapons []*weapon.Weapon) *Inventory {
	ws := make([]*weapon.Weapon, len(weapons))
	copy(ws, weapons)
	for _, w := range ws {
		w.SetActive(false)
	}
	return &Inventory{weapons: ws, equippedIndex: NoneEquipped}
}

// Init deactivates every weapon and equips startIndex.
//
// Postcondition: EquippedIndex() == startIndex when startIndex is in range,
// NoneEquipped otherwise.
func (inv *Inventory) Init(startIndex int) *weapon.Weapon {
	for _, w := range inv.weapons {
		w.SetActive(false)
	}
	inv.equippedIndex = NoneEquipped
	return inv.Equip(startIndex)
}

// Len returns the number of carried weapons.
func (inv *Inventory) Len() int {
	return len(inv.weapons)
}

// At returns the weapon at index, or nil when index is out of range.
func (inv *Inventory) At(index int) *weapon.Weapon {
	if !inv.InRange(index) {
		return nil
	}
	return inv.weapons[index]
}

// InRange reports whether index addresses a carried weapon.
func (inv *Inventory) InRange(index int) bool {
	return index >= 0 && index < len(inv.weapons)
}

// Equip activates the weapon at index and deactivates the previous one.
// Out-of-range indices and the already-equipped index are no-ops.
//
// Postcondition: returns the equipped weapon after the call (nil if none).
func (inv *Inventory) Equip(index int) *weapon.Weapon {
	if !inv.InRange(index) || index == inv.equippedIndex {
		return inv.Equipped()
	}
	if prev := inv.Equipped(); prev != nil {
		prev.SetActive(false)
	}
	inv.equippedIndex = index
	next := inv.weapons[index]
	next.SetActive(true)
	return next
}

// Equipped returns the equipped weapon, or nil.
func (inv *Inventory) Equipped() *weapon.Weapon {
	return inv.At(inv.equippedIndex)
}

// EquippedIndex returns the equipped index or NoneEquipped.
func (inv *Inventory) EquippedIndex() int {
	return inv.equippedIndex
}

// NextIndex returns the index after the equipped one, wrapping to 0.
//
// Postcondition: returns NoneEquipped for an empty inventory.
func (inv *Inventory) NextIndex() int {
	return inv.NextFrom(inv.equippedIndex)
}

// LastIndex returns the index before the equipped one, wrapping to the end.
//
// Postcondition: returns NoneEquipped for an empty inventory.
func (inv *Inventory) LastIndex() int {
	return inv.LastFrom(inv.equippedIndex)
}

// NextFrom returns the index after index, wrapping to 0.
func (inv *Inventory) NextFrom(index int) int {
	if len(inv.weapons) == 0 {
		return NoneEquipped
	}
	next := index + 1
	if next > len(inv.weapons)-1 {
		next = 0
	}
	return next
}

// LastFrom returns the index before index, wrapping to the end.
func (inv *Inventory) LastFrom(index int) int {
	if len(inv.weapons) == 0 {
		return NoneEquipped
	}
	last := index - 1
	if last < 0 {
		last = len(inv.weapons) - 1
	}
	return last
}
