package inventory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shooter/internal/game/inventory"
	"github.com/cory-johannsen/shooter/internal/game/weapon"
)

func weapons(n int) []*weapon.Weapon {
	out := make([]*weapon.Weapon, n)
	for i := range out {
		out[i] = weapon.NewWeapon(&weapon.Record{
			ID:                 fmt.Sprintf("w%d", i),
			Name:               fmt.Sprintf("Weapon %d", i),
			FiringMode:         weapon.FiringModeSingle,
			RateOfFire:         300,
			AmmunitionCapacity: 10,
		}, nil)
	}
	return out
}

func activeCount(inv *inventory.Inventory) int {
	n := 0
	for i := 0; i < inv.Len(); i++ {
		if inv.At(i).Active() {
			n++
		}
	}
	return n
}

func TestNew_NothingEquipped(t *testing.T) {
	inv := inventory.New(weapons(3))
	assert.Equal(t, inventory.NoneEquipped, inv.EquippedIndex())
	assert.Nil(t, inv.Equipped())
	assert.Equal(t, 0, activeCount(inv))
}

func TestInit_EquipsStartIndex(t *testing.T) {
	inv := inventory.New(weapons(3))
	w := inv.Init(1)
	require.NotNil(t, w)
	assert.Equal(t, 1, inv.EquippedIndex())
	assert.True(t, w.Active())
	assert.Equal(t, 1, activeCount(inv))
}

func TestInit_OutOfRangeLeavesNone(t *testing.T) {
	inv := inventory.New(weapons(2))
	assert.Nil(t, inv.Init(5))
	assert.Equal(t, inventory.NoneEquipped, inv.EquippedIndex())
}

func TestEquip_SwapsActive(t *testing.T) {
	ws := weapons(3)
	inv := inventory.New(ws)
	inv.Init(0)
	got := inv.Equip(2)
	assert.Same(t, ws[2], got)
	assert.False(t, ws[0].Active())
	assert.True(t, ws[2].Active())
	assert.Equal(t, 2, inv.EquippedIndex())
}

func TestEquip_OutOfRangeIsNoOp(t *testing.T) {
	ws := weapons(3)
	inv := inventory.New(ws)
	inv.Init(1)
	assert.Same(t, ws[1], inv.Equip(3))
	assert.Same(t, ws[1], inv.Equip(-1))
	assert.Equal(t, 1, inv.EquippedIndex())
}

func TestEquip_SameIndexIsNoOp(t *testing.T) {
	ws := weapons(2)
	inv := inventory.New(ws)
	inv.Init(0)
	assert.Same(t, ws[0], inv.Equip(0))
	assert.True(t, ws[0].Active())
}

func TestNextAndLastIndex_Wrap(t *testing.T) {
	inv := inventory.New(weapons(3))
	inv.Init(2)
	assert.Equal(t, 0, inv.NextIndex())
	assert.Equal(t, 1, inv.LastIndex())

	inv.Equip(0)
	assert.Equal(t, 1, inv.NextIndex())
	assert.Equal(t, 2, inv.LastIndex())
}

func TestNextAndLastFrom_IgnoreEquipped(t *testing.T) {
	inv := inventory.New(weapons(3))
	inv.Init(0)
	assert.Equal(t, 2, inv.NextFrom(1))
	assert.Equal(t, 0, inv.NextFrom(2))
	assert.Equal(t, 0, inv.LastFrom(1))
	assert.Equal(t, 2, inv.LastFrom(0))
	assert.Equal(t, 0, inv.EquippedIndex())
}

func TestNextAndLastIndex_Empty(t *testing.T) {
	inv := inventory.New(nil)
	assert.Equal(t, inventory.NoneEquipped, inv.NextIndex())
	assert.Equal(t, inventory.NoneEquipped, inv.LastIndex())
}

func TestNextIndex_NoneEquippedStartsAtZero(t *testing.T) {
	inv := inventory.New(weapons(3))
	assert.Equal(t, 0, inv.NextIndex())
	assert.Equal(t, 2, inv.LastIndex())
}

func TestProperty_Inventory_WrapAndSingleActive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		inv := inventory.New(weapons(n))
		inv.Init(rapid.IntRange(0, n-1).Draw(rt, "start"))
		steps := rapid.SliceOfN(rapid.IntRange(-2, n+1), 0, 40).Draw(rt, "steps")
		for _, target := range steps {
			switch target {
			case -2:
				inv.Equip(inv.NextIndex())
			case -1:
				inv.Equip(inv.LastIndex())
			default:
				inv.Equip(target)
			}
			cur := inv.EquippedIndex()
			if cur < 0 || cur >= n {
				rt.Fatalf("equipped index %d out of range [0,%d)", cur, n)
			}
			if next := inv.NextIndex(); next != (cur+1)%n {
				rt.Fatalf("NextIndex()=%d, want %d", next, (cur+1)%n)
			}
			if last := inv.LastIndex(); last != (cur-1+n)%n {
				rt.Fatalf("LastIndex()=%d, want %d", last, (cur-1+n)%n)
			}
			if activeCount(inv) != 1 || !inv.Equipped().Active() {
				rt.Fatalf("expected exactly the equipped weapon active")
			}
		}
	})
}
