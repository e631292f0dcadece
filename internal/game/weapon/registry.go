package weapon

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownWeapon is returned when a loadout names an unregistered ID.
var ErrUnknownWeapon = errors.New("weapon: unknown weapon")

// Registry holds all loaded weapon Records indexed by ID.
type Registry struct {
	records map[string]*Record
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// Register adds r to the registry.
//
// Precondition:  r must not be nil.
// Postcondition: Record(r.ID) returns r; returns error if r.ID already registered.
func (reg *Registry) Register(r *Record) error {
	if _, exists := reg.records[r.ID]; exists {
		return fmt.Errorf("weapon: Registry.Register: weapon ID %q already registered", r.ID)
	}
	reg.records[r.ID] = r
	return nil
}

// Record returns the Record for the given id, or nil if not found.
func (reg *Registry) Record(id string) *Record {
	return reg.records[id]
}

// Len returns the number of registered records.
func (reg *Registry) Len() int {
	return len(reg.records)
}

// IDs returns all registered IDs in ascending order.
func (reg *Registry) IDs() []string {
	out := make([]string, 0, len(reg.records))
	for id := range reg.records {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Loadout builds one Weapon per id, in order. An empty ids list uses every
// registered ID in ascending order.
//
// Postcondition: len(result) == len(ids) (or Len() when ids is empty);
// returns an error wrapping ErrUnknownWeapon for any unregistered id.
func (reg *Registry) Loadout(ids []string, hooks Hooks) ([]*Weapon, error) {
	if len(ids) == 0 {
		ids = reg.IDs()
	}
	weapons := make([]*Weapon, 0, len(ids))
	for _, id := range ids {
		r := reg.Record(id)
		if r == nil {
			return nil, fmt.Errorf("weapon: Registry.Loadout: %w %q", ErrUnknownWeapon, id)
		}
		weapons = append(weapons, NewWeapon(r, hooks))
	}
	return weapons, nil
}
