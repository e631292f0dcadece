package weapon

import (
	"errors"
	"fmt"
)

// Scope is the sight attached to a weapon. Iron sights are a scope too.
type Scope struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Magnification is the zoom factor while aiming; 0 and 1 both mean none.
	Magnification float64 `yaml:"magnification"`
}

// Zoom returns the effective magnification.
func (s *Scope) Zoom() float64 {
	if s.Magnification == 0 {
		return 1
	}
	return s.Magnification
}

// Validate checks that the Scope satisfies its invariants.
func (s *Scope) Validate() error {
	if s.ID == "" {
		return errors.New("scope ID must not be empty")
	}
	if s.Magnification != 0 && s.Magnification < 1 {
		return fmt.Errorf("scope %q magnification must be >= 1, got %g", s.ID, s.Magnification)
	}
	return nil
}

// Magazine is the detachable magazine attached to a weapon.
type Magazine struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// AmmunitionTotal overrides the weapon capacity when > 0.
	AmmunitionTotal int `yaml:"ammunition_total"`
}

// Validate checks that the Magazine satisfies its invariants.
func (m *Magazine) Validate() error {
	if m.ID == "" {
		return errors.New("magazine ID must not be empty")
	}
	if m.AmmunitionTotal < 0 {
		return fmt.Errorf("magazine %q ammunition_total must be >= 0, got %d", m.ID, m.AmmunitionTotal)
	}
	return nil
}
