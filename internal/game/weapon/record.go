// Package weapon provides weapon definitions, attachment data, and the
// runtime ammunition state of a carried weapon.
package weapon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// FiringMode represents the trigger behaviour of a weapon.
type FiringMode string

const (
	// FiringModeSingle fires one round per trigger press.
	FiringModeSingle FiringMode = "single"
	// FiringModeAutomatic fires continuously while the trigger is held.
	FiringModeAutomatic FiringMode = "automatic"
)

// Record defines the static properties of a weapon loaded from YAML.
type Record struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// FiringMode defaults to single when omitted.
	FiringMode FiringMode `yaml:"firing_mode"`
	// RateOfFire is in rounds per minute.
	RateOfFire float64 `yaml:"rate_of_fire"`
	// AmmunitionCapacity is the number of rounds a full weapon holds.
	AmmunitionCapacity int `yaml:"ammunition_capacity"`
	// Scope is nil when the weapon only has iron sights.
	Scope *Scope `yaml:"scope"`
	// Magazine is nil when the weapon has no detachable magazine.
	Magazine *Magazine `yaml:"magazine"`
}

// IsAutomatic reports whether the weapon fires while the trigger is held.
func (r *Record) IsAutomatic() bool {
	return r.FiringMode == FiringModeAutomatic
}

// Capacity returns the effective round capacity. An attached magazine with a
// positive AmmunitionTotal overrides AmmunitionCapacity.
//
// Postcondition: result > 0 for any record that passed Validate.
func (r *Record) Capacity() int {
	if r.Magazine != nil && r.Magazine.AmmunitionTotal > 0 {
		return r.Magazine.AmmunitionTotal
	}
	return r.AmmunitionCapacity
}

// ShotInterval returns the minimum time between two fire attempts,
// 60 / RateOfFire seconds.
//
// Precondition: RateOfFire > 0.
func (r *Record) ShotInterval() time.Duration {
	return time.Duration(float64(time.Minute) / r.RateOfFire)
}

// Validate checks that the Record satisfies its invariants.
// Precondition: r is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (r *Record) Validate() error {
	var errs []error
	if r.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if r.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	switch r.FiringMode {
	case FiringModeSingle, FiringModeAutomatic:
	default:
		errs = append(errs, fmt.Errorf("FiringMode must be single or automatic, got %q", r.FiringMode))
	}
	if r.RateOfFire <= 0 {
		errs = append(errs, errors.New("RateOfFire must be > 0"))
	}
	if r.AmmunitionCapacity <= 0 {
		errs = append(errs, errors.New("AmmunitionCapacity must be > 0"))
	}
	if r.Scope != nil {
		if err := r.Scope.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.Magazine != nil {
		if err := r.Magazine.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// LoadRecords reads all *.yaml files from dir, parses each as a Record,
// applies the single firing mode default, validates it, and returns the
// collected slice sorted by ID.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Records or the first encountered error.
func LoadRecords(dir string) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadRecords: cannot read directory %q: %w", dir, err)
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadRecords: cannot read file %q: %w", path, err)
		}
		var r Record
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("LoadRecords: cannot parse file %q: %w", path, err)
		}
		if r.FiringMode == "" {
			r.FiringMode = FiringModeSingle
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("LoadRecords: invalid weapon in %q: %w", path, err)
		}
		records = append(records, &r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
