package input

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// TimedEvent is an Event scheduled at an offset from the start of a
// scenario.
type TimedEvent struct {
	At    time.Duration `yaml:"at"`
	Event `yaml:",inline"`
}

// Scenario is a scripted sequence of input events replayed against a
// character, used by the headless runner and by tests.
type Scenario struct {
	Name string `yaml:"name"`
	// Duration is how long to run; zero means until the last event.
	Duration time.Duration `yaml:"duration"`
	Events   []TimedEvent  `yaml:"events"`
}

// Validate checks every event and the timing fields.
// Postcondition: returns nil iff all fields are valid.
func (s *Scenario) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if s.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must be >= 0, got %s", s.Duration))
	}
	for i, ev := range s.Events {
		if ev.At < 0 {
			errs = append(errs, fmt.Errorf("events[%d]: at must be >= 0, got %s", i, ev.At))
		}
		if err := ev.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("events[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// End returns the time at which the scenario is complete.
func (s *Scenario) End() time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	var last time.Duration
	for _, ev := range s.Events {
		if ev.At > last {
			last = ev.At
		}
	}
	return last
}

// ParseScenario decodes and validates a scenario. Events are stably sorted
// by time so that same-time events keep their file order.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("ParseScenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("ParseScenario: invalid scenario %q: %w", s.Name, err)
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })
	return &s, nil
}

// LoadScenario reads and parses the scenario file at path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: cannot read file %q: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("LoadScenario: %q: %w", path, err)
	}
	return s, nil
}

// Replayer hands out scenario events as their time comes due.
type Replayer struct {
	events []TimedEvent
	next   int
}

// NewReplayer creates a Replayer positioned at the first event.
//
// Precondition: s came from ParseScenario or LoadScenario.
func NewReplayer(s *Scenario) *Replayer {
	return &Replayer{events: s.Events}
}

// Due returns the events scheduled at or before now that have not been
// returned yet, in order.
func (r *Replayer) Due(now time.Duration) []Event {
	var out []Event
	for r.next < len(r.events) && r.events[r.next].At <= now {
		out = append(out, r.events[r.next].Event)
		r.next++
	}
	return out
}

// Done reports whether every event has been returned.
func (r *Replayer) Done() bool {
	return r.next >= len(r.events)
}
