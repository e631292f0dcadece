package character

// SequencePhase is the state of the weapon-switch sequence.
type SequencePhase int

const (
	// PhaseIdle means no switch is in flight.
	PhaseIdle SequencePhase = iota
	// PhaseHolsteringOut waits for the holster animation to complete.
	PhaseHolsteringOut
	// PhaseBound is entered when the new weapon is equipped.
	PhaseBound
	// PhaseUnholsteringIn is entered once the unholster animation is triggered.
	PhaseUnholsteringIn
)

// String returns the phase name.
func (p SequencePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHolsteringOut:
		return "holstering_out"
	case PhaseBound:
		return "bound"
	case PhaseUnholsteringIn:
		return "unholstering_in"
	default:
		return "unknown"
	}
}

// SwitchPolicy decides what happens to a switch request while another one
// is in flight.
type SwitchPolicy string

const (
	// SwitchDrop rejects the new request.
	SwitchDrop SwitchPolicy = "drop"
	// SwitchQueue retargets the in-flight sequence to the newest request while
	// it is still holstering out.
	SwitchQueue SwitchPolicy = "queue"
)

// equipHost is what the sequencer drives. Character implements it.
type equipHost interface {
	// isHolstered reports whether the weapon is currently put away.
	isHolstered() bool
	// beginHolster puts the weapon away and latches holstering.
	beginHolster()
	// bindWeapon draws the weapon at index and refreshes cached references.
	bindWeapon(index int)
}

// Sequencer runs the two-phase switch protocol:
//
//	Idle -> HolsteringOut -> Bound -> UnholsteringIn -> Idle
//
// HolsteringOut is the only suspension point and is left only through
// Resume. It is skipped when the weapon is already holstered.
type Sequencer struct {
	phase   SequencePhase
	target  int
	onPhase func(from, to SequencePhase, target int)
}

// NewSequencer returns an idle Sequencer. onPhase, if non-nil, observes every
// phase change.
func NewSequencer(onPhase func(from, to SequencePhase, target int)) *Sequencer {
	return &Sequencer{onPhase: onPhase}
}

// Phase returns the current phase.
func (s *Sequencer) Phase() SequencePhase { return s.phase }

// Target returns the index being switched to; meaningful only while not idle.
func (s *Sequencer) Target() int { return s.target }

// InFlight reports whether a switch is suspended waiting for completion.
func (s *Sequencer) InFlight() bool { return s.phase != PhaseIdle }

// Start begins a switch to target.
//
// Precondition: the caller has checked the switch guard.
// Postcondition: returns false and does nothing if a switch is in flight;
// otherwise either suspends in HolsteringOut or completes back to Idle.
func (s *Sequencer) Start(host equipHost, target int) bool {
	if s.phase != PhaseIdle {
		return false
	}
	s.target = target
	if !host.isHolstered() {
		s.transition(PhaseHolsteringOut)
		host.beginHolster()
		return true
	}
	s.finish(host)
	return true
}

// Resume continues a suspended switch after the holster animation completed.
//
// Postcondition: returns false when nothing was suspended.
func (s *Sequencer) Resume(host equipHost) bool {
	if s.phase != PhaseHolsteringOut {
		return false
	}
	s.finish(host)
	return true
}

// Retarget replaces the pending target while holstering out.
//
// Postcondition: returns false when the sequence is not in HolsteringOut.
func (s *Sequencer) Retarget(target int) bool {
	if s.phase != PhaseHolsteringOut {
		return false
	}
	s.target = target
	return true
}

func (s *Sequencer) finish(host equipHost) {
	s.transition(PhaseBound)
	host.bindWeapon(s.target)
	s.transition(PhaseUnholsteringIn)
	s.transition(PhaseIdle)
}

func (s *Sequencer) transition(to SequencePhase) {
	from := s.phase
	s.phase = to
	if s.onPhase != nil {
		s.onPhase(from, to, s.target)
	}
}
