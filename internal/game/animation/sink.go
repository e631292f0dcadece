package animation

import (
	"time"

	"go.uber.org/zap"
)

// Sink receives state-change notifications from the character core. All
// calls are fire-and-forget.
type Sink interface {
	Notify(ev Event, layer Layer, blend time.Duration)
	SetBool(name string, value bool)
	// SetFloat moves a parameter toward value; damping is the smoothing time
	// and dt the elapsed tick.
	SetFloat(name string, value float64, damping, dt time.Duration)
}

// Completion is implemented by the character core and invoked by whatever
// plays the animations once a latched action's clip has finished. Every
// method must tolerate repeated calls.
type Completion interface {
	OnAnimationEndedReload()
	OnAnimationEndedInspect()
	OnAnimationEndedHolster()
}

// NopSink discards every notification.
type NopSink struct{}

func (NopSink) Notify(Event, Layer, time.Duration) {}

func (NopSink) SetBool(string, bool) {}

func (NopSink) SetFloat(string, float64, time.Duration, time.Duration) {}

// LoggedSink forwards to next and logs each trigger at debug level. Float
// parameters are forwarded without logging; they change every tick.
type LoggedSink struct {
	next   Sink
	logger *zap.Logger
}

// NewLoggedSink wraps next.
//
// Precondition: next and logger must be non-nil.
func NewLoggedSink(next Sink, logger *zap.Logger) *LoggedSink {
	return &LoggedSink{next: next, logger: logger}
}

// Notify logs and forwards a one-shot trigger.
func (s *LoggedSink) Notify(ev Event, layer Layer, blend time.Duration) {
	s.logger.Debug("animation trigger",
		zap.Stringer("event", ev),
		zap.Stringer("layer", layer),
		zap.Duration("blend", blend),
	)
	s.next.Notify(ev, layer, blend)
}

// SetBool logs and forwards a bool parameter.
func (s *LoggedSink) SetBool(name string, value bool) {
	s.logger.Debug("animation bool",
		zap.String("name", name),
		zap.Bool("value", value),
	)
	s.next.SetBool(name, value)
}

// SetFloat forwards a float parameter.
func (s *LoggedSink) SetFloat(name string, value float64, damping, dt time.Duration) {
	s.next.SetFloat(name, value, damping, dt)
}
