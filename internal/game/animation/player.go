package animation

import (
	"time"

	"github.com/cory-johannsen/shooter/internal/config"
)

// clip is the single clip playing on one layer.
type clip struct {
	event     Event
	remaining time.Duration
}

// Player is a headless Sink that plays each triggered clip for a fixed
// length and reports completion through the bound Completion. Each layer plays
// at most one clip; a new trigger on a layer replaces the clip already there.
// Player is driven by Advance and is not safe for concurrent use.
type Player struct {
	lengths    map[Event]time.Duration
	layers     map[Layer]*clip
	bools      map[string]bool
	floats     map[string]float64
	completion Completion
	history    []Event
}

// NewPlayer creates a Player with clip lengths taken from cfg. Fire and
// empty-fire have no completion and are not tracked.
//
// Postcondition: Returns an unbound Player; call Bind before Advance.
func NewPlayer(cfg config.AnimationConfig) *Player {
	return &Player{
		lengths: map[Event]time.Duration{
			EventReload:      cfg.Reload,
			EventReloadEmpty: cfg.ReloadEmpty,
			EventInspect:     cfg.Inspect,
			EventHolster:     cfg.Holster,
			EventUnholster:   cfg.Holster,
		},
		layers: make(map[Layer]*clip),
		bools:  make(map[string]bool),
		floats: make(map[string]float64),
	}
}

// Bind sets the receiver of completion callbacks.
func (p *Player) Bind(c Completion) {
	p.completion = c
}

// Notify starts the clip for ev on layer.
func (p *Player) Notify(ev Event, layer Layer, _ time.Duration) {
	p.history = append(p.history, ev)
	length, ok := p.lengths[ev]
	if !ok {
		return
	}
	p.layers[layer] = &clip{event: ev, remaining: length}
}

// SetBool records a bool parameter.
func (p *Player) SetBool(name string, value bool) {
	p.bools[name] = value
}

// SetFloat moves a float parameter toward value. With damping <= 0 the value
// is applied immediately; otherwise the gap closes by dt/damping per call.
func (p *Player) SetFloat(name string, value float64, damping, dt time.Duration) {
	if damping <= 0 || dt >= damping {
		p.floats[name] = value
		return
	}
	cur := p.floats[name]
	p.floats[name] = cur + (value-cur)*(float64(dt)/float64(damping))
}

// Advance moves every playing clip forward by dt and reports the clips that
// finished, in layer order. Callbacks run after all layers have been
// advanced, so a callback that triggers a new clip starts it fresh.
func (p *Player) Advance(dt time.Duration) {
	var finished []Event
	for _, layer := range Layers {
		c := p.layers[layer]
		if c == nil {
			continue
		}
		c.remaining -= dt
		if c.remaining <= 0 {
			finished = append(finished, c.event)
			delete(p.layers, layer)
		}
	}
	if p.completion == nil {
		return
	}
	for _, ev := range finished {
		switch ev {
		case EventReload, EventReloadEmpty:
			p.completion.OnAnimationEndedReload()
		case EventInspect:
			p.completion.OnAnimationEndedInspect()
		case EventHolster, EventUnholster:
			p.completion.OnAnimationEndedHolster()
		}
	}
}

// Playing returns the clip on layer and whether one is playing.
func (p *Player) Playing(layer Layer) (Event, bool) {
	c := p.layers[layer]
	if c == nil {
		return 0, false
	}
	return c.event, true
}

// Bool returns the last value set for a bool parameter.
func (p *Player) Bool(name string) bool {
	return p.bools[name]
}

// Float returns the current value of a float parameter.
func (p *Player) Float(name string) float64 {
	return p.floats[name]
}

// History returns every event triggered so far, oldest first.
func (p *Player) History() []Event {
	out := make([]Event, len(p.history))
	copy(out, p.history)
	return out
}
