package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/game/character"
	"github.com/cory-johannsen/shooter/internal/game/input"
)

// Replay drives an App from a recorded scenario, one tick per Step.
type Replay struct {
	app      *App
	scenario *input.Scenario
	replayer *input.Replayer
	logger   *zap.Logger
	now      time.Duration
	last     character.ActionState
	equipped int
}

// NewReplay prepares s for replay against a.
//
// Precondition: a, s, and logger must be non-nil.
func NewReplay(a *App, s *input.Scenario, logger *zap.Logger) *Replay {
	if a == nil || s == nil {
		panic("app.NewReplay: app and scenario must not be nil")
	}
	if logger == nil {
		panic("app.NewReplay: logger must not be nil")
	}
	return &Replay{
		app:      a,
		scenario: s,
		replayer: input.NewReplayer(s),
		logger:   logger,
		last:     a.Character.State(),
		equipped: a.Character.EquippedIndex(),
	}
}

// Now returns the scenario time reached so far.
func (r *Replay) Now() time.Duration { return r.now }

// Step dispatches every event due at the current scenario time, then
// advances the app by dt. It returns false once the scenario has ended.
// Satisfies tick.StepFunc.
func (r *Replay) Step(dt time.Duration) bool {
	for _, ev := range r.replayer.Due(r.now) {
		r.app.Router.Dispatch(ev)
	}
	r.app.Step(dt)
	r.now += dt
	r.logTransition()
	return r.now < r.scenario.End() || !r.replayer.Done()
}

func (r *Replay) logTransition() {
	c := r.app.Character
	state := c.State()
	idx := c.EquippedIndex()
	if state == r.last && idx == r.equipped {
		return
	}
	r.last, r.equipped = state, idx
	fields := []zap.Field{
		zap.Duration("at", r.now),
		zap.Int("equipped", idx),
		zap.Bool("aiming", state.Aiming),
		zap.Bool("running", state.Running),
		zap.Bool("jumping", state.Jumping),
		zap.Bool("reloading", state.Reloading),
		zap.Bool("inspecting", state.Inspecting),
		zap.Bool("holstering", state.Holstering),
		zap.Bool("holstered", state.Holstered),
	}
	if w := c.EquippedWeapon(); w != nil {
		fields = append(fields, zap.String("weapon", w.ID()), zap.Int("ammunition", w.Ammunition()))
	}
	r.logger.Info("state changed", fields...)
}
