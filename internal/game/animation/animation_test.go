package animation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shooter/internal/config"
	"github.com/cory-johannsen/shooter/internal/game/animation"
)

type completionCounter struct {
	reload, inspect, holster int
}

func (c *completionCounter) OnAnimationEndedReload()  { c.reload++ }
func (c *completionCounter) OnAnimationEndedInspect() { c.inspect++ }
func (c *completionCounter) OnAnimationEndedHolster() { c.holster++ }

func testClips() config.AnimationConfig {
	return config.AnimationConfig{
		Reload:      200 * time.Millisecond,
		ReloadEmpty: 300 * time.Millisecond,
		Inspect:     400 * time.Millisecond,
		Holster:     100 * time.Millisecond,
	}
}

func TestEventAndLayerNames(t *testing.T) {
	assert.Equal(t, "Fire Empty", animation.EventFireEmpty.String())
	assert.Equal(t, "Unholster", animation.EventUnholster.String())
	assert.Equal(t, "unknown", animation.Event(99).String())
	assert.Equal(t, "Layer Actions", animation.LayerActions.String())
}

func TestPlayer_ReloadCompletesAfterLength(t *testing.T) {
	p := animation.NewPlayer(testClips())
	c := &completionCounter{}
	p.Bind(c)

	p.Notify(animation.EventReload, animation.LayerActions, 0)
	p.Advance(150 * time.Millisecond)
	assert.Equal(t, 0, c.reload)
	ev, ok := p.Playing(animation.LayerActions)
	require.True(t, ok)
	assert.Equal(t, animation.EventReload, ev)

	p.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, c.reload)
	_, ok = p.Playing(animation.LayerActions)
	assert.False(t, ok)

	p.Advance(time.Second)
	assert.Equal(t, 1, c.reload, "a finished clip completes once")
}

func TestPlayer_FireHasNoCompletion(t *testing.T) {
	p := animation.NewPlayer(testClips())
	c := &completionCounter{}
	p.Bind(c)
	p.Notify(animation.EventFire, animation.LayerOverlay, 50*time.Millisecond)
	p.Advance(time.Second)
	assert.Equal(t, completionCounter{}, *c)
	assert.Equal(t, []animation.Event{animation.EventFire}, p.History())
}

func TestPlayer_NewClipReplacesLayer(t *testing.T) {
	p := animation.NewPlayer(testClips())
	c := &completionCounter{}
	p.Bind(c)

	p.Notify(animation.EventHolster, animation.LayerHolster, 0)
	p.Advance(80 * time.Millisecond)
	p.Notify(animation.EventUnholster, animation.LayerHolster, 0)
	p.Advance(80 * time.Millisecond)
	assert.Equal(t, 0, c.holster, "replaced clip must not complete")
	p.Advance(20 * time.Millisecond)
	assert.Equal(t, 1, c.holster)
}

func TestPlayer_LayersRunIndependently(t *testing.T) {
	p := animation.NewPlayer(testClips())
	c := &completionCounter{}
	p.Bind(c)
	p.Notify(animation.EventInspect, animation.LayerActions, 0)
	p.Notify(animation.EventHolster, animation.LayerHolster, 0)
	p.Advance(100 * time.Millisecond)
	assert.Equal(t, 1, c.holster)
	assert.Equal(t, 0, c.inspect)
	p.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, c.inspect)
}

func TestPlayer_UnboundAdvanceDoesNotPanic(t *testing.T) {
	p := animation.NewPlayer(testClips())
	p.Notify(animation.EventReload, animation.LayerActions, 0)
	assert.NotPanics(t, func() { p.Advance(time.Second) })
}

func TestPlayer_Parameters(t *testing.T) {
	p := animation.NewPlayer(testClips())
	p.SetBool(animation.ParamAim, true)
	assert.True(t, p.Bool(animation.ParamAim))

	p.SetFloat(animation.ParamAiming, 1, 0, 16*time.Millisecond)
	assert.Equal(t, 1.0, p.Float(animation.ParamAiming))

	p.SetFloat(animation.ParamMovement, 1, 100*time.Millisecond, 50*time.Millisecond)
	assert.InDelta(t, 0.5, p.Float(animation.ParamMovement), 1e-9)
}

func TestProperty_Player_DampedFloatStaysBetween(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := animation.NewPlayer(testClips())
		target := rapid.Float64Range(0, 1).Draw(rt, "target")
		damping := time.Duration(rapid.IntRange(1, 500).Draw(rt, "damping_ms")) * time.Millisecond
		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			p.SetFloat(animation.ParamMovement, target, damping, 16*time.Millisecond)
			v := p.Float(animation.ParamMovement)
			if v < 0 || v > target+1e-9 {
				rt.Fatalf("damped value %g escaped [0, %g]", v, target)
			}
		}
	})
}

func TestLoggedSink_LogsTriggersAndForwards(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := animation.NewPlayer(testClips())
	s := animation.NewLoggedSink(p, zap.New(core))

	s.Notify(animation.EventInspect, animation.LayerActions, 0)
	s.SetBool(animation.ParamHolstered, true)
	s.SetFloat(animation.ParamAiming, 1, 0, time.Millisecond)

	ev, ok := p.Playing(animation.LayerActions)
	require.True(t, ok)
	assert.Equal(t, animation.EventInspect, ev)
	assert.True(t, p.Bool(animation.ParamHolstered))
	assert.Equal(t, 1.0, p.Float(animation.ParamAiming))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "animation trigger", logs.All()[0].Message)
	assert.Equal(t, "Inspect", logs.All()[0].ContextMap()["event"])
}
