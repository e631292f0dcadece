package input_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shooter/internal/game/animation"
	"github.com/cory-johannsen/shooter/internal/game/character"
	"github.com/cory-johannsen/shooter/internal/game/input"
	"github.com/cory-johannsen/shooter/internal/game/inventory"
	"github.com/cory-johannsen/shooter/internal/game/weapon"
)

func newCharacter(t *testing.T) *character.Character {
	t.Helper()
	records := []*weapon.Record{
		{ID: "pistol", Name: "Handgun", FiringMode: weapon.FiringModeSingle, RateOfFire: 600, AmmunitionCapacity: 12},
		{ID: "rifle", Name: "Rifle", FiringMode: weapon.FiringModeAutomatic, RateOfFire: 600, AmmunitionCapacity: 30},
	}
	ws := make([]*weapon.Weapon, 0, len(records))
	for _, r := range records {
		ws = append(ws, weapon.NewWeapon(r, weapon.FillHooks{}))
	}
	inv := inventory.New(ws)
	inv.Init(0)
	return character.New(inv, animation.NopSink{}, character.Settings{CursorLocked: true}, zaptest.NewLogger(t))
}

func TestEvent_Validate(t *testing.T) {
	assert.NoError(t, input.Performed(input.ActionReload).Validate())
	assert.ErrorIs(t, input.Event{Action: "dance", Phase: input.PhasePerformed}.Validate(), input.ErrUnknownAction)
	assert.ErrorIs(t, input.Event{Action: input.ActionFire, Phase: "held"}.Validate(), input.ErrUnknownPhase)
}

func TestRouter_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { input.NewRouter(nil, zap.NewNop()) })
	assert.Panics(t, func() { input.NewRouter(newCharacter(t), nil) })
}

func TestRouter_HoldActionsTrackPress(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))

	for _, a := range []input.Action{input.ActionFire, input.ActionAim, input.ActionRun, input.ActionJump} {
		require.True(t, r.Dispatch(input.Started(a)))
	}
	assert.Equal(t, character.Held{Fire: true, Aim: true, Run: true, Jump: true}, c.State().Held)

	for _, a := range []input.Action{input.ActionFire, input.ActionAim, input.ActionRun, input.ActionJump} {
		require.True(t, r.Dispatch(input.Canceled(a)))
	}
	assert.Equal(t, character.Held{}, c.State().Held)
}

func TestRouter_FirePerformedFires(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))
	assert.True(t, r.Dispatch(input.Performed(input.ActionFire)))
	assert.Equal(t, 11, c.EquippedWeapon().Ammunition())
	assert.False(t, r.Dispatch(input.Performed(input.ActionFire)), "gated")
}

func TestRouter_OneShotActionsOnlyOnPerformed(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))

	assert.False(t, r.Dispatch(input.Started(input.ActionReload)))
	assert.False(t, c.State().Reloading)
	assert.True(t, r.Dispatch(input.Performed(input.ActionReload)))
	assert.True(t, c.State().Reloading)
	c.OnAnimationEndedReload()

	assert.True(t, r.Dispatch(input.Performed(input.ActionInspect)))
	c.OnAnimationEndedInspect()

	assert.True(t, r.Dispatch(input.Performed(input.ActionHolster)))
	assert.True(t, c.IsHolstered())
	c.OnAnimationEndedHolster()
}

func TestRouter_NextWeaponUsesScrollSign(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))

	require.True(t, r.Dispatch(input.Event{Action: input.ActionNextWeapon, Phase: input.PhasePerformed}))
	c.OnAnimationEndedHolster()
	assert.Equal(t, 1, c.EquippedIndex())

	require.True(t, r.Dispatch(input.Event{
		Action: input.ActionNextWeapon,
		Phase:  input.PhasePerformed,
		Value:  character.Vec2{Y: -1},
	}))
	c.OnAnimationEndedHolster()
	assert.Equal(t, 0, c.EquippedIndex())
}

func TestRouter_UnlockedCursorGatesGameplay(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))
	r.Dispatch(input.Axis(input.ActionMove, character.Vec2{Y: 1}))
	require.Equal(t, character.Vec2{Y: 1}, c.Movement())

	require.True(t, r.Dispatch(input.Performed(input.ActionLockCursor)))
	require.False(t, c.CursorLocked())

	assert.False(t, r.Dispatch(input.Performed(input.ActionFire)))
	assert.False(t, r.Dispatch(input.Started(input.ActionAim)))
	assert.False(t, r.Dispatch(input.Performed(input.ActionReload)))
	assert.Equal(t, 12, c.EquippedWeapon().Ammunition())
	assert.False(t, c.State().Held.Aim)

	r.Dispatch(input.Axis(input.ActionMove, character.Vec2{Y: 1}))
	r.Dispatch(input.Axis(input.ActionLook, character.Vec2{X: 1}))
	assert.Equal(t, character.Vec2{}, c.Movement())
	assert.Equal(t, character.Vec2{}, c.Look())

	assert.True(t, r.Dispatch(input.Started(input.ActionTutorial)))
	assert.True(t, c.TutorialVisible())
	assert.True(t, r.Dispatch(input.Canceled(input.ActionTutorial)))
	assert.False(t, c.TutorialVisible())

	require.True(t, r.Dispatch(input.Performed(input.ActionLockCursor)))
	assert.True(t, r.Dispatch(input.Performed(input.ActionFire)))
}

func TestRouter_ReleaseRecordedWhileUnlocked(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))
	require.True(t, c.TrySwitchWeapon(1))
	c.OnAnimationEndedHolster()
	require.Equal(t, "rifle", c.EquippedWeapon().ID())

	require.True(t, r.Dispatch(input.Started(input.ActionFire)))
	c.Tick(16 * time.Millisecond)
	require.Equal(t, 29, c.EquippedWeapon().Ammunition())

	require.True(t, r.Dispatch(input.Performed(input.ActionLockCursor)))
	require.False(t, c.CursorLocked())
	assert.True(t, r.Dispatch(input.Canceled(input.ActionFire)))
	assert.False(t, c.State().Held.Fire)

	for i := 0; i < 10; i++ {
		c.Tick(200 * time.Millisecond)
	}
	assert.Equal(t, 29, c.EquippedWeapon().Ammunition())
}

func TestRouter_MoveCanceledZeroes(t *testing.T) {
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))
	r.Dispatch(input.Axis(input.ActionMove, character.Vec2{X: 0.5, Y: 1}))
	r.Dispatch(input.Event{Action: input.ActionMove, Phase: input.PhaseCanceled, Value: character.Vec2{Y: 1}})
	assert.Equal(t, character.Vec2{}, c.Movement())
}

func TestRouter_InvalidEventLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := input.NewRouter(newCharacter(t), zap.New(core))
	assert.False(t, r.Dispatch(input.Event{Action: "dance", Phase: input.PhasePerformed}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "dropping input event", logs.All()[0].Message)
}

const sampleScenario = `
name: switch-and-fire
events:
  - at: 200ms
    action: fire
    phase: performed
  - at: 0s
    action: move
    phase: performed
    value: {x: 0, y: 1}
  - at: 200ms
    action: reload
    phase: performed
`

func TestParseScenario_SortsStably(t *testing.T) {
	s, err := input.ParseScenario([]byte(sampleScenario))
	require.NoError(t, err)
	require.Len(t, s.Events, 3)
	assert.Equal(t, input.ActionMove, s.Events[0].Action)
	assert.Equal(t, character.Vec2{Y: 1}, s.Events[0].Value)
	assert.Equal(t, input.ActionFire, s.Events[1].Action)
	assert.Equal(t, input.ActionReload, s.Events[2].Action)
	assert.Equal(t, 200*time.Millisecond, s.End())
}

func TestParseScenario_Invalid(t *testing.T) {
	_, err := input.ParseScenario([]byte("name: bad\nevents:\n  - at: 0s\n    action: dance\n    phase: performed\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, input.ErrUnknownAction)

	_, err = input.ParseScenario([]byte("events: []\n"))
	assert.Error(t, err, "name is required")
}

func TestLoadScenario_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScenario+"duration: 1s\n"), 0o644))
	s, err := input.LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, s.End())

	_, err = input.LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestReplayer_DrivesCharacter(t *testing.T) {
	s, err := input.ParseScenario([]byte(sampleScenario))
	require.NoError(t, err)
	c := newCharacter(t)
	r := input.NewRouter(c, zaptest.NewLogger(t))
	rp := input.NewReplayer(s)

	step := 100 * time.Millisecond
	for now := time.Duration(0); !rp.Done(); now += step {
		c.Tick(step)
		for _, ev := range rp.Due(now) {
			r.Dispatch(ev)
		}
	}
	assert.Equal(t, character.Vec2{Y: 1}, c.Movement())
	assert.True(t, c.State().Reloading)
	assert.Equal(t, 12, c.EquippedWeapon().Ammunition(), "fired then refilled")
	assert.Empty(t, rp.Due(time.Hour))
}

func TestProperty_Replayer_ReturnsEveryEventOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "n")
		s := &input.Scenario{Name: "p"}
		var at time.Duration
		for i := 0; i < n; i++ {
			at += time.Duration(rapid.IntRange(0, 60).Draw(rt, "gap_ms")) * time.Millisecond
			s.Events = append(s.Events, input.TimedEvent{At: at, Event: input.Performed(input.ActionReload)})
		}
		rp := input.NewReplayer(s)
		total := 0
		for now := time.Duration(0); !rp.Done(); now += 37 * time.Millisecond {
			total += len(rp.Due(now))
		}
		if total != n || !rp.Done() {
			rt.Fatalf("replayed %d of %d events", total, n)
		}
	})
}
