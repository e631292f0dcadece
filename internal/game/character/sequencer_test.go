package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	holstered bool
	calls     []string
	bound     int
}

func (h *fakeHost) isHolstered() bool { return h.holstered }

func (h *fakeHost) beginHolster() {
	h.holstered = true
	h.calls = append(h.calls, "holster")
}

func (h *fakeHost) bindWeapon(index int) {
	h.holstered = false
	h.bound = index
	h.calls = append(h.calls, "bind")
}

func TestSequencer_SuspendsUntilResume(t *testing.T) {
	var phases []SequencePhase
	s := NewSequencer(func(_, to SequencePhase, _ int) { phases = append(phases, to) })
	h := &fakeHost{}

	require.True(t, s.Start(h, 2))
	assert.Equal(t, PhaseHolsteringOut, s.Phase())
	assert.Equal(t, []string{"holster"}, h.calls)
	assert.True(t, s.InFlight())

	require.True(t, s.Resume(h))
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, 2, h.bound)
	assert.Equal(t, []string{"holster", "bind"}, h.calls)
	assert.Equal(t, []SequencePhase{PhaseHolsteringOut, PhaseBound, PhaseUnholsteringIn, PhaseIdle}, phases)
}

func TestSequencer_SkipsHolsterWhenHolstered(t *testing.T) {
	s := NewSequencer(nil)
	h := &fakeHost{holstered: true}
	require.True(t, s.Start(h, 1))
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, []string{"bind"}, h.calls)
}

func TestSequencer_RejectsSecondStart(t *testing.T) {
	s := NewSequencer(nil)
	h := &fakeHost{}
	require.True(t, s.Start(h, 1))
	assert.False(t, s.Start(h, 2))
	assert.Equal(t, 1, s.Target())
}

func TestSequencer_RetargetOnlyWhileHolsteringOut(t *testing.T) {
	s := NewSequencer(nil)
	h := &fakeHost{}
	assert.False(t, s.Retarget(3))

	require.True(t, s.Start(h, 1))
	require.True(t, s.Retarget(3))
	require.True(t, s.Resume(h))
	assert.Equal(t, 3, h.bound)
}

func TestSequencer_ResumeWhenIdleIsNoop(t *testing.T) {
	s := NewSequencer(nil)
	h := &fakeHost{}
	assert.False(t, s.Resume(h))
	assert.Empty(t, h.calls)
}

func TestSequencePhase_String(t *testing.T) {
	assert.Equal(t, "holstering_out", PhaseHolsteringOut.String())
	assert.Equal(t, "unknown", SequencePhase(42).String())
}
