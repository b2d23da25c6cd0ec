package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_LazyStateAndCleanup(t *testing.T) {
	tracker := NewTracker[VisitState](NewConversionFunnel(testLabels()).Transition)

	state, effect := tracker.Observe(ev(purchase, 1, "u1"))
	assert.Equal(t, VisitNone, state)
	assert.Equal(t, EffectNone, effect)
	assert.Equal(t, 0, tracker.Len())

	state, _ = tracker.Observe(ev(homePage, 2, "u1"))
	assert.Equal(t, VisitEntered, state)
	assert.Equal(t, VisitEntered, tracker.State("u1"))
	assert.Equal(t, VisitNone, tracker.State("u2"))
	assert.Equal(t, 1, tracker.Len())

	state, effect = tracker.Observe(ev(purchase, 3, "u1"))
	assert.Equal(t, VisitNone, state)
	assert.Equal(t, EffectConverted, effect)
	assert.Equal(t, 0, tracker.Len())
}

func TestTracker_UsersAreIndependent(t *testing.T) {
	tracker := NewTracker[VisitState](NewConversionFunnel(testLabels()).Transition)

	tracker.Observe(ev(homePage, 1, "u1"))
	_, effect := tracker.Observe(ev(purchase, 2, "u2"))

	assert.Equal(t, EffectNone, effect)
	assert.Equal(t, VisitEntered, tracker.State("u1"))
	assert.Equal(t, VisitNone, tracker.State("u2"))
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "none", EffectNone.String())
	assert.Equal(t, "converted", EffectConverted.String())
	assert.Equal(t, "tally", EffectTally.String())
	assert.Equal(t, "completed", EffectCompleted.String())
}
