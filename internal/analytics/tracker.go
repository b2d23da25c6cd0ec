package analytics

// Effect is the side effect a funnel transition asks its caller to apply
type Effect int

const (
	EffectNone Effect = iota
	// EffectConverted counts one visit that ended in a purchase
	EffectConverted
	// EffectTally counts the event name after an entry visit
	EffectTally
	// EffectCompleted counts the current path as a completed journey
	EffectCompleted
)

func (e Effect) String() string {
	switch e {
	case EffectConverted:
		return "converted"
	case EffectTally:
		return "tally"
	case EffectCompleted:
		return "completed"
	default:
		return "none"
	}
}

// TransitionFunc advances one user's state by one event.
// The zero value of S is the untracked (NONE) state.
type TransitionFunc[S comparable] func(state S, event Event) (S, Effect)

// Tracker holds per-user funnel state for a single forward pass over a
// chronologically ordered event log.
type Tracker[S comparable] struct {
	transition TransitionFunc[S]
	states     map[string]S
}

// NewTracker creates a tracker driven by fn
func NewTracker[S comparable](fn TransitionFunc[S]) *Tracker[S] {
	return &Tracker[S]{
		transition: fn,
		states:     make(map[string]S),
	}
}

// Observe feeds one event to the owning user's state machine and returns
// the user's new state along with the transition's effect.
func (t *Tracker[S]) Observe(event Event) (S, Effect) {
	current := t.states[event.UserID]
	next, effect := t.transition(current, event)

	var none S
	if next == none {
		// Users back at NONE carry no state
		delete(t.states, event.UserID)
	} else {
		t.states[event.UserID] = next
	}

	return next, effect
}

// State returns the current state of userID, or the zero state if the user
// is not tracked.
func (t *Tracker[S]) State(userID string) S {
	return t.states[userID]
}

// Len returns the number of users currently holding a non-NONE state
func (t *Tracker[S]) Len() int {
	return len(t.states)
}
