package analytics

import "github.com/Mostafa1201/coding-challenge-solution/internal/config"

// PathSeparator joins the labels of a funnel path
const PathSeparator = " => "

// VisitState is the state of the two-state entry funnels
type VisitState int

const (
	VisitNone VisitState = iota
	VisitEntered
)

func (s VisitState) String() string {
	if s == VisitEntered {
		return "entered"
	}
	return "none"
}

// ConversionFunnel pairs an entry visit with the next exit event.
// Each entry is consumed by at most one exit, so a user can re-enter and
// convert again.
type ConversionFunnel struct {
	Entry string
	Exit  string
}

// NewConversionFunnel builds the home page -> purchase funnel
func NewConversionFunnel(labels config.LabelsConfig) ConversionFunnel {
	return ConversionFunnel{
		Entry: labels.HomePage,
		Exit:  labels.Purchase,
	}
}

func (f ConversionFunnel) Transition(state VisitState, event Event) (VisitState, Effect) {
	switch {
	case state == VisitNone && event.Name == f.Entry:
		return VisitEntered, EffectNone
	case state == VisitEntered && event.Name == f.Exit:
		return VisitNone, EffectConverted
	default:
		return state, EffectNone
	}
}

// EngagementFunnel tallies every non-entry event a user produces after
// their first entry visit. Nothing consumes the visit.
type EngagementFunnel struct {
	Entry string
}

// NewEngagementFunnel builds the post home page visit funnel
func NewEngagementFunnel(labels config.LabelsConfig) EngagementFunnel {
	return EngagementFunnel{Entry: labels.HomePage}
}

func (f EngagementFunnel) Transition(state VisitState, event Event) (VisitState, Effect) {
	if event.Name == f.Entry {
		return VisitEntered, EffectNone
	}
	if state == VisitEntered {
		return VisitEntered, EffectTally
	}
	return state, EffectNone
}

// PathStep is the position of a user in the three-step funnel
type PathStep int

const (
	PathNone PathStep = iota
	PathBlogPost
	PathInCart
	PathPurchased
)

func (s PathStep) String() string {
	switch s {
	case PathBlogPost:
		return "blog_post"
	case PathInCart:
		return "in_cart"
	case PathPurchased:
		return "purchased"
	default:
		return "none"
	}
}

// PathState is one user's step plus the labels seen along the way
type PathState struct {
	Step PathStep
	Path string
}

func (s PathState) extend(step PathStep, label string) PathState {
	return PathState{Step: step, Path: s.Path + PathSeparator + label}
}

// PathFunnel tracks blog post -> add to cart -> purchase journeys.
//
// Once in the cart step every event is appended to the path, but only a
// purchase advances the step. After the purchase step only cart and
// purchase events extend the path, and each purchase completes it again.
type PathFunnel struct {
	Start    string
	Cart     string
	Purchase string
}

// NewPathFunnel builds the blog post -> cart -> purchase funnel
func NewPathFunnel(labels config.LabelsConfig) PathFunnel {
	return PathFunnel{
		Start:    labels.BlogPost,
		Cart:     labels.AddToCart,
		Purchase: labels.Purchase,
	}
}

func (f PathFunnel) Transition(state PathState, event Event) (PathState, Effect) {
	switch state.Step {
	case PathNone:
		if event.Name == f.Start {
			return PathState{Step: PathBlogPost, Path: event.Name}, EffectNone
		}
	case PathBlogPost:
		if event.Name == f.Cart {
			return state.extend(PathInCart, event.Name), EffectNone
		}
	case PathInCart:
		if event.Name == f.Purchase {
			return state.extend(PathPurchased, event.Name), EffectCompleted
		}
		return state.extend(PathInCart, event.Name), EffectNone
	case PathPurchased:
		switch event.Name {
		case f.Cart:
			return state.extend(PathPurchased, event.Name), EffectNone
		case f.Purchase:
			return state.extend(PathPurchased, event.Name), EffectCompleted
		}
	}
	return state, EffectNone
}
