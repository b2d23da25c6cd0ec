package analytics

// CountEvents returns the total number of events
func CountEvents(events []Event) int {
	return len(events)
}

// AverageAge averages the age of visitors. Visitors missing from users add
// nothing to the sum but still count in the denominator.
func AverageAge(users Users, visitors []string) float64 {
	var sum float64
	for _, id := range visitors {
		if user, ok := users[id]; ok {
			sum += user.Age
		}
	}
	return sum / float64(max(len(visitors), 1))
}

// ConversionRate returns purchases*100 / visitors for the conversion
// funnel over chronologically ordered events, along with the purchase
// count.
func ConversionRate(sorted []Event, funnel ConversionFunnel, visitors int) (float64, int) {
	tracker := NewTracker[VisitState](funnel.Transition)
	purchases := 0

	for _, e := range sorted {
		if _, effect := tracker.Observe(e); effect == EffectConverted {
			purchases++
		}
	}

	return float64(purchases*100) / float64(max(visitors, 1)), purchases
}

// TopEvents ranks the events users produce after their entry visit and
// returns at most n of them.
func TopEvents(sorted []Event, funnel EngagementFunnel, n int) []Ranked {
	tracker := NewTracker[VisitState](funnel.Transition)
	table := NewFrequencyTable()

	for _, e := range sorted {
		if _, effect := tracker.Observe(e); effect == EffectTally {
			table.Add(e.Name)
		}
	}

	return table.Top(n)
}

// CompletedPaths tabulates every completed journey of the path funnel
func CompletedPaths(sorted []Event, funnel PathFunnel) *FrequencyTable {
	tracker := NewTracker[PathState](funnel.Transition)
	table := NewFrequencyTable()

	for _, e := range sorted {
		if state, effect := tracker.Observe(e); effect == EffectCompleted {
			table.Add(state.Path)
		}
	}

	return table
}

// TopPath returns the most frequent completed path. ok is false when no
// journey was completed.
func TopPath(sorted []Event, funnel PathFunnel) (top Ranked, ok bool) {
	ranked := CompletedPaths(sorted, funnel).Top(1)
	if len(ranked) == 0 {
		return Ranked{}, false
	}
	return ranked[0], true
}
