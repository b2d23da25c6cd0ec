package analytics

// UniqueVisitors returns the distinct user ids that produced at least one
// event named label, in the order they were first seen.
func UniqueVisitors(events []Event, label string) []string {
	seen := make(map[string]struct{})
	visitors := make([]string, 0)

	for _, e := range events {
		if e.Name != label {
			continue
		}
		if _, ok := seen[e.UserID]; ok {
			continue
		}
		seen[e.UserID] = struct{}{}
		visitors = append(visitors, e.UserID)
	}

	return visitors
}
