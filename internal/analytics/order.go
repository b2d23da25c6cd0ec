package analytics

import (
	"cmp"
	"slices"
)

// SortByTimestamp returns a copy of events ordered by ascending timestamp.
// Events sharing a timestamp keep their input order.
func SortByTimestamp(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return sorted
}
