package analytics

import "slices"

// Ranked is one label with its occurrence count
type Ranked struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyTable counts label occurrences and remembers the order in which
// labels were first seen.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable creates an empty table
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{
		counts: make(map[string]int),
	}
}

// Add records one occurrence of label
func (t *FrequencyTable) Add(label string) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

// Count returns the occurrences recorded for label
func (t *FrequencyTable) Count(label string) int {
	return t.counts[label]
}

// Len returns the number of distinct labels
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Ranked returns every label by descending count. Labels with equal counts
// keep their first-seen order.
func (t *FrequencyTable) Ranked() []Ranked {
	ranked := make([]Ranked, 0, len(t.order))
	for _, label := range t.order {
		ranked = append(ranked, Ranked{Label: label, Count: t.counts[label]})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Count - a.Count
	})

	return ranked
}

// Top returns at most n entries of Ranked
func (t *FrequencyTable) Top(n int) []Ranked {
	ranked := t.Ranked()
	if n < 0 {
		n = 0
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Rank tabulates labels and returns them by descending count
func Rank(labels []string) []Ranked {
	table := NewFrequencyTable()
	for _, label := range labels {
		table.Add(label)
	}
	return table.Ranked()
}
