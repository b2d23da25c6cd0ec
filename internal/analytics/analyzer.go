package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

// Report holds the five answers plus the values they were derived from
type Report struct {
	EventCount     int      `json:"event_count"`
	AverageAge     float64  `json:"average_age"`
	ConversionRate float64  `json:"conversion_rate"`
	TopEvents      []Ranked `json:"top_events"`
	TopPath        *Ranked  `json:"top_path,omitempty"`

	UniqueVisitors int `json:"unique_visitors"`
	Purchases      int `json:"purchases"`
}

// TopEventLabels returns the labels of TopEvents in rank order
func (r *Report) TopEventLabels() []string {
	labels := make([]string, 0, len(r.TopEvents))
	for _, e := range r.TopEvents {
		labels = append(labels, e.Label)
	}
	return labels
}

// TopPathLabel returns the most frequent path, or "" when none completed
func (r *Report) TopPathLabel() string {
	if r.TopPath == nil {
		return ""
	}
	return r.TopPath.Label
}

// Answers renders the five answers in their fixed order
func (r *Report) Answers(topN int) []string {
	labels := r.TopEventLabels()
	ranks := make([]string, 0, topN)
	for i := 0; i < topN; i++ {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		ranks = append(ranks, fmt.Sprintf("%d- %s", i+1, label))
	}

	return []string{
		fmt.Sprintf("First Question Answer is: %d", r.EventCount),
		fmt.Sprintf("Second Question Answer is: %s", formatFloat(r.AverageAge)),
		fmt.Sprintf("Third Question Answer is: %s", formatFloat(r.ConversionRate)),
		fmt.Sprintf("Fourth Question Answer is: %s", strings.Join(ranks, " , ")),
		fmt.Sprintf("Fifth Question Answer is: %s", r.TopPathLabel()),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Analyzer runs every metric calculator over one event log
type Analyzer struct {
	conversion ConversionFunnel
	engagement EngagementFunnel
	path       PathFunnel
	homePage   string
	topEvents  int
}

// NewAnalyzer creates an analyzer for the configured labels
func NewAnalyzer(cfg config.AnalysisConfig) *Analyzer {
	return &Analyzer{
		conversion: NewConversionFunnel(cfg.Labels),
		engagement: NewEngagementFunnel(cfg.Labels),
		path:       NewPathFunnel(cfg.Labels),
		homePage:   cfg.Labels.HomePage,
		topEvents:  cfg.TopEvents,
	}
}

// TopN returns how many ranked events the analyzer reports
func (a *Analyzer) TopN() int {
	return a.topEvents
}

// Analyze computes the report. events is not modified.
func (a *Analyzer) Analyze(events []Event, users Users) *Report {
	sorted := SortByTimestamp(events)
	visitors := UniqueVisitors(events, a.homePage)

	report := &Report{
		EventCount:     CountEvents(events),
		AverageAge:     AverageAge(users, visitors),
		TopEvents:      TopEvents(sorted, a.engagement, a.topEvents),
		UniqueVisitors: len(visitors),
	}
	report.ConversionRate, report.Purchases = ConversionRate(sorted, a.conversion, len(visitors))

	if top, ok := TopPath(sorted, a.path); ok {
		report.TopPath = &top
	}

	return report
}
