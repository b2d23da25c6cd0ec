package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

var (
	// ErrLoadEvents wraps failures of the event log source
	ErrLoadEvents = errors.New("failed to load events")
	// ErrLoadUsers wraps failures of the user registry source
	ErrLoadUsers = errors.New("failed to load users")
)

// EventSource provides the event log
type EventSource interface {
	LoadEvents(ctx context.Context) ([]analytics.Event, error)
}

// UserSource provides the user registry
type UserSource interface {
	LoadUsers(ctx context.Context) (analytics.Users, error)
}

// Processor loads both datasets and runs a single analysis pass over them
type Processor struct {
	events   EventSource
	users    UserSource
	analyzer *analytics.Analyzer
}

// NewProcessor creates a new processor
func NewProcessor(events EventSource, users UserSource, cfg config.AnalysisConfig) *Processor {
	return &Processor{
		events:   events,
		users:    users,
		analyzer: analytics.NewAnalyzer(cfg),
	}
}

// TopN returns how many ranked events each report carries
func (p *Processor) TopN() int {
	return p.analyzer.TopN()
}

// Run loads the inputs and computes the report
func (p *Processor) Run(ctx context.Context) (*analytics.Report, error) {
	logger := log.With().Str("run_id", uuid.NewString()).Logger()
	start := time.Now()

	events, err := p.events.LoadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadEvents, err)
	}
	logger.Debug().Int("events", len(events)).Dur("duration", time.Since(start)).Msg("Loaded events")

	loaded := time.Now()
	users, err := p.users.LoadUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadUsers, err)
	}
	logger.Debug().Int("users", len(users)).Dur("duration", time.Since(loaded)).Msg("Loaded users")

	analyzed := time.Now()
	report := p.analyzer.Analyze(events, users)

	logger.Info().
		Int("events", report.EventCount).
		Int("users", len(users)).
		Int("unique_visitors", report.UniqueVisitors).
		Int("purchases", report.Purchases).
		Dur("analysis", time.Since(analyzed)).
		Dur("duration", time.Since(start)).
		Msg("Analysis complete")

	return report, nil
}
