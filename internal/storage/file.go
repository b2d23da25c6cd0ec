package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/transformer"
)

// FileEvents reads the event log from a JSON file
type FileEvents struct {
	path string
}

func NewFileEvents(path string) *FileEvents {
	return &FileEvents{path: path}
}

func (f *FileEvents) LoadEvents(ctx context.Context) ([]analytics.Event, error) {
	data, err := readFile(ctx, f.path)
	if err != nil {
		return nil, err
	}

	events, skipped, err := transformer.ParseEvents(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if skipped > 0 {
		log.Warn().Str("path", f.path).Int("skipped", skipped).Msg("Skipped malformed event records")
	}

	return events, nil
}

// FileUsers reads the user registry from a JSON file
type FileUsers struct {
	path string
}

func NewFileUsers(path string) *FileUsers {
	return &FileUsers{path: path}
}

func (f *FileUsers) LoadUsers(ctx context.Context) (analytics.Users, error) {
	data, err := readFile(ctx, f.path)
	if err != nil {
		return nil, err
	}

	users, skipped, err := transformer.ParseUsers(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if skipped > 0 {
		log.Warn().Str("path", f.path).Int("skipped", skipped).Msg("Skipped malformed user records")
	}

	return users, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return data, nil
}
