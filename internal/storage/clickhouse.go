package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

// ClickHouse reads the event log from a ClickHouse table with
// name, timestamp and user_id columns.
type ClickHouse struct {
	conn  driver.Conn
	table string
}

// ErrInvalidTable is returned for table names that are not plain
// [database.]table identifiers
var ErrInvalidTable = errors.New("invalid table name")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quoteTable backquotes each part of a [database.]table name
func quoteTable(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	for i, part := range parts {
		if !identifierPattern.MatchString(part) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTable, name)
		}
		parts[i] = "`" + part + "`"
	}
	return strings.Join(parts, "."), nil
}

func NewClickHouse(ctx context.Context, cfg config.ClickHouseConfig) (*ClickHouse, error) {
	table, err := quoteTable(cfg.Table)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &ClickHouse{conn: conn, table: table}, nil
}

// eventsQuery selects the raw event log from an already quoted table.
// Ordering is left to the analyzer, which needs a stable sort the database
// does not promise.
func eventsQuery(table string) string {
	return fmt.Sprintf(`
		SELECT name, toFloat64(timestamp), toString(user_id)
		FROM %s
	`, table)
}

func (c *ClickHouse) LoadEvents(ctx context.Context) ([]analytics.Event, error) {
	rows, err := c.conn.Query(ctx, eventsQuery(c.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]analytics.Event, 0)
	for rows.Next() {
		var e analytics.Event
		if err := rows.Scan(&e.Name, &e.Timestamp, &e.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during events query: %w", err)
	}

	return events, nil
}

func (c *ClickHouse) Close() error {
	return c.conn.Close()
}
