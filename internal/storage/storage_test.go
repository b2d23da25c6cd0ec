package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
	"github.com/Mostafa1201/coding-challenge-solution/internal/transformer"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFileEvents_LoadEvents(t *testing.T) {
	path := writeFile(t, "events.json", `{"events":[
		{"name":"Visited home page","timestamp":2,"user_id":1},
		{"name":"Purchased items in cart","timestamp":1,"user_id":1}
	]}`)

	events, err := NewFileEvents(path).LoadEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []analytics.Event{
		{Name: "Visited home page", Timestamp: 2, UserID: "1"},
		{Name: "Purchased items in cart", Timestamp: 1, UserID: "1"},
	}, events)
}

func TestFileUsers_LoadUsers(t *testing.T) {
	path := writeFile(t, "users.json", `{"users":{"1":{"age":33},"2":{"age":27}}}`)

	users, err := NewFileUsers(path).LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analytics.Users{
		"1": {ID: "1", Age: 33},
		"2": {ID: "2", Age: 27},
	}, users)
}

func TestFile_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewFileEvents(missing).LoadEvents(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)

	_, err = NewFileUsers(missing).LoadUsers(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_InvalidJSON(t *testing.T) {
	path := writeFile(t, "events.json", `{"events":`)

	_, err := NewFileEvents(path).LoadEvents(context.Background())
	assert.ErrorIs(t, err, transformer.ErrInvalidJSON)

	_, err = NewFileUsers(path).LoadUsers(context.Background())
	assert.ErrorIs(t, err, transformer.ErrInvalidJSON)
}

func TestFile_CancelledContext(t *testing.T) {
	path := writeFile(t, "events.json", `{"events":[]}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileEvents(path).LoadEvents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueries(t *testing.T) {
	assert.Contains(t, eventsQuery("`raw_events`"), "FROM `raw_events`")
	assert.Contains(t, eventsQuery("`raw_events`"), "toFloat64(timestamp)")
	assert.Equal(t, `SELECT id::text, age::float8 FROM "users"`, usersQuery("users"))
	assert.True(t, strings.HasSuffix(usersQuery("public.users"), `FROM "public"."users"`))
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		want    string
		wantErr bool
	}{
		{"plain", "events", "`events`", false},
		{"with database", "analytics.events", "`analytics`.`events`", false},
		{"injection", "events; DROP TABLE users", "", true},
		{"backquote", "ev`ents", "", true},
		{"empty", "", "", true},
		{"too many parts", "a.b.c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quoteTable(tt.table)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClickHouse_InvalidTable(t *testing.T) {
	_, err := NewClickHouse(context.Background(), config.ClickHouseConfig{Addr: "127.0.0.1:1", Table: "events; --"})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestNewClickHouse_UnreachableWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClickHouse(ctx, config.ClickHouseConfig{Addr: "127.0.0.1:1", Table: "events"})
	assert.Error(t, err)
}
