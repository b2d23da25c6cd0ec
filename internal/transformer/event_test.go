package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

func TestParseEvent(t *testing.T) {
	event, err := ParseEvent(gjson.Parse(`{"name":"Visited home page","timestamp":1589456123,"user_id":42}`))
	require.NoError(t, err)
	assert.Equal(t, analytics.Event{Name: "Visited home page", Timestamp: 1589456123, UserID: "42"}, event)

	event, err = ParseEvent(gjson.Parse(`{"name":"Added item to cart","timestamp":"17","user_id":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, analytics.Event{Name: "Added item to cart", Timestamp: 17, UserID: "abc"}, event)
}

func TestParseEvent_RFC3339Timestamp(t *testing.T) {
	event, err := ParseEvent(gjson.Parse(`{"name":"x","timestamp":"2020-05-14T10:00:00Z","user_id":1}`))
	require.NoError(t, err)
	assert.Equal(t, float64(1589450400000), event.Timestamp)
}

func TestParseEvent_MissingFields(t *testing.T) {
	event, err := ParseEvent(gjson.Parse(`{}`))
	require.NoError(t, err)
	assert.Equal(t, analytics.Event{}, event)

	_, err = ParseEvent(gjson.Parse(`[1,2]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestParseEventBytes(t *testing.T) {
	event, err := ParseEventBytes([]byte(`{"name":"Purchased items in cart","timestamp":5,"user_id":7}`))
	require.NoError(t, err)
	assert.Equal(t, "7", event.UserID)

	_, err = ParseEventBytes([]byte(`{"name":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestParseEvents(t *testing.T) {
	doc := `{"events":[
		{"name":"Visited home page","timestamp":3,"user_id":1},
		"garbage",
		{"name":"Visited blog post","timestamp":1,"user_id":2}
	]}`

	events, skipped, err := ParseEvents([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, events, 2)
	assert.Equal(t, "Visited home page", events[0].Name)
	assert.Equal(t, "2", events[1].UserID)
}

func TestParseEvents_BareArray(t *testing.T) {
	events, skipped, err := ParseEvents([]byte(`[{"name":"a","timestamp":1,"user_id":1}]`))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, events, 1)
}

func TestParseEvents_Empty(t *testing.T) {
	events, _, err := ParseEvents([]byte(`{"events":[]}`))
	require.NoError(t, err)
	assert.Empty(t, events)

	events, _, err = ParseEvents([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseEvents_InvalidJSON(t *testing.T) {
	_, _, err := ParseEvents([]byte(`{"events": [`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestParseUsers_Keyed(t *testing.T) {
	doc := `{"users":{
		"1":{"age":25,"name":"a"},
		"2":{"id":99,"age":31.5},
		"3":"garbage"
	}}`

	users, skipped, err := ParseUsers([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, analytics.Users{
		"1": {ID: "1", Age: 25},
		"2": {ID: "2", Age: 31.5},
	}, users)
}

func TestParseUsers_List(t *testing.T) {
	doc := `[{"id":1,"age":20},{"id":"x","age":"40"},{"age":50}]`

	users, skipped, err := ParseUsers([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, analytics.Users{
		"1": {ID: "1", Age: 20},
		"x": {ID: "x", Age: 40},
	}, users)
}

func TestParseUsers_InvalidJSON(t *testing.T) {
	_, _, err := ParseUsers([]byte(`nope`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestParseEvent_FractionalTimestamp(t *testing.T) {
	event, err := ParseEvent(gjson.Parse(`{"name":"x","timestamp":10.7,"user_id":1}`))
	require.NoError(t, err)
	assert.Equal(t, 10.7, event.Timestamp)

	event, err = ParseEvent(gjson.Parse(`{"name":"x","timestamp":"10.2","user_id":1}`))
	require.NoError(t, err)
	assert.Equal(t, 10.2, event.Timestamp)
}

func TestParseEvent_NameKeptVerbatim(t *testing.T) {
	event, err := ParseEvent(gjson.Parse(`{"name":" Visited home page ","timestamp":1,"user_id":1}`))
	require.NoError(t, err)
	assert.Equal(t, " Visited home page ", event.Name)
}

func TestParseEvents_FractionalTimestampsOrderFunnel(t *testing.T) {
	doc := `{"events":[
		{"name":"Purchased items in cart","timestamp":10.7,"user_id":"u1"},
		{"name":"Visited home page","timestamp":10.2,"user_id":"u1"}
	]}`

	events, _, err := ParseEvents([]byte(doc))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 10.7, events[0].Timestamp)
	assert.Equal(t, 10.2, events[1].Timestamp)

	report := analytics.NewAnalyzer(config.Default().Analysis).Analyze(events, nil)
	assert.Equal(t, 1, report.Purchases)
	assert.Equal(t, 100.0, report.ConversionRate)
}
