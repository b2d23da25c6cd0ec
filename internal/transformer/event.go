package transformer

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
)

var (
	// ErrInvalidJSON is returned for documents that are not valid JSON
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrNotObject is returned for records that are not JSON objects
	ErrNotObject = errors.New("record is not a JSON object")
)

// ParseEvent converts one raw event record. Missing fields are left at
// their zero value.
func ParseEvent(raw gjson.Result) (analytics.Event, error) {
	if !raw.IsObject() {
		return analytics.Event{}, ErrNotObject
	}

	return analytics.Event{
		Name:      raw.Get("name").String(),
		Timestamp: parseTimestamp(raw.Get("timestamp")),
		UserID:    raw.Get("user_id").String(),
	}, nil
}

// ParseEventBytes parses a single event record, as carried by a Kafka message
func ParseEventBytes(data []byte) (analytics.Event, error) {
	if !gjson.ValidBytes(data) {
		return analytics.Event{}, ErrInvalidJSON
	}
	return ParseEvent(gjson.ParseBytes(data))
}

// ParseEvents parses an events document. The document is either
// {"events": [...]} or a bare array. Records that are not objects are
// skipped and counted.
func ParseEvents(data []byte) (events []analytics.Event, skipped int, err error) {
	if !gjson.ValidBytes(data) {
		return nil, 0, ErrInvalidJSON
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("events")
	}

	events = make([]analytics.Event, 0)
	list.ForEach(func(_, value gjson.Result) bool {
		event, err := ParseEvent(value)
		if err != nil {
			skipped++
			return true
		}
		events = append(events, event)
		return true
	})

	return events, skipped, nil
}

// ParseUser converts one raw user record. An empty id is read from the
// record's "id" field.
func ParseUser(id string, raw gjson.Result) (analytics.User, error) {
	if !raw.IsObject() {
		return analytics.User{}, ErrNotObject
	}

	if id == "" {
		id = raw.Get("id").String()
	}

	return analytics.User{
		ID:  id,
		Age: raw.Get("age").Float(),
	}, nil
}

// ParseUsers parses a users document: {"users": {"<id>": {...}}}, a
// {"users": [...]} list, or either of those without the wrapper object.
func ParseUsers(data []byte) (users analytics.Users, skipped int, err error) {
	if !gjson.ValidBytes(data) {
		return nil, 0, ErrInvalidJSON
	}

	root := gjson.ParseBytes(data)
	if wrapped := root.Get("users"); wrapped.Exists() {
		root = wrapped
	}

	users = make(analytics.Users)
	keyed := root.IsObject()
	root.ForEach(func(key, value gjson.Result) bool {
		id := ""
		if keyed {
			id = key.String()
		}
		user, err := ParseUser(id, value)
		if err != nil || user.ID == "" {
			skipped++
			return true
		}
		users[user.ID] = user
		return true
	})

	return users, skipped, nil
}

// parseTimestamp accepts numbers, numeric strings and RFC 3339 strings.
// Fractions are kept. RFC 3339 values are converted to Unix milliseconds.
func parseTimestamp(v gjson.Result) float64 {
	if v.Type != gjson.String {
		return v.Float()
	}
	if t, err := time.Parse(time.RFC3339Nano, v.Str); err == nil {
		return float64(t.UnixMilli())
	}
	return v.Float()
}
