package analytics

// Event is a single action from the event log
type Event struct {
	Name      string
	Timestamp float64
	UserID    string
}

// User is an entry of the user registry
type User struct {
	ID  string
	Age float64
}

// Users maps a stringified user id to its registry entry
type Users map[string]User
