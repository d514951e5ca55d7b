package ledger

import "time"

// Date and time-of-day layouts used across the ledger and the CSV store.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// SessionRecord is one attendance row: a login and, once closed, a logoff
// with the elapsed duration. Unique per (Name, Date).
type SessionRecord struct {
	Name      string
	Date      string // DateLayout
	Login     string // TimeLayout
	Logoff    string // TimeLayout, empty until logged off
	Duration  time.Duration
	LoggedOff bool
}

// Status classifies the outcome of a ledger mutation. Rejections are
// expected state-machine outcomes, not errors.
type Status int

const (
	StatusOK Status = iota
	StatusAlreadyLoggedIn
	StatusNotLoggedInOrAlreadyOut
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAlreadyLoggedIn:
		return "already_logged_in"
	case StatusNotLoggedInOrAlreadyOut:
		return "not_logged_in_or_already_out"
	default:
		return "unknown"
	}
}

// Result reports a ledger mutation: its status and the record as it stands
// afterwards (zero Record for rejected logoffs with no session).
type Result struct {
	Status Status
	Record SessionRecord
}

// SessionStore is the durable table of session records. The ledger reads
// the full table before every decision and writes it back after every
// mutation, so external edits between calls are honored.
type SessionStore interface {
	ReadAll() ([]SessionRecord, error)
	WriteAll(records []SessionRecord) error
}
