package ledger

import (
	"fmt"
	"sync"
	"time"
)

// Ledger enforces the per-(identity, date) session state machine:
// no session -> logged in -> logged off, terminal for the day.
//
// Each mutation is a read-decide-write critical section over the full
// durable table. The mutex serializes those sections so two concurrent
// logins can never both observe "no session" and double-create a row.
type Ledger struct {
	store SessionStore
	mu    sync.Mutex
	now   func() time.Time
}

// New creates a ledger over the given store.
func New(store SessionStore) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// findRecord returns the index of the (name, date) record, or -1.
func findRecord(records []SessionRecord, name, date string) int {
	for i := range records {
		if records[i].Name == name && records[i].Date == date {
			return i
		}
	}
	return -1
}

// RecordLogin creates the day's session record for the identity. A second
// login on the same day is reported as StatusAlreadyLoggedIn and mutates
// nothing.
func (l *Ledger) RecordLogin(name string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	date := now.Format(DateLayout)

	records, err := l.store.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading attendance table: %w", err)
	}

	if i := findRecord(records, name, date); i >= 0 {
		return Result{Status: StatusAlreadyLoggedIn, Record: records[i]}, nil
	}

	record := SessionRecord{
		Name:  name,
		Date:  date,
		Login: now.Format(TimeLayout),
	}
	records = append(records, record)

	if err := l.store.WriteAll(records); err != nil {
		return Result{}, fmt.Errorf("writing attendance table: %w", err)
	}

	return Result{Status: StatusOK, Record: record}, nil
}

// RecordLogoff closes the day's session and computes the elapsed duration.
// Logoff without a login, or after the session already closed, is reported
// as StatusNotLoggedInOrAlreadyOut and mutates nothing.
func (l *Ledger) RecordLogoff(name string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	date := now.Format(DateLayout)

	records, err := l.store.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading attendance table: %w", err)
	}

	i := findRecord(records, name, date)
	if i < 0 {
		return Result{Status: StatusNotLoggedInOrAlreadyOut}, nil
	}
	if records[i].LoggedOff {
		return Result{Status: StatusNotLoggedInOrAlreadyOut, Record: records[i]}, nil
	}

	logoff := now.Format(TimeLayout)
	duration, err := Elapsed(records[i].Login, logoff)
	if err != nil {
		return Result{}, fmt.Errorf("computing session duration: %w", err)
	}

	records[i].Logoff = logoff
	records[i].Duration = duration
	records[i].LoggedOff = true

	if err := l.store.WriteAll(records); err != nil {
		return Result{}, fmt.Errorf("writing attendance table: %w", err)
	}

	return Result{Status: StatusOK, Record: records[i]}, nil
}

// Query returns the session record for (name, date), if any. Never mutates.
func (l *Ledger) Query(name, date string) (SessionRecord, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.store.ReadAll()
	if err != nil {
		return SessionRecord{}, false, fmt.Errorf("reading attendance table: %w", err)
	}

	if i := findRecord(records, name, date); i >= 0 {
		return records[i], true, nil
	}
	return SessionRecord{}, false, nil
}

// List returns all session records for the given date, in table order.
func (l *Ledger) List(date string) ([]SessionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.store.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading attendance table: %w", err)
	}

	var out []SessionRecord
	for _, r := range records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}
