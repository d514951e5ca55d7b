package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// TimestampLayout is the compact timestamp format used in the
// unrecognized log and in capture file names.
const TimestampLayout = "20060102_150405"

// UnrecognizedLog is the append-only two-column table of failed-match
// events. No retention, no dedup; housekeeping is external.
type UnrecognizedLog struct {
	path string
}

// NewUnrecognizedLog creates a log writer for the given path.
func NewUnrecognizedLog(path string) *UnrecognizedLog {
	return &UnrecognizedLog{path: path}
}

// Append adds one (captureReference, timestamp) row, creating the file on
// first use.
func (u *UnrecognizedLog) Append(captureRef string, ts time.Time) error {
	f, err := os.OpenFile(u.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640) //nolint:gosec // path is from trusted config
	if err != nil {
		return fmt.Errorf("failed to open unrecognized log: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{captureRef, ts.Format(TimestampLayout)}); err != nil {
		return fmt.Errorf("failed to append unrecognized entry: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush unrecognized log: %w", err)
	}
	return nil
}

// Entry is one row of the unrecognized log.
type Entry struct {
	CaptureRef string
	Timestamp  string
}

// ReadAll returns every logged attempt in file order.
func (u *UnrecognizedLog) ReadAll() ([]Entry, error) {
	f, err := os.Open(u.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open unrecognized log: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse unrecognized log: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("unrecognized log row %d has %d columns, expected 2", i+1, len(row))
		}
		entries = append(entries, Entry{CaptureRef: row[0], Timestamp: row[1]})
	}
	return entries, nil
}
