package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kozaktomas/face-attendance/internal/ledger"
)

// attendanceHeader is the fixed column layout of the attendance table.
var attendanceHeader = []string{"Name", "Date", "LoginTime", "LogoffTime", "Duration"}

// CSVStore persists session records as a flat UTF-8 CSV with a header row.
// The file is the source of truth: every read parses it fresh, every write
// replaces it whole via temp-file rename, so external editors and this
// process never see a half-written table.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store for the given attendance file path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Path returns the attendance file path.
func (s *CSVStore) Path() string {
	return s.path
}

// ReadAll parses the full attendance table. A missing file reads as an
// empty table.
func (s *CSVStore) ReadAll() ([]ledger.SessionRecord, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open attendance file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse attendance file: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	var records []ledger.SessionRecord
	for i, row := range rows[1:] { // skip header
		if len(row) != len(attendanceHeader) {
			return nil, fmt.Errorf("attendance row %d has %d columns, expected %d", i+2, len(row), len(attendanceHeader))
		}

		record := ledger.SessionRecord{
			Name:   row[0],
			Date:   row[1],
			Login:  row[2],
			Logoff: row[3],
		}
		if row[3] != "" {
			record.LoggedOff = true
			d, err := parseDurationCell(row[4])
			if err != nil {
				return nil, fmt.Errorf("attendance row %d: %w", i+2, err)
			}
			record.Duration = d
		}
		records = append(records, record)
	}

	return records, nil
}

// WriteAll replaces the attendance table with the given records.
func (s *CSVStore) WriteAll(records []ledger.SessionRecord) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp attendance file: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(attendanceHeader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write attendance header: %w", err)
	}

	for _, r := range records {
		logoff, duration := "", ""
		if r.LoggedOff {
			logoff = r.Logoff
			duration = formatDurationCell(r.Duration)
		}
		row := []string{r.Name, r.Date, r.Login, logoff, duration}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("failed to write attendance row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush attendance file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp attendance file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace attendance file: %w", err)
	}
	return nil
}

// formatDurationCell renders an exact duration as HH:MM:SS.
func formatDurationCell(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// parseDurationCell parses an HH:MM:SS duration cell.
func parseDurationCell(s string) (time.Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid duration cell %q: %w", s, err)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
