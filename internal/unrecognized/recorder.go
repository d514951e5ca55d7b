package unrecognized

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/face-attendance/internal/frame"
	"github.com/kozaktomas/face-attendance/internal/store"
)

// Recorder archives frames that failed to match and appends them to the
// unrecognized log. Append-only; nothing here is ever pruned.
type Recorder struct {
	framesDir string
	log       *store.UnrecognizedLog
	now       func() time.Time
}

// NewRecorder creates a recorder writing frames into framesDir.
func NewRecorder(framesDir string, log *store.UnrecognizedLog) (*Recorder, error) {
	if err := os.MkdirAll(framesDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create frames directory: %w", err)
	}
	return &Recorder{
		framesDir: framesDir,
		log:       log,
		now:       time.Now,
	}, nil
}

// SetClock overrides the time source. Used by tests.
func (r *Recorder) SetClock(now func() time.Time) {
	r.now = now
}

// captureReference derives a unique reference from the timestamp. The uuid
// suffix disambiguates attempts within the same second.
func captureReference(ts time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("unrecognized_%s_%s", ts.Format(store.TimestampLayout), suffix)
}

// Record archives the frame as a JPEG and logs the attempt. Returns the
// generated capture reference.
func (r *Recorder) Record(f *frame.Frame) (string, error) {
	data, err := f.EncodeJPEG()
	if err != nil {
		return "", fmt.Errorf("encoding unrecognized frame: %w", err)
	}

	ts := r.now()
	ref := captureReference(ts)

	path := filepath.Join(r.framesDir, ref+".jpg")
	if err := os.WriteFile(path, data, 0640); err != nil { //nolint:gosec // path is built from a generated reference
		return "", fmt.Errorf("archiving unrecognized frame: %w", err)
	}

	if err := r.log.Append(ref, ts); err != nil {
		return "", err
	}
	return ref, nil
}
