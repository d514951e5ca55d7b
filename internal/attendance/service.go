package attendance

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/frame"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/kozaktomas/face-attendance/internal/matcher"
	"github.com/kozaktomas/face-attendance/internal/unrecognized"
)

// maxFrameDim caps frames before they go to the embedding service.
const maxFrameDim = 1024

// Decision is the outcome of one login or logoff attempt.
type Decision struct {
	Identity   string
	Matched    bool
	Status     ledger.Status
	Message    string
	Record     ledger.SessionRecord
	CaptureRef string // set when the attempt went to the unrecognized log
}

// Service is the core facade the UI layer talks to. It wires the gallery,
// matcher, ledger and unrecognized recorder into the
// match-then-mark-attendance flow.
type Service struct {
	gallery  *gallery.Gallery
	matcher  *matcher.Matcher
	ledger   *ledger.Ledger
	recorder *unrecognized.Recorder
	detector gallery.Detector
}

// NewService assembles the attendance core.
func NewService(g *gallery.Gallery, m *matcher.Matcher, l *ledger.Ledger, r *unrecognized.Recorder, d gallery.Detector) *Service {
	return &Service{
		gallery:  g,
		matcher:  m,
		ledger:   l,
		recorder: r,
		detector: d,
	}
}

// recognize decodes and validates the image, detects faces, and matches
// each face independently against the current gallery snapshot. The first
// matching face wins; faces have no cross-face interaction.
func (s *Service) recognize(ctx context.Context, imageData []byte) (identity string, f *frame.Frame, err error) {
	f, err = frame.Decode(imageData)
	if err != nil {
		return "", nil, err
	}
	if err := f.Validate(); err != nil {
		return "", nil, err
	}

	scaled := f.Downscale(maxFrameDim)
	encoded, err := scaled.EncodeJPEG()
	if err != nil {
		return "", nil, err
	}

	resp, err := s.detector.DetectFaces(ctx, encoded)
	if err != nil {
		return "", nil, fmt.Errorf("extracting embeddings: %w", err)
	}

	snap := s.gallery.Current()
	for _, face := range resp.Faces {
		if name, _, ok := s.matcher.Match(snap, face.Embedding); ok {
			return name, f, nil
		}
	}
	return "", f, nil
}

// attempt runs one recognition pass and routes the result: matched faces
// drive the ledger through mark, unmatched frames go to the unrecognized
// recorder.
func (s *Service) attempt(ctx context.Context, imageData []byte, mark func(name string) (ledger.Result, error)) (*Decision, error) {
	identity, f, err := s.recognize(ctx, imageData)
	if err != nil {
		return nil, err
	}

	if identity == "" {
		ref, err := s.recorder.Record(f)
		if err != nil {
			return nil, fmt.Errorf("recording unrecognized attempt: %w", err)
		}
		return &Decision{
			Message:    "Face not recognized.",
			CaptureRef: ref,
		}, nil
	}

	result, err := mark(identity)
	if err != nil {
		return nil, err
	}

	return &Decision{
		Identity: identity,
		Matched:  true,
		Status:   result.Status,
		Record:   result.Record,
		Message:  s.message(identity, result),
	}, nil
}

// message renders the user-visible status line for a ledger result.
func (s *Service) message(name string, result ledger.Result) string {
	switch result.Status {
	case ledger.StatusOK:
		if result.Record.LoggedOff {
			return fmt.Sprintf("%s logged off at %s - Duration: %s",
				name, result.Record.Logoff, ledger.FormatDuration(result.Record.Duration))
		}
		return fmt.Sprintf("%s logged in at %s", name, result.Record.Login)
	case ledger.StatusAlreadyLoggedIn:
		return fmt.Sprintf("%s already logged in today.", name)
	case ledger.StatusNotLoggedInOrAlreadyOut:
		return fmt.Sprintf("%s hasn't logged in yet or already logged off.", name)
	default:
		return ""
	}
}

// Login matches the image against the gallery and records a login for the
// recognized identity.
func (s *Service) Login(ctx context.Context, imageData []byte) (*Decision, error) {
	return s.attempt(ctx, imageData, s.ledger.RecordLogin)
}

// Logoff matches the image against the gallery and records a logoff for
// the recognized identity.
func (s *Service) Logoff(ctx context.Context, imageData []byte) (*Decision, error) {
	return s.attempt(ctx, imageData, s.ledger.RecordLogoff)
}

// EnrollStudent validates the image, normalizes it to JPEG, and enrolls the
// identity. The gallery rejects images with no detectable face.
func (s *Service) EnrollStudent(ctx context.Context, name string, imageData []byte) error {
	f, err := frame.Decode(imageData)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}

	encoded, err := f.Downscale(maxFrameDim).EncodeJPEG()
	if err != nil {
		return err
	}
	return s.gallery.Enroll(ctx, name, encoded)
}

// RemoveStudent deletes the identity's enrollment and rebuilds the gallery.
func (s *Service) RemoveStudent(ctx context.Context, name string) error {
	return s.gallery.Remove(ctx, name)
}

// ListSessions returns the session records for a date.
func (s *Service) ListSessions(date string) ([]ledger.SessionRecord, error) {
	return s.ledger.List(date)
}

// QuerySession returns the session record for (name, date), if any.
func (s *Service) QuerySession(name, date string) (ledger.SessionRecord, bool, error) {
	return s.ledger.Query(name, date)
}

// ListStudents returns the enrolled identity names.
func (s *Service) ListStudents() ([]string, error) {
	return s.gallery.Store().Identities()
}

// RebuildGallery rebuilds the gallery snapshot and returns its size.
func (s *Service) RebuildGallery(ctx context.Context) (int, error) {
	snap, err := s.gallery.Rebuild(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Len(), nil
}

// RebuildGalleryWithProgress is RebuildGallery with a per-image callback.
func (s *Service) RebuildGalleryWithProgress(ctx context.Context, progress gallery.RebuildProgress) (int, error) {
	snap, err := s.gallery.RebuildWithProgress(ctx, progress)
	if err != nil {
		return 0, err
	}
	return snap.Len(), nil
}

// GallerySize returns the number of entries in the active snapshot.
func (s *Service) GallerySize() int {
	return s.gallery.Current().Len()
}
