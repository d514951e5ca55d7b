package gallery

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kozaktomas/face-attendance/internal/embedding"
)

// ErrNoFaceDetected indicates an enrollment image with no detectable face.
// Such images are rejected outright, they would only ever produce an
// unmatchable gallery entry.
var ErrNoFaceDetected = errors.New("no face detected in image")

// Detector is the face detection side of the embedding collaborator.
type Detector interface {
	DetectFaces(ctx context.Context, imageData []byte) (*embedding.FaceResponse, error)
}

// Entry associates an identity with its reference face embedding.
type Entry struct {
	Identity  string
	Embedding []float32
}

// Snapshot is an immutable view of the gallery at one rebuild. Consumers
// hold a snapshot for the whole of a decision so a concurrent rebuild can
// never be observed half done.
type Snapshot struct {
	entries []Entry
	index   *candidateIndex // nil for small galleries
	builtAt time.Time
}

// Entries returns the gallery entries in iteration order.
func (s *Snapshot) Entries() []Entry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Len returns the number of gallery entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// BuiltAt returns when the snapshot was produced.
func (s *Snapshot) BuiltAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}

// Index returns the candidate index, or nil when the gallery is below the
// index cutoff.
func (s *Snapshot) Index() *candidateIndex {
	if s == nil {
		return nil
	}
	return s.index
}

// NewSnapshot builds a standalone snapshot from entries. Used by callers
// that source embeddings elsewhere (and by tests).
func NewSnapshot(entries []Entry, withIndex bool) *Snapshot {
	snap := &Snapshot{entries: entries, builtAt: time.Now()}
	if withIndex {
		snap.index = buildCandidateIndex(entries)
	}
	return snap
}

// Gallery owns the current snapshot and the enrollment store. A rebuild
// computes a complete replacement snapshot before swapping it in; any
// failure along the way leaves the previous snapshot untouched.
type Gallery struct {
	store      *Store
	detector   Detector
	hnswCutoff int

	mu      sync.RWMutex
	current *Snapshot
}

// New creates a gallery over the given enrollment store and detector.
// hnswCutoff is the gallery size at which snapshots carry a candidate
// index; zero disables indexing.
func New(store *Store, detector Detector, hnswCutoff int) *Gallery {
	return &Gallery{
		store:      store,
		detector:   detector,
		hnswCutoff: hnswCutoff,
		current:    &Snapshot{},
	}
}

// Current returns the active snapshot.
func (g *Gallery) Current() *Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current
}

// RebuildProgress is called once per enrollment image during a rebuild.
type RebuildProgress func(identity string)

// Rebuild re-enumerates every enrollment image, extracts the first detected
// face per image, and atomically replaces the snapshot. Images with no
// detectable face are skipped with a warning. Returns the new snapshot.
func (g *Gallery) Rebuild(ctx context.Context) (*Snapshot, error) {
	return g.RebuildWithProgress(ctx, nil)
}

// RebuildWithProgress is Rebuild with a per-image progress callback.
func (g *Gallery) RebuildWithProgress(ctx context.Context, progress RebuildProgress) (*Snapshot, error) {
	images, err := g.store.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("enumerating enrollment images: %w", err)
	}

	entries := make([]Entry, 0, len(images))
	for _, img := range images {
		resp, err := g.detector.DetectFaces(ctx, img.Data)
		if err != nil {
			// Partial failure must not clobber the working gallery.
			return nil, fmt.Errorf("extracting embedding for %s: %w", img.Identity, err)
		}
		if progress != nil {
			progress(img.Identity)
		}
		if len(resp.Faces) == 0 {
			log.Printf("warning: enrollment image for %s has no detectable face, skipping", img.Identity)
			continue
		}
		entries = append(entries, Entry{
			Identity:  img.Identity,
			Embedding: resp.Faces[0].Embedding,
		})
	}

	snap := &Snapshot{entries: entries, builtAt: time.Now()}
	if g.hnswCutoff > 0 && len(entries) >= g.hnswCutoff {
		snap.index = buildCandidateIndex(entries)
	}

	g.mu.Lock()
	g.current = snap
	g.mu.Unlock()

	return snap, nil
}

// Enroll validates that the image contains a face, stores it as the
// identity's reference image, and rebuilds the gallery.
func (g *Gallery) Enroll(ctx context.Context, identity string, imageData []byte) error {
	resp, err := g.detector.DetectFaces(ctx, imageData)
	if err != nil {
		return fmt.Errorf("detecting face in enrollment image: %w", err)
	}
	if len(resp.Faces) == 0 {
		return ErrNoFaceDetected
	}

	if err := g.store.Save(identity, imageData); err != nil {
		return err
	}

	if _, err := g.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuilding gallery after enrollment: %w", err)
	}
	return nil
}

// Remove deletes the identity's reference image and rebuilds the gallery.
// Returns ErrNotFound when no image exists for the identity.
func (g *Gallery) Remove(ctx context.Context, identity string) error {
	if err := g.store.Delete(identity); err != nil {
		return err
	}

	if _, err := g.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuilding gallery after removal: %w", err)
	}
	return nil
}

// Store exposes the enrollment store for listing identities.
func (g *Gallery) Store() *Store {
	return g.store
}
