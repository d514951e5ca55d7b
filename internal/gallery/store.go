package gallery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates an identity with no enrollment image.
var ErrNotFound = errors.New("identity not found")

// EnrollmentImage pairs an identity with its reference image bytes.
type EnrollmentImage struct {
	Identity string
	Data     []byte
}

// Store keeps one reference JPEG per enrolled identity in a flat directory.
// The file stem is the identity; lookups fold case and diacritics so
// "jiri" finds "Jiří.jpg".
type Store struct {
	dir string
}

// NewStore opens the enrollment directory, creating it when missing.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create enrollment directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Identities lists enrolled identity names in directory order.
func (s *Store) Identities() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read enrollment directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	return names, nil
}

// Enumerate loads every enrollment image.
func (s *Store) Enumerate() ([]EnrollmentImage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read enrollment directory: %w", err)
	}

	var images []EnrollmentImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name)) //nolint:gosec // path is inside the store dir
		if err != nil {
			return nil, fmt.Errorf("failed to read enrollment image %s: %w", name, err)
		}
		images = append(images, EnrollmentImage{
			Identity: strings.TrimSuffix(name, filepath.Ext(name)),
			Data:     data,
		})
	}
	return images, nil
}

// find returns the file name holding the identity's image, matching by
// folded name so lookups are case and diacritics insensitive.
func (s *Store) find(identity string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to read enrollment directory: %w", err)
	}

	folded := foldIdentityName(identity)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if foldIdentityName(stem) == folded {
			return entry.Name(), nil
		}
	}
	return "", ErrNotFound
}

// Has reports whether an enrollment image exists for the identity.
func (s *Store) Has(identity string) bool {
	_, err := s.find(identity)
	return err == nil
}

// Save writes the identity's reference image, replacing any previous one.
// Latest enrollment wins.
func (s *Store) Save(identity string, imageData []byte) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return errors.New("identity must not be empty")
	}

	// Replace an existing image even if its file name differs in case.
	if existing, err := s.find(identity); err == nil {
		if rmErr := os.Remove(filepath.Join(s.dir, existing)); rmErr != nil {
			return fmt.Errorf("failed to replace enrollment image: %w", rmErr)
		}
	}

	safe := filepath.Base(identity) + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, safe), imageData, 0640); err != nil { //nolint:gosec // file name is base-name sanitized
		return fmt.Errorf("failed to write enrollment image: %w", err)
	}
	return nil
}

// Delete removes the identity's reference image.
func (s *Store) Delete(identity string) error {
	name, err := s.find(identity)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to delete enrollment image: %w", err)
	}
	return nil
}
