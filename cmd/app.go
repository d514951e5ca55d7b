package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/embedding"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/kozaktomas/face-attendance/internal/matcher"
	"github.com/kozaktomas/face-attendance/internal/store"
	"github.com/kozaktomas/face-attendance/internal/unrecognized"
)

// buildService wires the full attendance stack from configuration:
// enrollment store, embedding client, gallery, matcher, CSV ledger and
// the unrecognized-frame recorder.
func buildService(cfg *config.Config) (*attendance.Service, error) {
	galleryStore, err := gallery.NewStore(cfg.Gallery.StudentDir)
	if err != nil {
		return nil, fmt.Errorf("opening student directory: %w", err)
	}

	client := embedding.NewClient(cfg.Embedding.URL, cfg.Embedding.Model)
	gal := gallery.New(galleryStore, client, cfg.Matcher.HNSWCutoff)
	match := matcher.New(cfg.MatchThreshold(), cfg.Matcher.Approximate)
	led := ledger.New(store.NewCSVStore(cfg.Attendance.CSVFile))

	recorder, err := unrecognized.NewRecorder(
		cfg.Gallery.FramesDir,
		store.NewUnrecognizedLog(cfg.Attendance.UnrecognizedLog),
	)
	if err != nil {
		return nil, fmt.Errorf("preparing unrecognized frames directory: %w", err)
	}

	return attendance.NewService(gal, match, led, recorder, client), nil
}
