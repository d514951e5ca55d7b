package cmd

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the face gallery from enrollment photos",
	Long: `Rebuild the face gallery from the enrollment photo directory.
Every reference photo is sent to the embedding service and photos with
no detectable face are skipped with a warning.`,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	students, err := service.ListStudents()
	if err != nil {
		return fmt.Errorf("listing enrollment photos: %w", err)
	}

	if len(students) == 0 {
		fmt.Printf("No enrollment photos found in %s\n", cfg.Gallery.StudentDir)
		return nil
	}

	bar := progressbar.NewOptions(len(students),
		progressbar.OptionSetDescription("Embedding faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	count, err := service.RebuildGalleryWithProgress(context.Background(), func(identity string) {
		_ = bar.Add(1)
	})
	if err != nil {
		return fmt.Errorf("rebuilding gallery: %w", err)
	}
	_ = bar.Finish()

	fmt.Printf("\nGallery rebuilt with %d faces (%d photos scanned)\n", count, len(students))
	return nil
}
