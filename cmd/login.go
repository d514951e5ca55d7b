package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [image-file]",
	Short: "Record a login from a camera frame",
	Long: `Record an attendance login from a single camera frame.
The frame is matched against the enrolled student gallery and a login
is recorded for the matched student.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAttendanceAction(args[0], func(ctx context.Context, s *attendance.Service, img []byte) (*attendance.Decision, error) {
			return s.Login(ctx, img)
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// runAttendanceAction loads a frame from disk, builds the service and
// applies a login or logoff action, printing the outcome message.
func runAttendanceAction(
	imagePath string,
	action func(context.Context, *attendance.Service, []byte) (*attendance.Decision, error),
) error {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}

	cfg := config.Load()
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := service.RebuildGallery(ctx); err != nil {
		return fmt.Errorf("building face gallery: %w", err)
	}

	decision, err := action(ctx, service, imageData)
	if err != nil {
		return err
	}

	fmt.Println(decision.Message)
	if !decision.Matched && decision.CaptureRef != "" {
		fmt.Printf("Frame archived as %s\n", decision.CaptureRef)
	}
	return nil
}
