package cmd

import (
	"context"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/spf13/cobra"
)

var logoffCmd = &cobra.Command{
	Use:   "logoff [image-file]",
	Short: "Record a logoff from a camera frame",
	Long: `Record an attendance logoff from a single camera frame.
The frame is matched against the enrolled student gallery and the open
session of the matched student is closed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAttendanceAction(args[0], func(ctx context.Context, s *attendance.Service, img []byte) (*attendance.Decision, error) {
			return s.Logoff(ctx, img)
		})
	},
}

func init() {
	rootCmd.AddCommand(logoffCmd)
}
