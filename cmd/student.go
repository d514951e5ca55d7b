package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Manage enrolled students",
}

var studentAddCmd = &cobra.Command{
	Use:   "add [name] [image-file]",
	Short: "Enroll a student from a reference photo",
	Long: `Enroll a student using a reference photo of their face.
The photo must contain a detectable face. Re-enrolling an existing
student replaces their reference photo.`,
	Args: cobra.ExactArgs(2),
	RunE: runStudentAdd,
}

var studentRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove an enrolled student",
	Args:  cobra.ExactArgs(1),
	RunE:  runStudentRemove,
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrolled students",
	RunE:  runStudentList,
}

func init() {
	rootCmd.AddCommand(studentCmd)
	studentCmd.AddCommand(studentAddCmd)
	studentCmd.AddCommand(studentRemoveCmd)
	studentCmd.AddCommand(studentListCmd)
}

func runStudentAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	imageData, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}

	cfg := config.Load()
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	if err := service.EnrollStudent(context.Background(), name, imageData); err != nil {
		return fmt.Errorf("enrolling %s: %w", name, err)
	}

	fmt.Printf("Enrolled %s (%d students in gallery)\n", name, service.GallerySize())
	return nil
}

func runStudentRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg := config.Load()
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	if err := service.RemoveStudent(context.Background(), name); err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}

	fmt.Printf("Removed %s\n", name)
	return nil
}

func runStudentList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	students, err := service.ListStudents()
	if err != nil {
		return fmt.Errorf("listing students: %w", err)
	}

	if len(students) == 0 {
		fmt.Println("No students enrolled")
		return nil
	}

	for _, name := range students {
		fmt.Println(name)
	}
	fmt.Printf("\n%d students enrolled\n", len(students))
	return nil
}
