package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show attendance sessions for a day",
	Long: `Show the recorded attendance sessions for a day.
Sessions still open (logged in without a logoff) show an empty logoff
time and duration.`,
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().String("date", "", "Day to show in YYYY-MM-DD format (defaults to today)")
}

func runSessions(cmd *cobra.Command, args []string) error {
	date := mustGetString(cmd, "date")
	if date == "" {
		date = time.Now().Format(ledger.DateLayout)
	} else if _, err := time.Parse(ledger.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	cfg := config.Load()
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	records, err := service.ListSessions(date)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No sessions recorded for %s\n", date)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOGIN\tLOGOFF\tDURATION")
	for _, rec := range records {
		logoff, duration := "", ""
		if rec.LoggedOff {
			logoff = rec.Logoff
			duration = ledger.FormatDuration(rec.Duration)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.Name, rec.Login, logoff, duration)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d sessions on %s\n", len(records), date)
	return nil
}
