package ledger

import (
	"fmt"
	"time"
)

// Elapsed computes the interval between two time-of-day values. Login and
// logoff carry no date, so a logoff that reads earlier than its login is
// taken to have rolled past midnight and gets a day added first. The
// result is never negative.
func Elapsed(login, logoff string) (time.Duration, error) {
	t1, err := time.Parse(TimeLayout, login)
	if err != nil {
		return 0, fmt.Errorf("invalid login time %q: %w", login, err)
	}
	t2, err := time.Parse(TimeLayout, logoff)
	if err != nil {
		return 0, fmt.Errorf("invalid logoff time %q: %w", logoff, err)
	}

	if t2.Before(t1) {
		t2 = t2.Add(24 * time.Hour)
	}
	return t2.Sub(t1), nil
}

// FormatDuration renders a stored duration for display: whole minutes under
// an hour, hours to one decimal place from an hour up. The stored value
// stays exact; this is presentation only.
func FormatDuration(d time.Duration) string {
	mins := d.Minutes()
	if mins < 60 {
		return fmt.Sprintf("%d min", int(mins))
	}
	return fmt.Sprintf("%.1f hr", mins/60)
}
