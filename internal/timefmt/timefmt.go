package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// Layouts crossing the storage/display boundary. Reservations are persisted
// as naive "YYYY-MM-DD HH:MM" strings; users enter and see a 12-hour clock
// with an AM/PM marker plus a separate calendar date.
const (
	Storage = "2006-01-02 15:04"
	Clock   = "03:04 PM"
	Date    = "2006-01-02"
)

// CombineStamp joins a calendar date and a 12-hour clock string into the
// stored 24-hour minute-resolution form. The error path matters: nothing
// may be written to the store unless both of a reservation's stamps
// normalize cleanly.
func CombineStamp(date, clock string) (string, error) {
	t, err := time.Parse(Date+" "+Clock, date+" "+clock)
	if err != nil {
		return "", fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t.Format(Storage), nil
}

// DisplayClock renders a stored stamp's time-of-day in 12-hour form.
func DisplayClock(stamp string) (string, error) {
	t, err := time.Parse(Storage, stamp)
	if err != nil {
		return "", fmt.Errorf("invalid stored stamp %q: %w", stamp, err)
	}
	return t.Format(Clock), nil
}

// RederiveStart rebuilds a storage stamp from a displayed 12-hour start
// time combined with today's date. This is the reservation delete key: a
// reservation made on an earlier date will not match the rederived stamp
// once the date rolls over. Known hazard, kept for compatibility.
func RederiveStart(clock string, today time.Time) (string, error) {
	t, err := time.Parse(Clock, clock)
	if err != nil {
		return "", fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return today.Format(Date) + " " + t.Format("15:04"), nil
}

// SplitFeatures splits a comma-joined feature list. No trimming, no
// de-duplication, no case folding; tags match exactly as entered.
func SplitFeatures(features string) []string {
	return strings.Split(features, ",")
}

// JoinFeatures is the inverse of SplitFeatures.
func JoinFeatures(features []string) string {
	return strings.Join(features, ",")
}
