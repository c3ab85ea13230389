package ledger

import "time"

// DayBounds returns the inclusive window covering the calendar day of ref in
// its own location, from midnight to 23:59:59.999.
func DayBounds(ref time.Time) (time.Time, time.Time) {
	y, m, d := ref.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), ref.Location())
	return start, end
}

// MonthBounds returns the inclusive window covering the calendar month of
// ref, from the first day at midnight to the last day at 23:59:59.
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
