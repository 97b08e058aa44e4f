package scanner

import "time"

// IsUnused reports whether lastModified predates now minus one calendar month.
// time.AddDate normalizes overflow, so March 31 minus a month is March 3
// (or March 2 in a leap year).
func IsUnused(lastModified, now time.Time) bool {
	return lastModified.Before(now.AddDate(0, -1, 0))
}
