package dateutil

import (
	"time"
)

// BeginningOfYear returns the first instant of the year for a given date
func BeginningOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), 1, 1, 0, 0, 0, 0, date.Location())
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// ProjectionStart returns January 1 of startYear, or of the year containing now
// when startYear is zero.
func ProjectionStart(startYear int, now time.Time) time.Time {
	if startYear == 0 {
		return BeginningOfYear(now)
	}
	return time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
}

// CalendarYear labels a one-based simulation year relative to start.
// Simulation year 1 is the start year itself.
func CalendarYear(start time.Time, simulationYear int) int {
	return AddYears(start, simulationYear-1).Year()
}
