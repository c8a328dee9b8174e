package cycle

import "time"

// DateOnly truncates value to midnight of its calendar day in its own location.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

// DaysBetween counts whole calendar days from start to end. The result is
// negative when end falls before start and ignores DST hour shifts.
func DaysBetween(start time.Time, end time.Time) int {
	startYear, startMonth, startDay := start.Date()
	endYear, endMonth, endDay := end.Date()
	from := time.Date(startYear, startMonth, startDay, 0, 0, 0, 0, time.UTC)
	to := time.Date(endYear, endMonth, endDay, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// ElapsedDays is DaysBetween clamped at zero: an anchor after the reference
// date counts as day one of its cycle.
func ElapsedDays(lastPeriodStart time.Time, referenceDate time.Time) int {
	elapsed := DaysBetween(lastPeriodStart, referenceDate)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func dateIn(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}
