package timezone

import (
	"fmt"
	"time"

	"huddle/shared/constant"
)

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// ToUTC converts a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Parse parses a time string as UTC.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, time.UTC)
}

// Format formats a time in UTC.
func Format(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}

// Window parses a calendar date plus two wall-clock times into a half-open
// UTC interval [start, end). The end instant is exclusive, so a booking
// ending at 10:00 does not collide with one starting at 10:00.
func Window(date, startClock, endClock string) (start, end time.Time, err error) {
	day, err := Parse(constant.BookingDateLayout, date)
	if err != nil {
		return start, end, fmt.Errorf("invalid date %q, expected %s", date, constant.BookingDateLayout)
	}

	startWall, err := Parse(constant.BookingTimeLayout, startClock)
	if err != nil {
		return start, end, fmt.Errorf("invalid start time %q, expected %s", startClock, constant.BookingTimeLayout)
	}

	endWall, err := Parse(constant.BookingTimeLayout, endClock)
	if err != nil {
		return start, end, fmt.Errorf("invalid end time %q, expected %s", endClock, constant.BookingTimeLayout)
	}

	start = Combine(day, startWall)
	end = Combine(day, endWall)

	if !start.Before(end) {
		return start, end, fmt.Errorf("start time %s must be before end time %s", startClock, endClock)
	}

	return start, end, nil
}

// Combine merges a calendar date with a wall-clock time into a single UTC
// instant. Both arguments are normalized to UTC before merging.
func Combine(date, clock time.Time) time.Time {
	date = date.UTC()
	clock = clock.UTC()

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		time.UTC,
	)
}
