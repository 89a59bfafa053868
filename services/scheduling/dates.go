package scheduling

import (
	"regexp"
	"time"
)

// BookingDateFormat is the wire format for booking dates.
const BookingDateFormat = "02/01/2006"

// BookingWindowDays is how far ahead a request may be booked. The upper
// bound is exclusive at now plus this many days; today itself is allowed.
const BookingWindowDays = 30

var bookingDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// StartOfDay returns the UTC-midnight instant of t's UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseBookingDate parses a DD/MM/YYYY booking date, normalizes it to a
// UTC-midnight instant and enforces the booking window against now.
// Two inputs naming the same calendar day always produce the same
// instant regardless of server timezone.
func ParseBookingDate(input string, now time.Time) (time.Time, error) {
	if !bookingDateRe.MatchString(input) {
		return time.Time{}, ErrInvalidDateFormat
	}
	day, err := time.ParseInLocation(BookingDateFormat, input, time.UTC)
	if err != nil {
		// Shape matched but the day does not exist (31/02, 00/xx, ...).
		return time.Time{}, ErrInvalidCalendarDate
	}
	// Round-trip guard: a parsed value that formats back differently was
	// silently normalized and must be rejected, not wrapped.
	if day.Format(BookingDateFormat) != input {
		return time.Time{}, ErrInvalidCalendarDate
	}

	nowUTC := now.UTC()
	if day.Before(StartOfDay(nowUTC)) {
		return time.Time{}, ErrDateInPast
	}
	if !day.Before(nowUTC.Add(BookingWindowDays * 24 * time.Hour)) {
		return time.Time{}, ErrDateTooFarInFuture
	}
	return day, nil
}
