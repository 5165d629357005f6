// Package datetime parses and formats the date/time values used by tasks.
//
// Values are wall-clock timestamps without a zone. They are carried as
// time.Time in UTC so that no daylight-saving adjustment can shift them.
package datetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned when date/time text is blank, has an
// unsupported shape, or is outside the calendar/clock range.
var ErrInvalidDateTime = errors.New("invalid date/time, expected yyyy-MM-dd [HHmm]")

const (
	dateLayout        = "2006-01-02"
	displayDate       = "Jan 02 2006"
	displayDateTime   = "Jan 02 2006 15:04"
	isoMinuteLayout   = "2006-01-02T15:04"
	isoSecondLayout   = "2006-01-02T15:04:05"
	isoFractionLayout = "2006-01-02T15:04:05.999999999"
)

// Parse parses user date/time text. Two shapes are accepted, tried in order:
//
//	yyyy-MM-dd        date only, at 00:00
//	yyyy-MM-dd HHmm   date with a 24-hour time
func Parse(text string) (time.Time, error) {
	x := strings.TrimSpace(text)
	if x == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidDateTime)
	}

	if d, err := parseDate(x); err == nil {
		return d, nil
	}

	tokens := strings.Fields(x)
	if len(tokens) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, x)
	}
	d, err := parseDate(tokens[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, x)
	}
	hh, mm, ok := parseClock(tokens[1])
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, x)
	}
	return d.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute), nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// parseClock parses exactly four ASCII digits as HHMM.
func parseClock(s string) (int, int, bool) {
	if len(s) != 4 {
		return 0, 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	hh, _ := strconv.Atoi(s[:2])
	mm, _ := strconv.Atoi(s[2:])
	if hh > 23 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

// IsMidnight reports whether t falls exactly on 00:00.
func IsMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// Format renders t for display: date only at midnight, otherwise with hours:minutes.
func Format(t time.Time) string {
	if IsMidnight(t) {
		return t.Format(displayDate)
	}
	return t.Format(displayDateTime)
}

// FormatISO renders t as an ISO-8601 local date-time. Seconds and fractions
// are only written when non-zero.
func FormatISO(t time.Time) string {
	switch {
	case t.Nanosecond() != 0:
		return t.Format(isoFractionLayout)
	case t.Second() != 0:
		return t.Format(isoSecondLayout)
	default:
		return t.Format(isoMinuteLayout)
	}
}

// ParseISO parses an ISO-8601 local date-time as written by FormatISO.
func ParseISO(s string) (time.Time, error) {
	for _, layout := range []string{isoMinuteLayout, isoSecondLayout, isoFractionLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}
