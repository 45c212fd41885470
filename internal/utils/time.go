package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate  = "2006-01-02"
	layoutMonth = "2006-01"
	layoutKey   = "20060102"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateKey renders t as YYYYMMDD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(layoutKey)
}

// ParseDate parses YYYY-MM-DD as a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.UTC)
}

// ParseTimestamp accepts RFC3339 or a bare YYYY-MM-DD date.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := ParseDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// MonthRange turns "YYYY-MM" into the half-open UTC interval [start, next month).
func MonthRange(month string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(layoutMonth, strings.TrimSpace(month), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// FormatDate formats time to YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(layoutDate)
}

// FormatDisplayDate renders dd.mm.yyyy as printed on invoices.
func FormatDisplayDate(t *time.Time) string {
	if t == nil {
		return "NA"
	}
	return t.Format("02.01.2006")
}
