package service

import (
	"strings"
	"time"

	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

// TimePeriod names a calendar window relative to now.
type TimePeriod string

const (
	PeriodToday     TimePeriod = "today"
	PeriodThisWeek  TimePeriod = "thisweek"
	PeriodThisMonth TimePeriod = "thismonth"
	PeriodThisYear  TimePeriod = "thisyear"
)

var errInvalidTimePeriod = errorutil.NewDomainError(
	"INVALID_TIME_PERIOD",
	"Invalid timePeriod. Valid values: today, thisweek, thismonth, thisyear",
	400,
	nil,
)

// PeriodBounds resolves raw (case-insensitive) to an inclusive [from, to] window in now's zone.
// A blank value means no window. Weeks start on Monday.
func PeriodBounds(raw string, now time.Time) (*time.Time, *time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil, nil
	}

	y, m, d := now.Date()
	loc := now.Location()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	var from, until time.Time
	switch TimePeriod(strings.ToLower(raw)) {
	case PeriodToday:
		from = dayStart
		until = from.AddDate(0, 0, 1)
	case PeriodThisWeek:
		offset := (int(now.Weekday()) + 6) % 7
		from = dayStart.AddDate(0, 0, -offset)
		until = from.AddDate(0, 0, 7)
	case PeriodThisMonth:
		from = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		until = from.AddDate(0, 1, 0)
	case PeriodThisYear:
		from = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		until = from.AddDate(1, 0, 0)
	default:
		return nil, nil, errInvalidTimePeriod
	}

	to := until.Add(-time.Nanosecond)
	return &from, &to, nil
}
