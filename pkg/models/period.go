package models

import (
	"fmt"
	"time"
)

// Period is an inclusive date range for a digest run.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a Period and enforces start <= end.
func NewPeriod(start, end time.Time) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("invalid period: start %s is after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Period{Start: start, End: end}, nil
}

// CurrentMonth returns the period from the first day of now's month through now.
// Used when the caller gives no explicit date range.
func CurrentMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{Start: start, End: now}
}

// StartISO returns the start date in ISO format (YYYY-MM-DD).
func (p Period) StartISO() string { return p.Start.Format("2006-01-02") }

// EndISO returns the end date in ISO format (YYYY-MM-DD).
func (p Period) EndISO() string { return p.End.Format("2006-01-02") }
