package session

import (
	"fmt"
	"strings"
)

// DayUnavailableError indicates no viewing window for a property covers the
// requested day. The message lists every day that would work.
type DayUnavailableError struct {
	Day       string
	ValidDays []string
}

func (e *DayUnavailableError) Error() string {
	days := "none specified"
	if len(e.ValidDays) > 0 {
		days = strings.Join(e.ValidDays, ", ")
	}
	return fmt.Sprintf("viewings not available on %s. Available days: %s", e.Day, days)
}

// TimeUnavailableError indicates the matched viewing window does not include
// the requested time. The message lists the times that would work.
type TimeUnavailableError struct {
	Time       string
	ValidTimes []string
}

func (e *TimeUnavailableError) Error() string {
	return fmt.Sprintf("time %s not available. Available times: %s",
		e.Time, strings.Join(e.ValidTimes, ", "))
}
