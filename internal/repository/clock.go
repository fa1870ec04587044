package repository

import "time"

// Clock returns the current time. Relative timestamps in the sample data are
// computed from it on every call.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func ago(now time.Time, d time.Duration) time.Time {
	return now.Add(-d).UTC()
}
