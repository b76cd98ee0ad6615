package domain

import "time"

// Clock supplies the current wall-clock time. Streaks and the weekly/monthly
// windows all derive from "now", so stores take a Clock instead of reading
// the system time directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock. It reports time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
