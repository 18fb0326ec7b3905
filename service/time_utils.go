package service

import (
	"time"
)

// utcNow is the clock every service starts with
func utcNow() time.Time {
	return time.Now().UTC()
}

// NextLockTime returns when a period reopened at now locks again
func NextLockTime(now time.Time, periodLength time.Duration) time.Time {
	return now.Add(periodLength).UTC()
}
