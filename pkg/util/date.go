package util

import "time"

// FromUnix converts unix seconds; zero stays the zero time.
func FromUnix(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// FromUnixPtr is FromUnix for optional timestamps.
func FromUnixPtr(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := FromUnix(sec)
	return &t
}

// UnixAfter returns now+d in unix seconds.
func UnixAfter(now time.Time, d time.Duration) int64 {
	return now.Add(d).Unix()
}
