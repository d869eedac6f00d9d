package utils

import (
	"time"
)

// LocalDateFromUnixSeconds returns the date portion in YYYY-MM-DD format,
// in the local timezone. Daily violation logs are named by this date.
func LocalDateFromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).Format("2006-01-02")
}

// LocalClockFromUnixSeconds returns the wall-clock portion in HH:MM:SS format,
// in the local timezone.
func LocalClockFromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).Format("15:04:05")
}

// LocalHourFromUnixSeconds returns the local hour of day (0-23).
func LocalHourFromUnixSeconds(sec int64) int {
	return time.Unix(sec, 0).Hour()
}
