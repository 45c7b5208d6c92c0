package services

import "time"

// ShiftStartHour is the hour of day production starts on a work day
const ShiftStartHour = 8

// IsWorkDay reports whether the date falls on the four-day production week
// (Monday through Thursday; Friday through Sunday are off).
func IsWorkDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return true
	default:
		return false
	}
}

// NextWorkDay returns the earliest work day strictly after date. It always
// advances at least one calendar day, and the longest non-work gap is the
// three-day Friday through Sunday stretch, so it terminates for any input.
func NextWorkDay(date time.Time) time.Time {
	next := date.AddDate(0, 0, 1)
	for !IsWorkDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// ShiftStart normalizes t to the start of its work day: the same calendar
// date at 08:00 with zeroed seconds and sub-seconds.
func ShiftStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), ShiftStartHour, 0, 0, 0, t.Location())
}
