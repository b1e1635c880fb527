// Package expiry classifies dated records (documents, registrations, fees)
// against a sliding warning window. All comparisons work on calendar days;
// time-of-day and location are ignored.
package expiry

import "time"

// Status of a dated record relative to today.
type Status string

const (
	StatusValid    Status = "valid"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// Window defaults per area. These are defaults only: every call site passes
// its window explicitly, matching how the views differ (documents warn at 60
// days, fee/cost views at 90, the dashboard at 30).
const (
	DefaultWindowDays   = 60
	FeeWindowDays       = 90
	DashboardWindowDays = 30
)

// truncateToDay pins the calendar date to midnight UTC. Pinning to UTC keeps
// every day exactly 24 hours long, so day arithmetic is immune to DST
// transitions and to mixing dates from different locations.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify places an expiry date into one of three buckets. Both window
// boundaries are inclusive: a record expiring today is already "expiring",
// and a record expiring exactly windowDays from today is too.
func Classify(expiryDate, today time.Time, windowDays int) Status {
	expiry := truncateToDay(expiryDate)
	now := truncateToDay(today)

	if expiry.Before(now) {
		return StatusExpired
	}
	windowEnd := now.AddDate(0, 0, windowDays)
	if !expiry.After(windowEnd) {
		return StatusExpiring
	}
	return StatusValid
}

// DaysRemaining returns the whole days between today and the expiry date.
// Negative for expired records.
func DaysRemaining(expiryDate, today time.Time) int {
	expiry := truncateToDay(expiryDate)
	now := truncateToDay(today)
	return int(expiry.Sub(now) / (24 * time.Hour))
}
