// Package utils provides shared utility functions.
package utils

import "time"

// NewYorkLocation is the timezone futures sessions are quoted in.
var NewYorkLocation *time.Location

func init() {
	var err error
	NewYorkLocation, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback to UTC-5
		NewYorkLocation = time.FixedZone("ET", -5*60*60)
	}
}

// SessionStatus is the state of the CME Globex futures session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionBreak  SessionStatus = "break"
	SessionClosed SessionStatus = "closed"
)

// GetSessionStatus reports the Globex session state at a point in time.
// The session runs Sunday 18:00 through Friday 17:00 ET with a daily
// maintenance break from 17:00 to 18:00.
func GetSessionStatus(at time.Time) SessionStatus {
	now := at.In(NewYorkLocation)
	day := now.Weekday()
	hour := now.Hour()

	switch day {
	case time.Saturday:
		return SessionClosed
	case time.Sunday:
		if hour < 18 {
			return SessionClosed
		}
		return SessionOpen
	case time.Friday:
		if hour >= 17 {
			return SessionClosed
		}
		return SessionOpen
	default:
		if hour == 17 {
			return SessionBreak
		}
		return SessionOpen
	}
}

// IsTradingDay reports whether the Globex session opens at all on the
// given calendar day.
func IsTradingDay(at time.Time) bool {
	return at.In(NewYorkLocation).Weekday() != time.Saturday
}
