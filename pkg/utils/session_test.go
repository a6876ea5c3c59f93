package utils

import (
	"testing"
	"time"
)

func at(day time.Weekday, hour int) time.Time {
	// 2026-08-24 is a Monday.
	base := time.Date(2026, 8, 24, hour, 0, 0, 0, NewYorkLocation)
	return base.AddDate(0, 0, int(day-time.Monday))
}

func TestGetSessionStatus(t *testing.T) {
	cases := []struct {
		name string
		when time.Time
		want SessionStatus
	}{
		{"midweek morning", at(time.Wednesday, 10), SessionOpen},
		{"midweek maintenance break", at(time.Wednesday, 17), SessionBreak},
		{"midweek evening", at(time.Wednesday, 19), SessionOpen},
		{"friday close", at(time.Friday, 17), SessionClosed},
		{"saturday", at(time.Saturday, 12), SessionClosed},
		{"sunday before open", at(time.Sunday, 12), SessionClosed},
		{"sunday after open", at(time.Sunday, 19), SessionOpen},
	}
	for _, tc := range cases {
		if got := GetSessionStatus(tc.when); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestIsTradingDay(t *testing.T) {
	if IsTradingDay(at(time.Saturday, 12)) {
		t.Error("saturday is not a trading day")
	}
	if !IsTradingDay(at(time.Wednesday, 12)) {
		t.Error("wednesday is a trading day")
	}
}
