package models

import "time"

// DailyCheckin is the pre-market psychological check-in. One per calendar
// day; re-submitting the same day replaces the earlier record as a trader
// correction.
type DailyCheckin struct {
	ID           string
	Date         string // YYYY-MM-DD
	SleepQuality int    // 1-10
	StressLevel  int    // 1-10
	HomeStress   int    // 1-10
	Alcohol24h   bool
	ExerciseDone bool
	TradingPlan  string
	CreatedAt    time.Time
}

// ClearanceStatus is the outcome of evaluating a check-in.
type ClearanceStatus string

const (
	ClearanceGreen     ClearanceStatus = "GREEN"
	ClearanceYellow    ClearanceStatus = "YELLOW"
	ClearanceRed       ClearanceStatus = "RED"
	ClearanceNoCheckin ClearanceStatus = "NO_CHECKIN"
)

// ReasonCode identifies a single eligibility violation or caution.
type ReasonCode string

const (
	ReasonAlcohol        ReasonCode = "alcohol"
	ReasonStress         ReasonCode = "stress"
	ReasonSleep          ReasonCode = "sleep"
	ReasonNoCheckin      ReasonCode = "no-checkin"
	ReasonHomeStress     ReasonCode = "home-stress"
	ReasonNoExercise     ReasonCode = "no-exercise"
	ReasonModerateStress ReasonCode = "moderate-stress"
)

// Verdict is the trade-approval decision for a day. Violations holds every
// blocking reason, not just the first; Cautions holds non-blocking flags that
// can demote a GREEN day to YELLOW.
type Verdict struct {
	Approved     bool
	Status       ClearanceStatus
	Violations   []ReasonCode
	Cautions     []ReasonCode
	Restrictions []string
}
