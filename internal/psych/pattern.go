package psych

import (
	"time"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

// Pattern summarizes psychological state over a window of recent check-ins.
type Pattern struct {
	DaysAnalyzed  int
	AvgSleep      float64
	AvgStress     float64
	AvgHomeStress float64
	GreenDays     int
	YellowDays    int
	RedDays       int
	AlcoholDays   int
	ExerciseDays  int
}

// RecentPattern aggregates the check-ins from the last N days before (and
// including) today. Check-ins that fail validation are skipped rather than
// failing the whole window.
func RecentPattern(checkins []models.DailyCheckin, days int, today time.Time, th Thresholds) Pattern {
	cutoff := today.AddDate(0, 0, -days).Format("2006-01-02")

	var p Pattern
	var sleepSum, stressSum, homeSum int
	for _, c := range checkins {
		if c.Date < cutoff {
			continue
		}
		verdict, err := CheckEligibility(c, th)
		if err != nil {
			continue
		}
		p.DaysAnalyzed++
		sleepSum += c.SleepQuality
		stressSum += c.StressLevel
		homeSum += c.HomeStress
		switch verdict.Status {
		case models.ClearanceRed:
			p.RedDays++
		case models.ClearanceYellow:
			p.YellowDays++
		default:
			p.GreenDays++
		}
		if c.Alcohol24h {
			p.AlcoholDays++
		}
		if c.ExerciseDone {
			p.ExerciseDays++
		}
	}

	if p.DaysAnalyzed > 0 {
		n := float64(p.DaysAnalyzed)
		p.AvgSleep = float64(sleepSum) / n
		p.AvgStress = float64(stressSum) / n
		p.AvgHomeStress = float64(homeSum) / n
	}
	return p
}
