// Package psych evaluates daily psychological check-ins into trade-approval
// verdicts. The gate is a pure function of a single check-in and the
// configured thresholds; it keeps no memory of past days.
package psych

import (
	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

// Thresholds configures the eligibility gate. Zero values never block, so
// callers should start from DefaultThresholds.
type Thresholds struct {
	BlockOnAlcohol bool
	MaxStress      int // block when stress level >= MaxStress
	MinSleep       int // block when sleep quality <= MinSleep
	MaxHomeStress  int // caution when home stress > MaxHomeStress
	ModerateStress int // caution when stress level >= ModerateStress
}

// DefaultThresholds returns the stock gate configuration: any alcohol in the
// last 24 hours blocks, stress 7 or above blocks, sleep quality 4 or below
// blocks.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BlockOnAlcohol: true,
		MaxStress:      7,
		MinSleep:       4,
		MaxHomeStress:  7,
		ModerateStress: 5,
	}
}

// CheckEligibility evaluates a check-in against the thresholds. Every
// violated condition is collected, not short-circuited, so the trader sees
// all blocking reasons at once. Non-blocking cautions demote an otherwise
// clear day to YELLOW when two or more stack up.
func CheckEligibility(checkin models.DailyCheckin, th Thresholds) (models.Verdict, error) {
	if err := validateCheckin(checkin); err != nil {
		return models.Verdict{}, err
	}

	var violations []models.ReasonCode
	if th.BlockOnAlcohol && checkin.Alcohol24h {
		violations = append(violations, models.ReasonAlcohol)
	}
	if th.MaxStress > 0 && checkin.StressLevel >= th.MaxStress {
		violations = append(violations, models.ReasonStress)
	}
	if th.MinSleep > 0 && checkin.SleepQuality <= th.MinSleep {
		violations = append(violations, models.ReasonSleep)
	}

	var cautions []models.ReasonCode
	if th.MaxHomeStress > 0 && checkin.HomeStress > th.MaxHomeStress {
		cautions = append(cautions, models.ReasonHomeStress)
	}
	if !checkin.ExerciseDone {
		cautions = append(cautions, models.ReasonNoExercise)
	}
	if th.ModerateStress > 0 && checkin.StressLevel >= th.ModerateStress {
		cautions = append(cautions, models.ReasonModerateStress)
	}

	verdict := models.Verdict{
		Violations: violations,
		Cautions:   cautions,
	}
	switch {
	case len(violations) > 0:
		verdict.Status = models.ClearanceRed
	case len(cautions) >= 2:
		verdict.Approved = true
		verdict.Status = models.ClearanceYellow
		verdict.Restrictions = []string{
			"max 1 trade today",
			"half position size",
			"no revenge trading",
		}
	default:
		verdict.Approved = true
		verdict.Status = models.ClearanceGreen
	}
	return verdict, nil
}

// NoCheckinVerdict is the blocked verdict for a day without a submitted
// check-in.
func NoCheckinVerdict() models.Verdict {
	return models.Verdict{
		Approved:   false,
		Status:     models.ClearanceNoCheckin,
		Violations: []models.ReasonCode{models.ReasonNoCheckin},
	}
}

func validateCheckin(c models.DailyCheckin) error {
	if c.SleepQuality < 1 || c.SleepQuality > 10 {
		return apperrors.NewValidationError("sleep_quality", c.SleepQuality, "must be between 1 and 10")
	}
	if c.StressLevel < 1 || c.StressLevel > 10 {
		return apperrors.NewValidationError("stress_level", c.StressLevel, "must be between 1 and 10")
	}
	if c.HomeStress < 1 || c.HomeStress > 10 {
		return apperrors.NewValidationError("home_stress", c.HomeStress, "must be between 1 and 10")
	}
	return nil
}
