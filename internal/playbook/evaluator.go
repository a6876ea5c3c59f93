package playbook

import (
	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

// Evaluate computes the letter grade for a trade's compliance flags against
// a playbook snapshot.
//
// Tiers are checked bottom-up as an explicit ordered decision, never a
// weighted score: any missed mandatory C rule is an immediate F, else a
// missed mandatory B rule caps the trade at C, else a missed mandatory A rule
// caps it at B, else the trade earns an A. A tier with no mandatory rules is
// vacuously satisfied, so an empty playbook grades A. Optional rules are
// recorded for analytics but carry zero weight here.
//
// The function is pure: identical inputs always produce identical grades.
func Evaluate(snapshot models.PlaybookSnapshot, flags map[string]bool) (models.Grade, error) {
	for id := range flags {
		if _, ok := snapshot.Rule(id); !ok {
			return "", apperrors.NewValidationError("flags", id, "compliance flag references a rule outside the playbook snapshot")
		}
	}

	if !mandatorySatisfied(snapshot, models.TierC, flags) {
		return models.GradeF, nil
	}
	if !mandatorySatisfied(snapshot, models.TierB, flags) {
		return models.GradeC, nil
	}
	if !mandatorySatisfied(snapshot, models.TierA, flags) {
		return models.GradeB, nil
	}
	return models.GradeA, nil
}

// mandatorySatisfied reports whether every mandatory rule in the tier has a
// true compliance flag. A missing flag counts as false.
func mandatorySatisfied(snapshot models.PlaybookSnapshot, tier models.Tier, flags map[string]bool) bool {
	for _, r := range snapshot.Rules {
		if r.Tier != tier || !r.Mandatory {
			continue
		}
		if !flags[r.ID] {
			return false
		}
	}
	return true
}
