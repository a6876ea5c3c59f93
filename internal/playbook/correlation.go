package playbook

import "github.com/sguzen/trading-manager-pro/internal/models"

// DefaultMinSamples is the sample count below which a correlation entry is
// flagged low-confidence.
const DefaultMinSamples = 5

// GradedTrade is the slice of a trade the correlation analyzer needs: its
// frozen compliance record and realized outcome.
type GradedTrade struct {
	Compliance models.ComplianceRecord
	PnLNet     float64
}

type ruleAccum struct {
	rule       models.Rule
	satCount   int
	satWins    int
	satPnL     float64
	unsatCount int
	unsatWins  int
	unsatPnL   float64
}

// Analyze reports, for every optional rule observed across the trade
// history, how trades that satisfied it performed against trades that did
// not. A trade only counts toward rules present in its own playbook
// snapshot; a snapshot without the rule leaves that trade out of the rule's
// denominator entirely. Entries with fewer than minSamples observations in
// either group are flagged low-confidence (minSamples <= 0 selects
// DefaultMinSamples). Recomputed on demand; an empty history yields an empty
// report.
func Analyze(trades []GradedTrade, minSamples int) []models.RuleImpact {
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}

	accums := make(map[string]*ruleAccum)
	var order []string

	for _, t := range trades {
		for _, r := range t.Compliance.Snapshot.Rules {
			if r.Mandatory {
				continue
			}
			acc, ok := accums[r.ID]
			if !ok {
				acc = &ruleAccum{rule: r}
				accums[r.ID] = acc
				order = append(order, r.ID)
			}
			win := t.PnLNet > 0
			if t.Compliance.Satisfied(r.ID) {
				acc.satCount++
				acc.satPnL += t.PnLNet
				if win {
					acc.satWins++
				}
			} else {
				acc.unsatCount++
				acc.unsatPnL += t.PnLNet
				if win {
					acc.unsatWins++
				}
			}
		}
	}

	report := make([]models.RuleImpact, 0, len(order))
	for _, id := range order {
		acc := accums[id]
		entry := models.RuleImpact{
			RuleID:           id,
			Description:      acc.rule.Description,
			SatisfiedCount:   acc.satCount,
			UnsatisfiedCount: acc.unsatCount,
			LowConfidence:    acc.satCount < minSamples || acc.unsatCount < minSamples,
		}
		if acc.satCount > 0 {
			entry.SatisfiedWinRate = float64(acc.satWins) / float64(acc.satCount)
			entry.SatisfiedAvgPnL = acc.satPnL / float64(acc.satCount)
		}
		if acc.unsatCount > 0 {
			entry.UnsatisfiedWinRate = float64(acc.unsatWins) / float64(acc.unsatCount)
			entry.UnsatisfiedAvgPnL = acc.unsatPnL / float64(acc.unsatCount)
		}
		entry.WinRateDelta = entry.SatisfiedWinRate - entry.UnsatisfiedWinRate
		entry.AvgPnLDelta = entry.SatisfiedAvgPnL - entry.UnsatisfiedAvgPnL
		report = append(report, entry)
	}
	return report
}
