package playbook

import (
	"math"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

// SizeEntry is the configured position size for one grade. Contracts is a
// fixed lot count; DrawdownPct sizes relative to the account's daily
// drawdown limit instead when Contracts is zero.
type SizeEntry struct {
	Contracts   int
	DrawdownPct float64
	Label       string
}

// SizingTable maps each grade to its recommended size.
type SizingTable map[models.Grade]SizeEntry

// DefaultSizing returns the drawdown-percent sizing the trader starts with.
func DefaultSizing() SizingTable {
	return SizingTable{
		models.GradeA: {DrawdownPct: 50, Label: "Full Size"},
		models.GradeB: {DrawdownPct: 30, Label: "Reduced"},
		models.GradeC: {DrawdownPct: 15, Label: "Minimum"},
		models.GradeF: {DrawdownPct: 0, Label: "NO TRADE"},
	}
}

// SizeRecommendation is the resolved position size for a graded trade.
type SizeRecommendation struct {
	Grade       models.Grade
	Contracts   int
	DrawdownPct float64
	Label       string
	NoTrade     bool
}

// ResolveSize looks up the recommended size for a grade. A table without an
// entry for the grade fails with a ConfigurationError, except for F which
// safely defaults to no-trade: a missing F entry must never resolve to a
// positive size.
func ResolveSize(grade models.Grade, table SizingTable) (SizeRecommendation, error) {
	entry, ok := table[grade]
	if !ok {
		if grade == models.GradeF {
			return SizeRecommendation{Grade: grade, Label: "NO TRADE", NoTrade: true}, nil
		}
		return SizeRecommendation{}, apperrors.NewConfigurationError("sizing."+string(grade), "no size configured for grade")
	}

	rec := SizeRecommendation{
		Grade:       grade,
		Contracts:   entry.Contracts,
		DrawdownPct: entry.DrawdownPct,
		Label:       entry.Label,
	}
	rec.NoTrade = entry.Contracts <= 0 && entry.DrawdownPct <= 0
	return rec, nil
}

// ContractsFor converts the recommendation into a concrete contract count.
// Fixed counts win; otherwise the count is the drawdown-percent share of the
// daily loss limit divided by the risk per contract, rounded down.
func (r SizeRecommendation) ContractsFor(dailyDrawdown, riskPerContract float64) int {
	if r.NoTrade {
		return 0
	}
	if r.Contracts > 0 {
		return r.Contracts
	}
	if dailyDrawdown <= 0 || riskPerContract <= 0 {
		return 0
	}
	dollars := dailyDrawdown * r.DrawdownPct / 100
	return int(math.Floor(dollars / riskPerContract))
}
