// Package report aggregates trade history into the performance views the
// CLI renders: overall metrics, per-grade and per-playbook breakdowns,
// emotional-state buckets, and debt/goal progress. All functions are pure
// folds over the records passed in.
package report

import "github.com/sguzen/trading-manager-pro/internal/models"

// Summary holds the headline numbers for a set of trades.
type Summary struct {
	TotalTrades  int
	Wins         int
	Losses       int
	WinRate      float64 // percent
	TotalPnL     float64
	AvgPnL       float64
	ProfitFactor float64
}

// Summarize computes the overall metrics for a trade history.
func Summarize(trades []models.Trade) Summary {
	var s Summary
	var grossWin, grossLoss float64
	for i := range trades {
		t := &trades[i]
		s.TotalTrades++
		s.TotalPnL += t.PnLNet
		if t.Win() {
			s.Wins++
			grossWin += t.PnLNet
		} else {
			s.Losses++
			grossLoss += t.PnLNet
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
		s.AvgPnL = s.TotalPnL / float64(s.TotalTrades)
	}
	if grossLoss != 0 {
		s.ProfitFactor = grossWin / -grossLoss
	}
	return s
}

// GradeStats is the performance of trades sharing one grade.
type GradeStats struct {
	Grade    models.Grade
	Trades   int
	Wins     int
	WinRate  float64 // percent
	TotalPnL float64
	AvgPnL   float64
}

// ByGrade breaks trade performance down per grade, best grade first. Grades
// with no trades are omitted.
func ByGrade(trades []models.Trade) []GradeStats {
	byGrade := make(map[models.Grade][]models.Trade)
	for _, t := range trades {
		byGrade[t.Grade] = append(byGrade[t.Grade], t)
	}

	var out []GradeStats
	for _, g := range models.Grades {
		group := byGrade[g]
		if len(group) == 0 {
			continue
		}
		sum := Summarize(group)
		out = append(out, GradeStats{
			Grade:    g,
			Trades:   sum.TotalTrades,
			Wins:     sum.Wins,
			WinRate:  sum.WinRate,
			TotalPnL: sum.TotalPnL,
			AvgPnL:   sum.AvgPnL,
		})
	}
	return out
}

// EmotionBucket groups trades by the trader's emotional state at log time.
type EmotionBucket struct {
	Label    string
	Min, Max int
	Trades   int
	Wins     int
	WinRate  float64 // percent
	TotalPnL float64
	AvgPnL   float64
}

// ByEmotion buckets trades into calm (1-3), steady (4-6), and tilted (7-10)
// emotional states. Empty buckets are included so the caller can show the
// full scale.
func ByEmotion(trades []models.Trade) []EmotionBucket {
	buckets := []EmotionBucket{
		{Label: "calm", Min: 1, Max: 3},
		{Label: "steady", Min: 4, Max: 6},
		{Label: "tilted", Min: 7, Max: 10},
	}
	for i := range buckets {
		b := &buckets[i]
		var group []models.Trade
		for _, t := range trades {
			if t.EmotionalState >= b.Min && t.EmotionalState <= b.Max {
				group = append(group, t)
			}
		}
		sum := Summarize(group)
		b.Trades = sum.TotalTrades
		b.Wins = sum.Wins
		b.WinRate = sum.WinRate
		b.TotalPnL = sum.TotalPnL
		b.AvgPnL = sum.AvgPnL
	}
	return buckets
}

// PlaybookStats is the performance of trades graded against one playbook
// snapshot name.
type PlaybookStats struct {
	Name     string
	Trades   int
	Wins     int
	WinRate  float64 // percent
	TotalPnL float64
}

// ByPlaybook breaks trade performance down per playbook, in first-observed
// order.
func ByPlaybook(trades []models.Trade) []PlaybookStats {
	byName := make(map[string][]models.Trade)
	var order []string
	for _, t := range trades {
		name := t.Compliance.Snapshot.Name
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = append(byName[name], t)
	}

	out := make([]PlaybookStats, 0, len(order))
	for _, name := range order {
		sum := Summarize(byName[name])
		out = append(out, PlaybookStats{
			Name:     name,
			Trades:   sum.TotalTrades,
			Wins:     sum.Wins,
			WinRate:  sum.WinRate,
			TotalPnL: sum.TotalPnL,
		})
	}
	return out
}

// GoalProgress tracks debt payoff and the payout goal from recorded
// withdrawals.
type GoalProgress struct {
	DebtName       string
	DebtAmount     float64
	DebtPaid       float64
	DebtRemaining  float64
	TotalWithdrawn float64
	GoalAmount     float64
	GoalPercent    float64
}

// Goals computes debt and payout-goal progress. Only paid withdrawals count;
// debt progress additionally requires the "Debt Payment" allocation.
func Goals(settings models.Settings, withdrawals []models.Withdrawal) GoalProgress {
	p := GoalProgress{
		DebtName:   settings.DebtName,
		DebtAmount: settings.DebtAmount,
		GoalAmount: settings.GoalAmount,
	}
	for _, w := range withdrawals {
		if w.Status != models.WithdrawalPaid {
			continue
		}
		p.TotalWithdrawn += w.Amount
		if w.Allocation == "Debt Payment" {
			p.DebtPaid += w.Amount
		}
	}
	p.DebtRemaining = p.DebtAmount - p.DebtPaid
	if p.DebtRemaining < 0 {
		p.DebtRemaining = 0
	}
	if p.GoalAmount > 0 {
		p.GoalPercent = p.TotalWithdrawn / p.GoalAmount * 100
		if p.GoalPercent > 100 {
			p.GoalPercent = 100
		}
	}
	return p
}
