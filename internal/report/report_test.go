package report

import (
	"math"
	"testing"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

func trade(grade models.Grade, pnl float64, emotion int) models.Trade {
	return models.Trade{
		Grade:          grade,
		PnLNet:         pnl,
		EmotionalState: emotion,
		Compliance: models.ComplianceRecord{
			Snapshot: models.PlaybookSnapshot{Name: "ES Opening Drive"},
		},
	}
}

func TestSummarize(t *testing.T) {
	trades := []models.Trade{
		trade(models.GradeA, 200, 2),
		trade(models.GradeA, 100, 3),
		trade(models.GradeB, -50, 5),
		trade(models.GradeF, -100, 9),
	}

	s := Summarize(trades)
	if s.TotalTrades != 4 || s.Wins != 2 || s.Losses != 2 {
		t.Errorf("counts = %d/%d/%d", s.TotalTrades, s.Wins, s.Losses)
	}
	if s.WinRate != 50 {
		t.Errorf("win rate = %v, want 50", s.WinRate)
	}
	if s.TotalPnL != 150 {
		t.Errorf("total pnl = %v, want 150", s.TotalPnL)
	}
	if s.ProfitFactor != 2 {
		t.Errorf("profit factor = %v, want 2", s.ProfitFactor)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalTrades != 0 || s.WinRate != 0 || s.ProfitFactor != 0 {
		t.Errorf("summary of nothing = %+v", s)
	}
}

func TestByGrade_BestFirstAndEmptyOmitted(t *testing.T) {
	trades := []models.Trade{
		trade(models.GradeF, -100, 9),
		trade(models.GradeA, 200, 2),
		trade(models.GradeA, -20, 3),
	}

	stats := ByGrade(trades)
	if len(stats) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(stats))
	}
	if stats[0].Grade != models.GradeA || stats[1].Grade != models.GradeF {
		t.Errorf("order = %s, %s", stats[0].Grade, stats[1].Grade)
	}
	if stats[0].Trades != 2 || stats[0].Wins != 1 {
		t.Errorf("A stats = %+v", stats[0])
	}
}

func TestByEmotion_AllBucketsPresent(t *testing.T) {
	trades := []models.Trade{
		trade(models.GradeA, 100, 2),
		trade(models.GradeB, -50, 8),
	}

	buckets := ByEmotion(trades)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "calm" || buckets[0].Trades != 1 {
		t.Errorf("calm bucket = %+v", buckets[0])
	}
	if buckets[1].Label != "steady" || buckets[1].Trades != 0 {
		t.Errorf("steady bucket should be present and empty, got %+v", buckets[1])
	}
	if buckets[2].Label != "tilted" || buckets[2].Trades != 1 {
		t.Errorf("tilted bucket = %+v", buckets[2])
	}
}

func TestByPlaybook(t *testing.T) {
	a := trade(models.GradeA, 100, 2)
	b := trade(models.GradeB, -50, 5)
	b.Compliance.Snapshot.Name = "NQ Pullback"

	stats := ByPlaybook([]models.Trade{a, b, a})
	if len(stats) != 2 {
		t.Fatalf("expected 2 playbooks, got %d", len(stats))
	}
	if stats[0].Name != "ES Opening Drive" || stats[0].Trades != 2 {
		t.Errorf("first playbook = %+v", stats[0])
	}
	if stats[1].Name != "NQ Pullback" || stats[1].Trades != 1 {
		t.Errorf("second playbook = %+v", stats[1])
	}
}

func TestGoals(t *testing.T) {
	settings := models.Settings{DebtName: "Trading Loan", DebtAmount: 5000, GoalAmount: 10000}
	withdrawals := []models.Withdrawal{
		{Amount: 1000, Status: models.WithdrawalPaid, Allocation: "Debt Payment"},
		{Amount: 500, Status: models.WithdrawalPaid, Allocation: "Savings"},
		{Amount: 2000, Status: models.WithdrawalRequested, Allocation: "Debt Payment"},
		{Amount: 300, Status: models.WithdrawalDenied, Allocation: "Debt Payment"},
	}

	p := Goals(settings, withdrawals)
	if p.DebtPaid != 1000 {
		t.Errorf("debt paid = %v, want 1000 (only paid debt allocations count)", p.DebtPaid)
	}
	if p.DebtRemaining != 4000 {
		t.Errorf("debt remaining = %v, want 4000", p.DebtRemaining)
	}
	if p.TotalWithdrawn != 1500 {
		t.Errorf("total withdrawn = %v, want 1500", p.TotalWithdrawn)
	}
	if math.Abs(p.GoalPercent-15) > 1e-9 {
		t.Errorf("goal percent = %v, want 15", p.GoalPercent)
	}
}

func TestGoals_ClampsOverpayment(t *testing.T) {
	settings := models.Settings{DebtAmount: 1000, GoalAmount: 1000}
	withdrawals := []models.Withdrawal{
		{Amount: 2000, Status: models.WithdrawalPaid, Allocation: "Debt Payment"},
	}

	p := Goals(settings, withdrawals)
	if p.DebtRemaining != 0 {
		t.Errorf("debt remaining = %v, want 0", p.DebtRemaining)
	}
	if p.GoalPercent != 100 {
		t.Errorf("goal percent = %v, want 100", p.GoalPercent)
	}
}
