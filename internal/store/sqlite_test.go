package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPlaybook(id string) models.Playbook {
	return models.Playbook{
		ID:   id,
		Name: "ES Opening Drive",
		Rules: []models.Rule{
			{ID: id + "-r1", Tier: models.TierC, Mandatory: true, Description: "wait for the open"},
			{ID: id + "-r2", Tier: models.TierA, Mandatory: false, Description: "volume confirmation"},
		},
		CreatedAt: time.Now(),
	}
}

func testTrade(id, accountID string, pnl float64) models.Trade {
	p := testPlaybook("pb-" + id)
	now := time.Now()
	return models.Trade{
		ID:           id,
		Date:         now,
		AccountID:    accountID,
		Symbol:       "ES",
		Direction:    models.DirectionLong,
		PositionSize: 2,
		PnLGross:     pnl + 4,
		PnLNet:       pnl,
		Commission:   4,
		Grade:        models.GradeA,
		Compliance: models.ComplianceRecord{
			Snapshot: p.Snapshot(),
			Flags:    map[string]bool{p.Rules[0].ID: true},
		},
		EmotionalState: 3,
		WouldRepeat:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestPlaybookRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPlaybook("pb1")
	require.NoError(t, s.SavePlaybook(ctx, &p))

	playbooks, err := s.GetPlaybooks(ctx)
	require.NoError(t, err)
	require.Len(t, playbooks, 1)
	assert.Equal(t, "ES Opening Drive", playbooks[0].Name)
	require.Len(t, playbooks[0].Rules, 2)
	assert.Equal(t, models.TierC, playbooks[0].Rules[0].Tier)
	assert.True(t, playbooks[0].Rules[0].Mandatory)
	assert.False(t, playbooks[0].Rules[1].Mandatory)
}

func TestSavePlaybookReplacesRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPlaybook("pb1")
	require.NoError(t, s.SavePlaybook(ctx, &p))

	p.Rules = p.Rules[:1]
	require.NoError(t, s.SavePlaybook(ctx, &p))

	playbooks, err := s.GetPlaybooks(ctx)
	require.NoError(t, err)
	require.Len(t, playbooks, 1)
	assert.Len(t, playbooks[0].Rules, 1)
}

func TestDeletePlaybookLeavesTrades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testPlaybook("pb1")
	require.NoError(t, s.SavePlaybook(ctx, &p))

	trade := testTrade("t1", "", 100)
	require.NoError(t, s.LogTrade(ctx, &trade))

	require.NoError(t, s.DeletePlaybook(ctx, "pb1"))

	var nerr *apperrors.NotFoundError
	err := s.DeletePlaybook(ctx, "pb1")
	require.ErrorAs(t, err, &nerr)

	got, err := s.GetTradeByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.GradeA, got.Grade)
	assert.Len(t, got.Compliance.Snapshot.Rules, 2)
}

func TestDeletePlaybookRemovesRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1 := testPlaybook("pb1")
	p2 := testPlaybook("pb2")
	p2.Name = "NQ Breakout"
	require.NoError(t, s.SavePlaybook(ctx, &p1))
	require.NoError(t, s.SavePlaybook(ctx, &p2))

	require.NoError(t, s.DeletePlaybook(ctx, "pb1"))

	// Both the playbook row and its rule rows are gone in one commit.
	rules, err := s.rulesFor(ctx, "pb1")
	require.NoError(t, err)
	assert.Empty(t, rules)

	// A miss rolls back without touching anything else.
	var nerr *apperrors.NotFoundError
	require.ErrorAs(t, s.DeletePlaybook(ctx, "missing"), &nerr)
	rules, err = s.rulesFor(ctx, "pb2")
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestTradeRoundtripPreservesCompliance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := testTrade("t1", "acct1", 150)
	require.NoError(t, s.LogTrade(ctx, &trade))

	got, err := s.GetTradeByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, trade.Symbol, got.Symbol)
	assert.Equal(t, trade.PnLNet, got.PnLNet)
	assert.True(t, got.WouldRepeat)
	assert.Equal(t, trade.Compliance.Snapshot.Name, got.Compliance.Snapshot.Name)
	assert.True(t, got.Compliance.Satisfied(trade.Compliance.Snapshot.Rules[0].ID))
	assert.False(t, got.Compliance.Satisfied(trade.Compliance.Snapshot.Rules[1].ID))
}

func TestGetTradeByIDAbsent(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetTradeByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t1 := testTrade("t1", "acct1", 100)
	t2 := testTrade("t2", "acct2", -50)
	t2.Symbol = "NQ"
	t2.Grade = models.GradeC
	require.NoError(t, s.LogTrade(ctx, &t1))
	require.NoError(t, s.LogTrade(ctx, &t2))

	byAccount, err := s.GetTrades(ctx, TradeFilter{AccountID: "acct1"})
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, "t1", byAccount[0].ID)

	bySymbol, err := s.GetTrades(ctx, TradeFilter{Symbol: "NQ"})
	require.NoError(t, err)
	require.Len(t, bySymbol, 1)
	assert.Equal(t, "t2", bySymbol[0].ID)

	byGrade, err := s.GetTrades(ctx, TradeFilter{Grade: models.GradeC})
	require.NoError(t, err)
	require.Len(t, byGrade, 1)

	limited, err := s.GetTrades(ctx, TradeFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUpdateAndDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := testTrade("t1", "", 100)
	require.NoError(t, s.LogTrade(ctx, &trade))

	trade.PnLNet = -25
	trade.Grade = models.GradeB
	require.NoError(t, s.UpdateTrade(ctx, &trade))

	got, err := s.GetTradeByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, -25.0, got.PnLNet)
	assert.Equal(t, models.GradeB, got.Grade)

	require.NoError(t, s.DeleteTrade(ctx, "t1"))
	var nerr *apperrors.NotFoundError
	require.ErrorAs(t, s.DeleteTrade(ctx, "t1"), &nerr)
}

func TestCheckinReplacedPerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := models.DailyCheckin{
		ID: "c1", Date: "2026-08-28",
		SleepQuality: 8, StressLevel: 3, HomeStress: 2,
		ExerciseDone: true, CreatedAt: time.Now(),
	}
	require.NoError(t, s.SaveCheckin(ctx, &first))

	second := first
	second.ID = "c2"
	second.StressLevel = 9
	require.NoError(t, s.SaveCheckin(ctx, &second))

	got, err := s.GetCheckin(ctx, "2026-08-28")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9, got.StressLevel)

	all, err := s.GetCheckins(ctx, CheckinFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	absent, err := s.GetCheckin(ctx, "2026-08-29")
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestAdjustAccountBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account := models.Account{
		ID: "acct1", FirmName: "Apex", Number: "001",
		Status: models.AccountFunded, Size: 50000, CurrentBalance: 50000,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, s.SaveAccount(ctx, &account))

	require.NoError(t, s.AdjustAccountBalance(ctx, "acct1", 250))
	require.NoError(t, s.AdjustAccountBalance(ctx, "acct1", -100))

	got, err := s.GetAccountByID(ctx, "acct1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 50150.0, got.CurrentBalance)

	var nerr *apperrors.NotFoundError
	require.ErrorAs(t, s.AdjustAccountBalance(ctx, "missing", 10), &nerr)
}

func TestSettingsDefaultsAndRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Trading Loan", settings.DebtName)
	assert.Equal(t, 5000.0, settings.DebtAmount)

	settings.DebtAmount = 2500
	settings.GoalAmount = 250000
	require.NoError(t, s.SaveSettings(ctx, settings))

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, got.DebtAmount)
	assert.Equal(t, 250000.0, got.GoalAmount)
}

func TestExportImportRoundtrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	p := testPlaybook("pb1")
	require.NoError(t, src.SavePlaybook(ctx, &p))
	trade := testTrade("t1", "acct1", 75)
	require.NoError(t, src.LogTrade(ctx, &trade))
	checkin := models.DailyCheckin{
		ID: "c1", Date: "2026-08-28",
		SleepQuality: 7, StressLevel: 4, HomeStress: 3, CreatedAt: time.Now(),
	}
	require.NoError(t, src.SaveCheckin(ctx, &checkin))
	withdrawal := models.Withdrawal{
		ID: "w1", AccountID: "acct1", Amount: 500,
		Status: models.WithdrawalPaid, Allocation: "Debt Payment", CreatedAt: time.Now(),
	}
	require.NoError(t, src.SaveWithdrawal(ctx, &withdrawal))

	backup, err := src.ExportAll(ctx)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, dst.ImportAll(ctx, backup))

	playbooks, err := dst.GetPlaybooks(ctx)
	require.NoError(t, err)
	assert.Len(t, playbooks, 1)

	trades, err := dst.GetTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 75.0, trades[0].PnLNet)

	checkins, err := dst.GetCheckins(ctx, CheckinFilter{})
	require.NoError(t, err)
	assert.Len(t, checkins, 1)

	withdrawals, err := dst.GetWithdrawals(ctx)
	require.NoError(t, err)
	assert.Len(t, withdrawals, 1)

	// Importing again replaces rather than duplicates.
	require.NoError(t, dst.ImportAll(ctx, backup))
	trades, err = dst.GetTrades(ctx, TradeFilter{})
	require.NoError(t, err)
	assert.Len(t, trades, 1)
}
