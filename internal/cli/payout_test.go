package cli

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/store"
)

func TestPayoutBalanceDelta(t *testing.T) {
	cases := []struct {
		name string
		from models.WithdrawalStatus
		to   models.WithdrawalStatus
		want float64
	}{
		{"requested to paid", models.WithdrawalRequested, models.WithdrawalPaid, -500},
		{"denied to paid", models.WithdrawalDenied, models.WithdrawalPaid, -500},
		{"paid to denied refunds", models.WithdrawalPaid, models.WithdrawalDenied, 500},
		{"requested to denied", models.WithdrawalRequested, models.WithdrawalDenied, 0},
		{"paid to paid", models.WithdrawalPaid, models.WithdrawalPaid, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := payoutBalanceDelta(tc.from, tc.to, 500); got != tc.want {
				t.Errorf("payoutBalanceDelta(%s, %s, 500) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func newPayoutTestApp(t *testing.T) (*App, *cobra.Command) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	cmd.SetOut(io.Discard)
	cmd.SetContext(context.Background())

	return &App{Logger: zerolog.Nop(), Store: s}, cmd
}

func TestPayoutMark_RepeatedPaidDebitsOnce(t *testing.T) {
	app, cmd := newPayoutTestApp(t)
	ctx := cmd.Context()

	account := models.Account{
		ID: "acct1", FirmName: "Apex", Number: "A-100",
		Status: models.AccountFunded, Size: 50000, CurrentBalance: 52000,
	}
	if err := app.Store.SaveAccount(ctx, &account); err != nil {
		t.Fatalf("save account: %v", err)
	}
	withdrawal := models.Withdrawal{
		ID: "wd1", AccountID: "acct1", Amount: 1000,
		Status: models.WithdrawalRequested, CreatedAt: time.Now(),
	}
	if err := app.Store.SaveWithdrawal(ctx, &withdrawal); err != nil {
		t.Fatalf("save withdrawal: %v", err)
	}

	if err := runPayoutMark(cmd, app, "wd1", "paid"); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	// Marking an already-paid payout again must not move the balance.
	if err := runPayoutMark(cmd, app, "wd1", "paid"); err != nil {
		t.Fatalf("second mark: %v", err)
	}

	got, err := app.Store.GetAccountByID(ctx, "acct1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.CurrentBalance != 51000 {
		t.Errorf("balance = %v, want 51000 after a single debit", got.CurrentBalance)
	}
}

func TestPayoutMark_DenyingPaidRestoresBalance(t *testing.T) {
	app, cmd := newPayoutTestApp(t)
	ctx := cmd.Context()

	account := models.Account{
		ID: "acct1", FirmName: "Apex", Number: "A-100",
		Status: models.AccountFunded, Size: 50000, CurrentBalance: 52000,
	}
	if err := app.Store.SaveAccount(ctx, &account); err != nil {
		t.Fatalf("save account: %v", err)
	}
	withdrawal := models.Withdrawal{
		ID: "wd1", AccountID: "acct1", Amount: 1000,
		Status: models.WithdrawalRequested, CreatedAt: time.Now(),
	}
	if err := app.Store.SaveWithdrawal(ctx, &withdrawal); err != nil {
		t.Fatalf("save withdrawal: %v", err)
	}

	if err := runPayoutMark(cmd, app, "wd1", "paid"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if err := runPayoutMark(cmd, app, "wd1", "denied"); err != nil {
		t.Fatalf("mark denied: %v", err)
	}

	got, err := app.Store.GetAccountByID(ctx, "acct1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.CurrentBalance != 52000 {
		t.Errorf("balance = %v, want 52000 restored", got.CurrentBalance)
	}
}
