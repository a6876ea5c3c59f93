package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

func addPayoutCommands(rootCmd *cobra.Command, app *App) {
	payoutCmd := &cobra.Command{
		Use:   "payout",
		Short: "Track withdrawals and financial goals",
	}

	requestCmd := &cobra.Command{
		Use:   "request ACCOUNT AMOUNT",
		Short: "Record a payout request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayoutRequest(cmd, app, args[0], args[1])
		},
	}
	requestCmd.Flags().String("allocation", "", "Where the money goes, e.g. \"Debt Payment\"")

	markCmd := &cobra.Command{
		Use:   "mark ID STATUS",
		Short: "Mark a payout as paid or denied",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayoutMark(cmd, app, args[0], args[1])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List payouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayoutList(cmd, app)
		},
	}

	goalsCmd := &cobra.Command{
		Use:   "set-goals",
		Short: "Set the debt and payout goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayoutSetGoals(cmd, app)
		},
	}
	goalsCmd.Flags().String("debt-name", "", "Name of the debt being paid down")
	goalsCmd.Flags().Float64("debt", 0, "Debt amount")
	goalsCmd.Flags().Float64("goal", 0, "Total payout goal")

	payoutCmd.AddCommand(requestCmd, markCmd, listCmd, goalsCmd)
	rootCmd.AddCommand(payoutCmd)
}

func runPayoutRequest(cmd *cobra.Command, app *App, accountID, amountArg string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	amount, err := strconv.ParseFloat(amountArg, 64)
	if err != nil || amount <= 0 {
		return apperrors.NewValidationError("amount", amountArg, "must be a positive number")
	}
	account, err := app.Store.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.NewNotFoundError("account", accountID)
	}

	allocation, _ := cmd.Flags().GetString("allocation")
	withdrawal := &models.Withdrawal{
		ID:         ulid.Make().String(),
		AccountID:  account.ID,
		Amount:     amount,
		Status:     models.WithdrawalRequested,
		Allocation: allocation,
		CreatedAt:  time.Now(),
	}
	if err := app.Store.SaveWithdrawal(ctx, withdrawal); err != nil {
		return apperrors.Wrap(err, "failed to save payout")
	}

	app.Logger.Info().Str("id", withdrawal.ID).Float64("amount", amount).Msg("Payout requested")
	if output.IsJSON() {
		return output.JSON(withdrawal)
	}
	output.Success("Requested %s from %s account %s", FormatMoney(amount), account.FirmName, account.Number)
	return nil
}

func runPayoutMark(cmd *cobra.Command, app *App, id, statusArg string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	status := models.WithdrawalStatus(strings.ToLower(statusArg))
	if status != models.WithdrawalPaid && status != models.WithdrawalDenied {
		return apperrors.NewValidationError("status", statusArg, "must be paid or denied")
	}

	withdrawals, err := app.Store.GetWithdrawals(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load payouts")
	}
	var target *models.Withdrawal
	for i := range withdrawals {
		if withdrawals[i].ID == id {
			target = &withdrawals[i]
			break
		}
	}
	if target == nil {
		return apperrors.NewNotFoundError("withdrawal", id)
	}

	if target.Status == status {
		if output.IsJSON() {
			return output.JSON(target)
		}
		output.Info("Payout %s is already %s.", id, status)
		return nil
	}

	delta := payoutBalanceDelta(target.Status, status, target.Amount)
	target.Status = status
	if err := app.Store.SaveWithdrawal(ctx, target); err != nil {
		return apperrors.Wrap(err, "failed to update payout")
	}
	if delta != 0 {
		if err := app.Store.AdjustAccountBalance(ctx, target.AccountID, delta); err != nil {
			return apperrors.Wrap(err, "failed to update account balance")
		}
	}

	app.Logger.Info().Str("id", id).Str("status", string(status)).Msg("Payout updated")
	if output.IsJSON() {
		return output.JSON(target)
	}
	output.Success("Payout %s marked %s", id, status)
	return nil
}

// payoutBalanceDelta returns the account balance change for a payout
// status transition. Money leaves the account only when a payout first
// becomes paid, and comes back if a paid payout is later denied.
func payoutBalanceDelta(from, to models.WithdrawalStatus, amount float64) float64 {
	switch {
	case from != models.WithdrawalPaid && to == models.WithdrawalPaid:
		return -amount
	case from == models.WithdrawalPaid && to == models.WithdrawalDenied:
		return amount
	default:
		return 0
	}
}

func runPayoutList(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}

	withdrawals, err := app.Store.GetWithdrawals(cmd.Context())
	if err != nil {
		return apperrors.Wrap(err, "failed to load payouts")
	}
	if output.IsJSON() {
		return output.JSON(withdrawals)
	}
	if len(withdrawals) == 0 {
		output.Info("No payouts recorded.")
		return nil
	}

	var totalPaid float64
	table := NewTable(output, "DATE", "ACCOUNT", "AMOUNT", "STATUS", "ALLOCATION", "ID")
	for _, w := range withdrawals {
		if w.Status == models.WithdrawalPaid {
			totalPaid += w.Amount
		}
		table.AddRow(
			FormatDate(w.CreatedAt),
			w.AccountID,
			FormatMoney(w.Amount),
			string(w.Status),
			w.Allocation,
			w.ID,
		)
	}
	table.Render()
	output.Bold("Total paid: %s", FormatMoney(totalPaid))
	return nil
}

func runPayoutSetGoals(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	settings, err := app.Store.GetSettings(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load settings")
	}
	if cmd.Flags().Changed("debt-name") {
		settings.DebtName, _ = cmd.Flags().GetString("debt-name")
	}
	if cmd.Flags().Changed("debt") {
		settings.DebtAmount, _ = cmd.Flags().GetFloat64("debt")
	}
	if cmd.Flags().Changed("goal") {
		settings.GoalAmount, _ = cmd.Flags().GetFloat64("goal")
	}
	if err := app.Store.SaveSettings(ctx, settings); err != nil {
		return apperrors.Wrap(err, "failed to save settings")
	}

	if output.IsJSON() {
		return output.JSON(settings)
	}
	output.Success("Goals updated: %s %s, payout goal %s",
		settings.DebtName, FormatMoney(settings.DebtAmount), FormatMoney(settings.GoalAmount))
	return nil
}
