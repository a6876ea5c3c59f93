package cli

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/store"
)

func addAccountCommands(rootCmd *cobra.Command, app *App) {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage prop firms and trading accounts",
	}

	firmAddCmd := &cobra.Command{
		Use:   "add-firm NAME",
		Short: "Register a prop firm and its payout terms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFirmAdd(cmd, app, args[0])
		},
	}
	firmAddCmd.Flags().String("schedule", "", "Payout schedule, e.g. biweekly")
	firmAddCmd.Flags().Float64("split", 90, "Trader's payout split percentage")
	firmAddCmd.Flags().Float64("min-payout", 0, "Minimum payout amount")
	firmAddCmd.Flags().Float64("max-daily-loss", 0, "Max daily loss percentage")
	firmAddCmd.Flags().Float64("max-drawdown", 0, "Max drawdown percentage")
	firmAddCmd.Flags().String("notes", "", "Firm notes")

	firmsCmd := &cobra.Command{
		Use:   "firms",
		Short: "List registered prop firms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFirmList(cmd, app)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add FIRM NUMBER",
		Short: "Add a trading account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountAdd(cmd, app, args[0], args[1])
		},
	}
	addCmd.Flags().Float64("size", 0, "Account size")
	addCmd.Flags().Float64("cost", 0, "Purchase cost")
	addCmd.Flags().String("status", string(models.AccountEvaluation), "Account status (evaluation, funded, blown, inactive)")
	addCmd.Flags().String("purchased", "", "Purchase date (YYYY-MM-DD)")
	addCmd.Flags().String("notes", "", "Account notes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List trading accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountList(cmd, app)
		},
	}
	listCmd.Flags().String("status", "", "Filter by status")
	listCmd.Flags().String("firm", "", "Filter by firm name")

	statusCmd := &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change an account's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountSetStatus(cmd, app, args[0], args[1])
		},
	}

	accountCmd.AddCommand(firmAddCmd, firmsCmd, addCmd, listCmd, statusCmd)
	rootCmd.AddCommand(accountCmd)
}

func runFirmAdd(cmd *cobra.Command, app *App, name string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	schedule, _ := cmd.Flags().GetString("schedule")
	split, _ := cmd.Flags().GetFloat64("split")
	minPayout, _ := cmd.Flags().GetFloat64("min-payout")
	maxDailyLoss, _ := cmd.Flags().GetFloat64("max-daily-loss")
	maxDrawdown, _ := cmd.Flags().GetFloat64("max-drawdown")
	notes, _ := cmd.Flags().GetString("notes")

	firm := &models.PropFirm{
		ID:             ulid.Make().String(),
		Name:           name,
		PayoutSchedule: schedule,
		PayoutSplit:    split,
		MinPayout:      minPayout,
		MaxDailyLoss:   maxDailyLoss,
		MaxDrawdown:    maxDrawdown,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}
	if err := app.Store.SaveFirm(ctx, firm); err != nil {
		return apperrors.Wrap(err, "failed to save firm")
	}

	app.Logger.Info().Str("id", firm.ID).Str("name", name).Msg("Prop firm added")
	if output.IsJSON() {
		return output.JSON(firm)
	}
	output.Success("Added firm %q", name)
	return nil
}

func runFirmList(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}

	firms, err := app.Store.GetFirms(cmd.Context())
	if err != nil {
		return apperrors.Wrap(err, "failed to load firms")
	}
	if output.IsJSON() {
		return output.JSON(firms)
	}
	if len(firms) == 0 {
		output.Info("No firms yet.")
		return nil
	}

	table := NewTable(output, "NAME", "SCHEDULE", "SPLIT", "MIN PAYOUT", "ID")
	for _, f := range firms {
		table.AddRow(f.Name, f.PayoutSchedule, FormatPercent(f.PayoutSplit), FormatMoney(f.MinPayout), f.ID)
	}
	table.Render()
	return nil
}

func runAccountAdd(cmd *cobra.Command, app *App, firm, number string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	statusArg, _ := cmd.Flags().GetString("status")
	status := models.AccountStatus(strings.ToLower(statusArg))
	switch status {
	case models.AccountEvaluation, models.AccountFunded, models.AccountBlown, models.AccountInactive:
	default:
		return apperrors.NewValidationError("status", statusArg, "must be evaluation, funded, blown, or inactive")
	}

	size, _ := cmd.Flags().GetFloat64("size")
	cost, _ := cmd.Flags().GetFloat64("cost")
	purchased, _ := cmd.Flags().GetString("purchased")
	notes, _ := cmd.Flags().GetString("notes")
	if purchased != "" {
		if _, err := time.Parse("2006-01-02", purchased); err != nil {
			return apperrors.NewValidationError("purchased", purchased, "expected YYYY-MM-DD")
		}
	}

	now := time.Now()
	account := &models.Account{
		ID:             ulid.Make().String(),
		FirmName:       firm,
		Number:         number,
		Status:         status,
		Size:           size,
		CurrentBalance: size,
		PurchaseCost:   cost,
		PurchaseDate:   purchased,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := app.Store.SaveAccount(ctx, account); err != nil {
		return apperrors.Wrap(err, "failed to save account")
	}

	app.Logger.Info().Str("id", account.ID).Str("firm", firm).Msg("Account added")
	if output.IsJSON() {
		return output.JSON(account)
	}
	output.Success("Added %s account %s (%s)", firm, number, account.ID)
	return nil
}

func runAccountList(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}

	filter := store.AccountFilter{}
	statusArg, _ := cmd.Flags().GetString("status")
	filter.Status = models.AccountStatus(strings.ToLower(statusArg))
	filter.Firm, _ = cmd.Flags().GetString("firm")

	accounts, err := app.Store.GetAccounts(cmd.Context(), filter)
	if err != nil {
		return apperrors.Wrap(err, "failed to load accounts")
	}
	if output.IsJSON() {
		return output.JSON(accounts)
	}
	if len(accounts) == 0 {
		output.Info("No accounts match.")
		return nil
	}

	table := NewTable(output, "FIRM", "NUMBER", "STATUS", "SIZE", "BALANCE", "P&L", "ID")
	for _, a := range accounts {
		table.AddRow(
			a.FirmName,
			a.Number,
			string(a.Status),
			FormatMoney(a.Size),
			FormatMoney(a.CurrentBalance),
			FormatPnL(a.CurrentBalance-a.Size),
			a.ID,
		)
	}
	table.Render()
	output.Dim("%d account(s)", len(accounts))
	return nil
}

func runAccountSetStatus(cmd *cobra.Command, app *App, id, statusArg string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	status := models.AccountStatus(strings.ToLower(statusArg))
	switch status {
	case models.AccountEvaluation, models.AccountFunded, models.AccountBlown, models.AccountInactive:
	default:
		return apperrors.NewValidationError("status", statusArg, "must be evaluation, funded, blown, or inactive")
	}

	account, err := app.Store.GetAccountByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.NewNotFoundError("account", id)
	}
	account.Status = status
	account.UpdatedAt = time.Now()
	if err := app.Store.SaveAccount(ctx, account); err != nil {
		return apperrors.Wrap(err, "failed to save account")
	}

	app.Logger.Info().Str("id", id).Str("status", string(status)).Msg("Account status changed")
	if output.IsJSON() {
		return output.JSON(account)
	}
	output.Success("Account %s is now %s", account.Number, status)
	return nil
}
