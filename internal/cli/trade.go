package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/playbook"
	"github.com/sguzen/trading-manager-pro/internal/psych"
	"github.com/sguzen/trading-manager-pro/internal/store"
)

func addTradeCommands(rootCmd *cobra.Command, app *App) {
	tradeCmd := &cobra.Command{
		Use:   "trade",
		Short: "Log, grade, and review trades",
	}

	logCmd := &cobra.Command{
		Use:   "log SYMBOL",
		Short: "Log a completed trade and grade it against a playbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeLog(cmd, app, args[0])
		},
	}
	logCmd.Flags().StringP("playbook", "p", "", "Playbook to grade against (name or ID)")
	logCmd.Flags().IntSlice("satisfied", nil, "Rule numbers followed, per: playbook show")
	logCmd.Flags().StringP("account", "a", "", "Account the trade was taken on")
	logCmd.Flags().StringP("direction", "d", "LONG", "Trade direction (LONG or SHORT)")
	logCmd.Flags().Int("size", 0, "Position size in contracts")
	logCmd.Flags().Float64("entry", 0, "Entry price")
	logCmd.Flags().Float64("stop", 0, "Stop loss price")
	logCmd.Flags().Float64("target", 0, "Take profit price")
	logCmd.Flags().Float64("pnl", 0, "Net P&L")
	logCmd.Flags().Float64("commission", 0, "Commission paid")
	logCmd.Flags().Int("emotion", 5, "Emotional state during the trade, 1=calm 10=tilted")
	logCmd.Flags().Bool("would-repeat", true, "Would you take this trade again")
	logCmd.Flags().String("notes", "", "Trade notes")
	logCmd.Flags().String("date", "", "Trade date (YYYY-MM-DD, default today)")
	logCmd.Flags().Bool("force", false, "Log even when today's check-in blocks trading")
	logCmd.MarkFlagRequired("playbook")

	gradeCmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a rule checklist without logging a trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeGrade(cmd, app)
		},
	}
	gradeCmd.Flags().StringP("playbook", "p", "", "Playbook to grade against (name or ID)")
	gradeCmd.Flags().IntSlice("satisfied", nil, "Rule numbers followed, per: playbook show")
	gradeCmd.MarkFlagRequired("playbook")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List logged trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeList(cmd, app)
		},
	}
	listCmd.Flags().StringP("account", "a", "", "Filter by account ID")
	listCmd.Flags().StringP("symbol", "s", "", "Filter by symbol")
	listCmd.Flags().StringP("grade", "g", "", "Filter by grade (A, B, C, F)")
	listCmd.Flags().Int("days", 0, "Only trades from the last N days")
	listCmd.Flags().IntP("limit", "n", 50, "Maximum number of trades")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a trade with its rule-by-rule compliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeShow(cmd, app, args[0])
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Correct a trade; compliance edits re-grade against the frozen snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeEdit(cmd, app, args[0])
		},
	}
	editCmd.Flags().IntSlice("satisfied", nil, "Replacement rule numbers followed")
	editCmd.Flags().Float64("pnl", 0, "Corrected net P&L")
	editCmd.Flags().Int("emotion", 0, "Corrected emotional state, 1=calm 10=tilted")
	editCmd.Flags().Bool("would-repeat", true, "Would you take this trade again")
	editCmd.Flags().String("notes", "", "Replacement notes")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a trade and reverse its account balance effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeDelete(cmd, app, args[0])
		},
	}

	tradeCmd.AddCommand(logCmd, gradeCmd, listCmd, showCmd, editCmd, deleteCmd)
	rootCmd.AddCommand(tradeCmd)
}

func runTradeLog(cmd *cobra.Command, app *App, symbol string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	dateArg, _ := cmd.Flags().GetString("date")
	tradeDate := time.Now()
	if dateArg != "" {
		parsed, err := time.Parse("2006-01-02", dateArg)
		if err != nil {
			return apperrors.NewValidationError("date", dateArg, "expected YYYY-MM-DD")
		}
		tradeDate = parsed
	}

	force, _ := cmd.Flags().GetBool("force")
	verdict := app.verdictFor(ctx, tradeDate.Format("2006-01-02"))
	if !verdict.Approved && !force {
		output.Error("Trading not approved today (%s)", verdict.Status)
		for _, v := range verdict.Violations {
			output.Printf("  - %s\n", v)
		}
		output.Dim("Re-run with --force to log anyway.")
		return apperrors.ErrTradingBlocked
	}
	if verdict.Status == models.ClearanceYellow {
		output.Warning("Cleared YELLOW, restrictions apply:")
		for _, r := range verdict.Restrictions {
			output.Printf("  - %s\n", r)
		}
	}

	playbookKey, _ := cmd.Flags().GetString("playbook")
	satisfied, _ := cmd.Flags().GetIntSlice("satisfied")
	grade, compliance, err := app.gradeChecklist(ctx, playbookKey, satisfied)
	if err != nil {
		return err
	}

	direction, _ := cmd.Flags().GetString("direction")
	dir := models.Direction(strings.ToUpper(direction))
	if dir != models.DirectionLong && dir != models.DirectionShort {
		return apperrors.NewValidationError("direction", direction, "must be LONG or SHORT")
	}
	emotion, _ := cmd.Flags().GetInt("emotion")
	if emotion < 1 || emotion > 10 {
		return apperrors.NewValidationError("emotion", emotion, "must be between 1 and 10")
	}

	size, _ := cmd.Flags().GetInt("size")
	entry, _ := cmd.Flags().GetFloat64("entry")
	stop, _ := cmd.Flags().GetFloat64("stop")
	target, _ := cmd.Flags().GetFloat64("target")
	pnl, _ := cmd.Flags().GetFloat64("pnl")
	commission, _ := cmd.Flags().GetFloat64("commission")
	wouldRepeat, _ := cmd.Flags().GetBool("would-repeat")
	notes, _ := cmd.Flags().GetString("notes")
	accountID, _ := cmd.Flags().GetString("account")

	if accountID != "" {
		account, err := app.Store.GetAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return apperrors.NewNotFoundError("account", accountID)
		}
	}

	now := time.Now()
	trade := &models.Trade{
		ID:             ulid.Make().String(),
		Date:           tradeDate,
		AccountID:      accountID,
		Symbol:         strings.ToUpper(symbol),
		Direction:      dir,
		PositionSize:   size,
		EntryPrice:     entry,
		StopLoss:       stop,
		TakeProfit:     target,
		PnLGross:       pnl + commission,
		PnLNet:         pnl,
		Commission:     commission,
		Grade:          grade,
		Compliance:     compliance,
		EmotionalState: emotion,
		WouldRepeat:    wouldRepeat,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := app.Store.LogTrade(ctx, trade); err != nil {
		return apperrors.Wrap(err, "failed to save trade")
	}
	if accountID != "" && trade.PnLNet != 0 {
		if err := app.Store.AdjustAccountBalance(ctx, accountID, trade.PnLNet); err != nil {
			return apperrors.Wrap(err, "failed to update account balance")
		}
	}

	app.Logger.Info().
		Str("id", trade.ID).
		Str("symbol", trade.Symbol).
		Str("grade", string(grade)).
		Float64("pnl", trade.PnLNet).
		Msg("Trade logged")

	if output.IsJSON() {
		return output.JSON(trade)
	}
	output.Success("Logged %s %s for %s", trade.Symbol, trade.Direction, FormatPnL(trade.PnLNet))
	output.Printf("Grade: %s\n", FormatGrade(output, grade))
	app.printSizeRecommendation(output, grade, size)
	return nil
}

func runTradeGrade(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	playbookKey, _ := cmd.Flags().GetString("playbook")
	satisfied, _ := cmd.Flags().GetIntSlice("satisfied")
	grade, compliance, err := app.gradeChecklist(ctx, playbookKey, satisfied)
	if err != nil {
		return err
	}

	rec, err := playbook.ResolveSize(grade, app.Config.SizingTable())
	if err != nil {
		return err
	}
	contracts := rec.ContractsFor(app.Config.Risk.DailyDrawdown, app.Config.Risk.RiskPerContract)

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"grade":     grade,
			"label":     rec.Label,
			"contracts": contracts,
			"no_trade":  rec.NoTrade,
			"flags":     compliance.Flags,
		})
	}

	output.Printf("Grade: %s\n", FormatGrade(output, grade))
	app.printSizeRecommendation(output, grade, 0)
	for _, r := range compliance.Snapshot.Rules {
		mark := output.ColoredString(ColorRed, "✗")
		if compliance.Satisfied(r.ID) {
			mark = output.ColoredString(ColorGreen, "✓")
		}
		output.Printf("  %s %s %s\n", mark, TierLabel(r), r.Description)
	}
	return nil
}

func runTradeList(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	filter := store.TradeFilter{}
	filter.AccountID, _ = cmd.Flags().GetString("account")
	filter.Symbol, _ = cmd.Flags().GetString("symbol")
	gradeArg, _ := cmd.Flags().GetString("grade")
	filter.Grade = models.Grade(strings.ToUpper(gradeArg))
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	if days, _ := cmd.Flags().GetInt("days"); days > 0 {
		filter.StartDate = time.Now().AddDate(0, 0, -days)
	}

	trades, err := app.Store.GetTrades(ctx, filter)
	if err != nil {
		return apperrors.Wrap(err, "failed to load trades")
	}

	if output.IsJSON() {
		return output.JSON(trades)
	}
	if len(trades) == 0 {
		output.Info("No trades match.")
		return nil
	}

	table := NewTable(output, "DATE", "SYMBOL", "DIR", "SIZE", "P&L", "GRADE", "PLAYBOOK", "ID")
	for _, t := range trades {
		table.AddRow(
			FormatDate(t.Date),
			t.Symbol,
			string(t.Direction),
			strconv.Itoa(t.PositionSize),
			FormatPnL(t.PnLNet),
			FormatGrade(output, t.Grade),
			t.Compliance.Snapshot.Name,
			t.ID,
		)
	}
	table.Render()
	return nil
}

func runTradeShow(cmd *cobra.Command, app *App, id string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	trade, err := app.Store.GetTradeByID(ctx, id)
	if err != nil {
		return err
	}
	if trade == nil {
		return apperrors.NewNotFoundError("trade", id)
	}

	if output.IsJSON() {
		return output.JSON(trade)
	}

	output.Bold("%s %s  %s", trade.Symbol, trade.Direction, FormatDate(trade.Date))
	output.Dim("%s", trade.ID)
	output.Println()
	output.Printf("Grade:     %s\n", FormatGrade(output, trade.Grade))
	output.Printf("P&L:       %s net (%s gross, %s commission)\n",
		FormatPnL(trade.PnLNet), FormatPnL(trade.PnLGross), FormatMoney(trade.Commission))
	output.Printf("Size:      %d contracts\n", trade.PositionSize)
	if trade.EntryPrice != 0 {
		output.Printf("Entry:     %.2f  stop %.2f  target %.2f\n", trade.EntryPrice, trade.StopLoss, trade.TakeProfit)
	}
	output.Printf("Emotion:   %d/10\n", trade.EmotionalState)
	output.Printf("Repeat:    %v\n", trade.WouldRepeat)
	if trade.AccountID != "" {
		output.Printf("Account:   %s\n", trade.AccountID)
	}
	if trade.Notes != "" {
		output.Printf("Notes:     %s\n", trade.Notes)
	}

	output.Println()
	output.Bold("Checklist (%s)", trade.Compliance.Snapshot.Name)
	for _, r := range trade.Compliance.Snapshot.Rules {
		mark := output.ColoredString(ColorRed, "✗")
		if trade.Compliance.Satisfied(r.ID) {
			mark = output.ColoredString(ColorGreen, "✓")
		}
		output.Printf("  %s %s %s\n", mark, TierLabel(r), r.Description)
	}
	return nil
}

func runTradeEdit(cmd *cobra.Command, app *App, id string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	trade, err := app.Store.GetTradeByID(ctx, id)
	if err != nil {
		return err
	}
	if trade == nil {
		return apperrors.NewNotFoundError("trade", id)
	}
	oldPnL := trade.PnLNet

	if cmd.Flags().Changed("satisfied") {
		satisfied, _ := cmd.Flags().GetIntSlice("satisfied")
		flags, err := parseRuleSelection(trade.Compliance.Snapshot.Rules, satisfied)
		if err != nil {
			return err
		}
		trade.Compliance.Flags = flags
		grade, err := playbook.Evaluate(trade.Compliance.Snapshot, flags)
		if err != nil {
			return err
		}
		trade.Grade = grade
	}
	if cmd.Flags().Changed("pnl") {
		pnl, _ := cmd.Flags().GetFloat64("pnl")
		trade.PnLNet = pnl
		trade.PnLGross = pnl + trade.Commission
	}
	if cmd.Flags().Changed("emotion") {
		emotion, _ := cmd.Flags().GetInt("emotion")
		if emotion < 1 || emotion > 10 {
			return apperrors.NewValidationError("emotion", emotion, "must be between 1 and 10")
		}
		trade.EmotionalState = emotion
	}
	if cmd.Flags().Changed("would-repeat") {
		trade.WouldRepeat, _ = cmd.Flags().GetBool("would-repeat")
	}
	if cmd.Flags().Changed("notes") {
		trade.Notes, _ = cmd.Flags().GetString("notes")
	}
	trade.UpdatedAt = time.Now()

	if err := app.Store.UpdateTrade(ctx, trade); err != nil {
		return apperrors.Wrap(err, "failed to update trade")
	}
	if trade.AccountID != "" && trade.PnLNet != oldPnL {
		if err := app.Store.AdjustAccountBalance(ctx, trade.AccountID, trade.PnLNet-oldPnL); err != nil {
			return apperrors.Wrap(err, "failed to update account balance")
		}
	}

	app.Logger.Info().Str("id", trade.ID).Str("grade", string(trade.Grade)).Msg("Trade updated")
	if output.IsJSON() {
		return output.JSON(trade)
	}
	output.Success("Updated %s. Grade: %s", trade.Symbol, FormatGrade(output, trade.Grade))
	return nil
}

func runTradeDelete(cmd *cobra.Command, app *App, id string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	trade, err := app.Store.GetTradeByID(ctx, id)
	if err != nil {
		return err
	}
	if trade == nil {
		return apperrors.NewNotFoundError("trade", id)
	}
	if err := app.Store.DeleteTrade(ctx, id); err != nil {
		return apperrors.Wrap(err, "failed to delete trade")
	}
	if trade.AccountID != "" && trade.PnLNet != 0 {
		if err := app.Store.AdjustAccountBalance(ctx, trade.AccountID, -trade.PnLNet); err != nil {
			return apperrors.Wrap(err, "failed to reverse account balance")
		}
	}

	app.Logger.Info().Str("id", id).Msg("Trade deleted")
	if output.IsJSON() {
		return output.JSON(map[string]string{"deleted": id})
	}
	output.Success("Deleted trade %s", id)
	return nil
}

// gradeChecklist resolves a playbook, maps the selected rule numbers to
// compliance flags, and grades them.
func (a *App) gradeChecklist(ctx context.Context, playbookKey string, satisfied []int) (models.Grade, models.ComplianceRecord, error) {
	catalog, err := a.loadCatalog(ctx)
	if err != nil {
		return "", models.ComplianceRecord{}, apperrors.Wrap(err, "failed to load playbooks")
	}
	p, err := findPlaybook(catalog.Playbooks(), playbookKey)
	if err != nil {
		return "", models.ComplianceRecord{}, err
	}

	snapshot := p.Snapshot()
	flags, err := parseRuleSelection(snapshot.Rules, satisfied)
	if err != nil {
		return "", models.ComplianceRecord{}, err
	}
	grade, err := playbook.Evaluate(snapshot, flags)
	if err != nil {
		return "", models.ComplianceRecord{}, err
	}
	return grade, models.ComplianceRecord{Snapshot: snapshot, Flags: flags}, nil
}

// verdictFor evaluates the eligibility gate for a date, degrading to the
// no-checkin verdict when nothing was submitted.
func (a *App) verdictFor(ctx context.Context, date string) models.Verdict {
	checkin, err := a.Store.GetCheckin(ctx, date)
	if err != nil || checkin == nil {
		return psych.NoCheckinVerdict()
	}
	verdict, err := psych.CheckEligibility(*checkin, a.Config.Thresholds())
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Stored check-in failed validation")
		return psych.NoCheckinVerdict()
	}
	return verdict
}

// printSizeRecommendation shows the configured size for a grade next to the
// size actually taken.
func (a *App) printSizeRecommendation(output *Output, grade models.Grade, taken int) {
	rec, err := playbook.ResolveSize(grade, a.Config.SizingTable())
	if err != nil {
		output.Warning("No size configured for grade %s", grade)
		return
	}
	if rec.NoTrade {
		output.Printf("Sizing: %s\n", output.ColoredString(ColorRed, rec.Label))
		return
	}
	contracts := rec.ContractsFor(a.Config.Risk.DailyDrawdown, a.Config.Risk.RiskPerContract)
	line := fmt.Sprintf("Sizing: %s (%d contracts)", rec.Label, contracts)
	if taken > 0 && taken > contracts {
		line += output.ColoredString(ColorYellow, fmt.Sprintf("  oversized: took %d", taken))
	}
	output.Println(line)
}
