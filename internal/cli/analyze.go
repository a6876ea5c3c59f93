package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/playbook"
	"github.com/sguzen/trading-manager-pro/internal/report"
	"github.com/sguzen/trading-manager-pro/internal/store"
)

func addAnalyzeCommands(rootCmd *cobra.Command, app *App) {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Performance analytics over the trade history",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Headline performance metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeSummary(cmd, app)
		},
	}
	addAnalyzeFilters(summaryCmd)

	gradesCmd := &cobra.Command{
		Use:   "grades",
		Short: "Performance broken down per grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeGrades(cmd, app)
		},
	}
	addAnalyzeFilters(gradesCmd)

	emotionsCmd := &cobra.Command{
		Use:   "emotions",
		Short: "Performance broken down by emotional state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeEmotions(cmd, app)
		},
	}
	addAnalyzeFilters(emotionsCmd)

	playbooksCmd := &cobra.Command{
		Use:   "playbooks",
		Short: "Performance broken down per playbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzePlaybooks(cmd, app)
		},
	}
	addAnalyzeFilters(playbooksCmd)

	correlationCmd := &cobra.Command{
		Use:   "correlation",
		Short: "Optional-rule impact: win rate and P&L with vs without each rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeCorrelation(cmd, app)
		},
	}
	addAnalyzeFilters(correlationCmd)
	correlationCmd.Flags().Int("min-samples", 0, "Observations per group below which a row is low-confidence")

	goalsCmd := &cobra.Command{
		Use:   "goals",
		Short: "Debt payoff and payout goal progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeGoals(cmd, app)
		},
	}

	analyzeCmd.AddCommand(summaryCmd, gradesCmd, emotionsCmd, playbooksCmd, correlationCmd, goalsCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func addAnalyzeFilters(cmd *cobra.Command) {
	cmd.Flags().StringP("account", "a", "", "Restrict to one account")
	cmd.Flags().Int("days", 0, "Only trades from the last N days")
}

func (a *App) filteredTrades(cmd *cobra.Command) ([]models.Trade, error) {
	filter := store.TradeFilter{}
	filter.AccountID, _ = cmd.Flags().GetString("account")
	if days, _ := cmd.Flags().GetInt("days"); days > 0 {
		filter.StartDate = time.Now().AddDate(0, 0, -days)
	}
	trades, err := a.Store.GetTrades(cmd.Context(), filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load trades")
	}
	return trades, nil
}

func runAnalyzeSummary(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	trades, err := app.filteredTrades(cmd)
	if err != nil {
		return err
	}

	summary := report.Summarize(trades)
	if output.IsJSON() {
		return output.JSON(summary)
	}
	if summary.TotalTrades == 0 {
		output.Info("No trades to analyze.")
		return nil
	}

	output.Bold("Performance summary")
	output.Printf("Trades:        %d (%d wins / %d losses)\n", summary.TotalTrades, summary.Wins, summary.Losses)
	output.Printf("Win rate:      %s\n", FormatPercent(summary.WinRate))
	output.Printf("Total P&L:     %s\n", FormatPnL(summary.TotalPnL))
	output.Printf("Avg P&L:       %s\n", FormatPnL(summary.AvgPnL))
	if summary.ProfitFactor > 0 {
		output.Printf("Profit factor: %.2f\n", summary.ProfitFactor)
	}
	return nil
}

func runAnalyzeGrades(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	trades, err := app.filteredTrades(cmd)
	if err != nil {
		return err
	}

	stats := report.ByGrade(trades)
	if output.IsJSON() {
		return output.JSON(stats)
	}
	if len(stats) == 0 {
		output.Info("No trades to analyze.")
		return nil
	}

	table := NewTable(output, "GRADE", "TRADES", "WINS", "WIN RATE", "TOTAL P&L", "AVG P&L")
	for _, s := range stats {
		table.AddRow(
			FormatGrade(output, s.Grade),
			strconv.Itoa(s.Trades),
			strconv.Itoa(s.Wins),
			FormatPercent(s.WinRate),
			FormatPnL(s.TotalPnL),
			FormatPnL(s.AvgPnL),
		)
	}
	table.Render()
	output.Dim("A graded trades should outperform the rest. If they don't, the playbook needs work.")
	return nil
}

func runAnalyzeEmotions(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	trades, err := app.filteredTrades(cmd)
	if err != nil {
		return err
	}

	buckets := report.ByEmotion(trades)
	if output.IsJSON() {
		return output.JSON(buckets)
	}

	table := NewTable(output, "STATE", "RANGE", "TRADES", "WIN RATE", "TOTAL P&L", "AVG P&L")
	for _, b := range buckets {
		table.AddRow(
			b.Label,
			fmt.Sprintf("%d-%d", b.Min, b.Max),
			strconv.Itoa(b.Trades),
			FormatPercent(b.WinRate),
			FormatPnL(b.TotalPnL),
			FormatPnL(b.AvgPnL),
		)
	}
	table.Render()
	return nil
}

func runAnalyzePlaybooks(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	trades, err := app.filteredTrades(cmd)
	if err != nil {
		return err
	}

	stats := report.ByPlaybook(trades)
	if output.IsJSON() {
		return output.JSON(stats)
	}
	if len(stats) == 0 {
		output.Info("No trades to analyze.")
		return nil
	}

	table := NewTable(output, "PLAYBOOK", "TRADES", "WINS", "WIN RATE", "TOTAL P&L")
	for _, s := range stats {
		table.AddRow(
			s.Name,
			strconv.Itoa(s.Trades),
			strconv.Itoa(s.Wins),
			FormatPercent(s.WinRate),
			FormatPnL(s.TotalPnL),
		)
	}
	table.Render()
	return nil
}

func runAnalyzeCorrelation(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	trades, err := app.filteredTrades(cmd)
	if err != nil {
		return err
	}

	minSamples, _ := cmd.Flags().GetInt("min-samples")
	if minSamples <= 0 {
		minSamples = app.Config.Grading.MinSamples
	}

	graded := make([]playbook.GradedTrade, 0, len(trades))
	for _, t := range trades {
		graded = append(graded, playbook.GradedTrade{Compliance: t.Compliance, PnLNet: t.PnLNet})
	}
	impacts := playbook.Analyze(graded, minSamples)

	if output.IsJSON() {
		return output.JSON(impacts)
	}
	if len(impacts) == 0 {
		output.Info("No optional rules observed in the trade history yet.")
		return nil
	}

	table := NewTable(output, "OPTIONAL RULE", "WITH", "WITHOUT", "WIN% WITH", "WIN% W/O", "DELTA", "P&L DELTA", "")
	for _, imp := range impacts {
		note := ""
		if imp.LowConfidence {
			note = output.ColoredString(ColorDim, "low confidence")
		}
		table.AddRow(
			imp.Description,
			strconv.Itoa(imp.SatisfiedCount),
			strconv.Itoa(imp.UnsatisfiedCount),
			FormatPercent(imp.SatisfiedWinRate*100),
			FormatPercent(imp.UnsatisfiedWinRate*100),
			FormatPercent(imp.WinRateDelta*100),
			FormatPnL(imp.AvgPnLDelta),
			note,
		)
	}
	table.Render()
	return nil
}

func runAnalyzeGoals(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	settings, err := app.Store.GetSettings(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load settings")
	}
	withdrawals, err := app.Store.GetWithdrawals(ctx)
	if err != nil {
		return apperrors.Wrap(err, "failed to load withdrawals")
	}

	progress := report.Goals(settings, withdrawals)
	if output.IsJSON() {
		return output.JSON(progress)
	}

	output.Bold("%s", progress.DebtName)
	output.Printf("Paid %s of %s, %s remaining\n",
		FormatMoney(progress.DebtPaid), FormatMoney(progress.DebtAmount), FormatMoney(progress.DebtRemaining))
	output.Println()
	output.Bold("Payout goal")
	output.Printf("Withdrawn %s of %s (%s)\n",
		FormatMoney(progress.TotalWithdrawn), FormatMoney(progress.GoalAmount), FormatPercent(progress.GoalPercent))
	return nil
}
