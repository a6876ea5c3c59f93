package cli

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/psych"
	"github.com/sguzen/trading-manager-pro/internal/store"
	"github.com/sguzen/trading-manager-pro/pkg/utils"
)

func addCheckinCommands(rootCmd *cobra.Command, app *App) {
	checkinCmd := &cobra.Command{
		Use:   "checkin",
		Short: "Daily psychological check-in and trade clearance",
	}

	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit today's check-in and get the clearance verdict",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckinSubmit(cmd, app)
		},
	}
	submitCmd.Flags().Int("sleep", 0, "Sleep quality, 1 (worst) to 10 (best)")
	submitCmd.Flags().Int("stress", 0, "Trading stress level, 1 (calm) to 10 (max)")
	submitCmd.Flags().Int("home-stress", 0, "Home stress level, 1 to 10")
	submitCmd.Flags().Bool("alcohol", false, "Alcohol in the last 24 hours")
	submitCmd.Flags().Bool("exercise", false, "Exercised today")
	submitCmd.Flags().String("plan", "", "Today's trading plan")
	submitCmd.Flags().String("date", "", "Check-in date (YYYY-MM-DD, default today)")
	submitCmd.MarkFlagRequired("sleep")
	submitCmd.MarkFlagRequired("stress")
	submitCmd.MarkFlagRequired("home-stress")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's trade clearance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckinStatus(cmd, app)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check-ins and the pattern over the window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckinHistory(cmd, app)
		},
	}
	historyCmd.Flags().Int("days", 14, "Window size in days")

	checkinCmd.AddCommand(submitCmd, statusCmd, historyCmd)
	rootCmd.AddCommand(checkinCmd)
}

func runCheckinSubmit(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	date := time.Now().Format("2006-01-02")
	if dateArg, _ := cmd.Flags().GetString("date"); dateArg != "" {
		if _, err := time.Parse("2006-01-02", dateArg); err != nil {
			return apperrors.NewValidationError("date", dateArg, "expected YYYY-MM-DD")
		}
		date = dateArg
	}

	sleep, _ := cmd.Flags().GetInt("sleep")
	stress, _ := cmd.Flags().GetInt("stress")
	homeStress, _ := cmd.Flags().GetInt("home-stress")
	alcohol, _ := cmd.Flags().GetBool("alcohol")
	exercise, _ := cmd.Flags().GetBool("exercise")
	plan, _ := cmd.Flags().GetString("plan")

	checkin := &models.DailyCheckin{
		ID:           ulid.Make().String(),
		Date:         date,
		SleepQuality: sleep,
		StressLevel:  stress,
		HomeStress:   homeStress,
		Alcohol24h:   alcohol,
		ExerciseDone: exercise,
		TradingPlan:  plan,
		CreatedAt:    time.Now(),
	}

	verdict, err := psych.CheckEligibility(*checkin, app.Config.Thresholds())
	if err != nil {
		return err
	}

	replaced := false
	if existing, err := app.Store.GetCheckin(ctx, date); err == nil && existing != nil {
		checkin.ID = existing.ID
		replaced = true
	}
	if err := app.Store.SaveCheckin(ctx, checkin); err != nil {
		return apperrors.Wrap(err, "failed to save check-in")
	}

	app.Logger.Info().
		Str("date", date).
		Str("status", string(verdict.Status)).
		Bool("replaced", replaced).
		Msg("Check-in submitted")

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"checkin": checkin,
			"verdict": verdict,
		})
	}
	if replaced {
		output.Info("Replaced the earlier check-in for %s.", date)
	}
	printVerdict(output, verdict)
	return nil
}

func runCheckinStatus(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	now := time.Now()
	session := utils.GetSessionStatus(now)
	verdict := app.verdictFor(ctx, now.Format("2006-01-02"))
	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"session": session,
			"verdict": verdict,
		})
	}
	output.Printf("Globex session: %s\n", session)
	printVerdict(output, verdict)
	if verdict.Status == models.ClearanceNoCheckin {
		output.Dim("Submit one with: trading-manager checkin submit --sleep N --stress N --home-stress N")
	}
	return nil
}

func runCheckinHistory(cmd *cobra.Command, app *App) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	days, _ := cmd.Flags().GetInt("days")
	now := time.Now()
	filter := store.CheckinFilter{
		StartDate: now.AddDate(0, 0, -days).Format("2006-01-02"),
		EndDate:   now.Format("2006-01-02"),
	}
	checkins, err := app.Store.GetCheckins(ctx, filter)
	if err != nil {
		return apperrors.Wrap(err, "failed to load check-ins")
	}

	th := app.Config.Thresholds()
	pattern := psych.RecentPattern(checkins, days, now, th)

	if output.IsJSON() {
		return output.JSON(map[string]interface{}{
			"checkins": checkins,
			"pattern":  pattern,
		})
	}
	if len(checkins) == 0 {
		output.Info("No check-ins in the last %d days.", days)
		return nil
	}

	table := NewTable(output, "DATE", "SLEEP", "STRESS", "HOME", "ALCOHOL", "EXERCISE", "STATUS")
	for _, c := range checkins {
		status := "?"
		if verdict, err := psych.CheckEligibility(c, th); err == nil {
			status = string(verdict.Status)
		}
		table.AddRow(
			c.Date,
			fmt.Sprintf("%d", c.SleepQuality),
			fmt.Sprintf("%d", c.StressLevel),
			fmt.Sprintf("%d", c.HomeStress),
			yesNo(c.Alcohol24h),
			yesNo(c.ExerciseDone),
			status,
		)
	}
	table.Render()

	output.Println()
	output.Bold("Pattern over %d days analyzed", pattern.DaysAnalyzed)
	output.Printf("Avg sleep %.1f  avg stress %.1f  avg home stress %.1f\n",
		pattern.AvgSleep, pattern.AvgStress, pattern.AvgHomeStress)
	output.Printf("Clearance: %d green / %d yellow / %d red\n",
		pattern.GreenDays, pattern.YellowDays, pattern.RedDays)
	output.Printf("Alcohol days: %d  exercise days: %d\n", pattern.AlcoholDays, pattern.ExerciseDays)
	return nil
}

func printVerdict(output *Output, verdict models.Verdict) {
	switch verdict.Status {
	case models.ClearanceGreen:
		output.Success("GREEN: cleared to trade")
	case models.ClearanceYellow:
		output.Warning("YELLOW: cleared with restrictions")
		for _, r := range verdict.Restrictions {
			output.Printf("  - %s\n", r)
		}
	case models.ClearanceRed:
		output.Error("RED: do not trade today")
	default:
		output.Error("NO CHECK-IN: not cleared to trade")
	}
	for _, v := range verdict.Violations {
		output.Printf("  violation: %s\n", v)
	}
	for _, c := range verdict.Cautions {
		output.Dim("  caution: %s", c)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
