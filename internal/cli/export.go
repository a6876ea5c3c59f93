package cli

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/export"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/store"
)

func addExportCommands(rootCmd *cobra.Command, app *App) {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export records to CSV or JSON",
	}

	tradesCmd := &cobra.Command{
		Use:   "trades FILE",
		Short: "Export trades to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportTrades(cmd, app, args[0])
		},
	}
	tradesCmd.Flags().StringP("account", "a", "", "Restrict to one account")
	tradesCmd.Flags().Int("days", 0, "Only trades from the last N days")

	checkinsCmd := &cobra.Command{
		Use:   "checkins FILE",
		Short: "Export daily check-ins to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportCheckins(cmd, app, args[0])
		},
	}

	backupCmd := &cobra.Command{
		Use:   "backup FILE",
		Short: "Write a full JSON backup of every record set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackup(cmd, app, args[0])
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Restore records from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, app, args[0])
		},
	}

	exportCmd.AddCommand(tradesCmd, checkinsCmd, backupCmd, restoreCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExportTrades(cmd *cobra.Command, app *App, path string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}
	ctx := cmd.Context()

	filter := store.TradeFilter{}
	filter.AccountID, _ = cmd.Flags().GetString("account")
	if days, _ := cmd.Flags().GetInt("days"); days > 0 {
		filter.StartDate = time.Now().AddDate(0, 0, -days)
	}
	trades, err := app.Store.GetTrades(ctx, filter)
	if err != nil {
		return apperrors.Wrap(err, "failed to load trades")
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()
	if err := export.WriteTrades(f, trades); err != nil {
		return apperrors.Wrap(err, "failed to write CSV")
	}

	app.Logger.Info().Str("path", path).Int("trades", len(trades)).Msg("Trades exported")
	output.Success("Exported %d trades to %s", len(trades), path)
	return nil
}

func runExportCheckins(cmd *cobra.Command, app *App, path string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}

	checkins, err := app.Store.GetCheckins(cmd.Context(), store.CheckinFilter{})
	if err != nil {
		return apperrors.Wrap(err, "failed to load check-ins")
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()
	if err := export.WriteCheckins(f, checkins); err != nil {
		return apperrors.Wrap(err, "failed to write CSV")
	}

	app.Logger.Info().Str("path", path).Int("checkins", len(checkins)).Msg("Check-ins exported")
	output.Success("Exported %d check-ins to %s", len(checkins), path)
	return nil
}

func runBackup(cmd *cobra.Command, app *App, path string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}

	backup, err := app.Store.ExportAll(cmd.Context())
	if err != nil {
		return apperrors.Wrap(err, "failed to export records")
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to encode backup")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.Wrapf(err, "failed to write %s", path)
	}

	app.Logger.Info().
		Str("path", path).
		Int("trades", len(backup.Trades)).
		Int("playbooks", len(backup.Playbooks)).
		Msg("Backup written")
	output.Success("Backup written to %s (%d trades, %d playbooks, %d check-ins)",
		path, len(backup.Trades), len(backup.Playbooks), len(backup.Checkins))
	return nil
}

func runRestore(cmd *cobra.Command, app *App, path string) error {
	output := NewOutput(cmd)
	if err := app.requireStore(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrapf(err, "failed to read %s", path)
	}
	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return apperrors.Wrap(err, "failed to decode backup")
	}

	if err := app.Store.ImportAll(cmd.Context(), &backup); err != nil {
		return apperrors.Wrap(err, "failed to import records")
	}

	app.Logger.Info().Str("path", path).Msg("Backup restored")
	output.Success("Restored %d trades, %d playbooks, and %d check-ins from %s",
		len(backup.Trades), len(backup.Playbooks), len(backup.Checkins), path)
	return nil
}
