package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sguzen/trading-manager-pro/internal/config"
	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
	"github.com/sguzen/trading-manager-pro/internal/playbook"
	"github.com/sguzen/trading-manager-pro/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Storage.DBPath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:     "trading-manager",
		Short:   "Personal record keeping and playbook grading for discretionary traders",
		Long:    "Trading Manager Pro tracks accounts, trades, and daily check-ins, and grades every trade against your playbook rules.",
		Version: Version,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	addPlaybookCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addCheckinCommands(rootCmd, app)
	addAnalyzeCommands(rootCmd, app)
	addAccountCommands(rootCmd, app)
	addPayoutCommands(rootCmd, app)
	addExportCommands(rootCmd, app)

	return rootCmd
}

// requireStore fails fast when the store did not initialize.
func (a *App) requireStore() error {
	if a.Store == nil {
		return apperrors.ErrDatabaseError
	}
	return nil
}

// loadCatalog builds a rule catalog from the persisted playbooks.
func (a *App) loadCatalog(ctx context.Context) (*playbook.Catalog, error) {
	playbooks, err := a.Store.GetPlaybooks(ctx)
	if err != nil {
		return nil, err
	}
	catalog := playbook.NewCatalog()
	catalog.Load(playbooks)
	return catalog, nil
}

// findPlaybook resolves a playbook by ID, exact name, or unique name prefix.
func findPlaybook(playbooks []models.Playbook, key string) (models.Playbook, error) {
	for _, p := range playbooks {
		if p.ID == key || p.Name == key {
			return p, nil
		}
	}
	var matches []models.Playbook
	for _, p := range playbooks {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(key)) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return models.Playbook{}, apperrors.NewValidationError("playbook", key, "matches more than one playbook")
	}
	return models.Playbook{}, apperrors.NewNotFoundError("playbook", key)
}

// parseRuleSelection maps 1-based rule indexes (as shown by `playbook show`)
// to rule IDs.
func parseRuleSelection(rules []models.Rule, selection []int) (map[string]bool, error) {
	flags := make(map[string]bool, len(selection))
	for _, idx := range selection {
		if idx < 1 || idx > len(rules) {
			return nil, apperrors.NewValidationError("rule", idx, fmt.Sprintf("playbook has %d rules", len(rules)))
		}
		flags[rules[idx-1].ID] = true
	}
	return flags, nil
}
