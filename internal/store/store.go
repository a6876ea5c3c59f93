// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

// DataStore defines the interface for data persistence. The grading engine
// never touches the store directly; the CLI loads records here and hands the
// engine plain values.
type DataStore interface {
	// Playbooks
	SavePlaybook(ctx context.Context, playbook *models.Playbook) error
	GetPlaybooks(ctx context.Context) ([]models.Playbook, error)
	DeletePlaybook(ctx context.Context, id string) error

	// Trades
	LogTrade(ctx context.Context, trade *models.Trade) error
	UpdateTrade(ctx context.Context, trade *models.Trade) error
	DeleteTrade(ctx context.Context, id string) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)

	// Daily check-ins
	SaveCheckin(ctx context.Context, checkin *models.DailyCheckin) error
	GetCheckin(ctx context.Context, date string) (*models.DailyCheckin, error)
	GetCheckins(ctx context.Context, filter CheckinFilter) ([]models.DailyCheckin, error)

	// Prop firms & accounts
	SaveFirm(ctx context.Context, firm *models.PropFirm) error
	GetFirms(ctx context.Context) ([]models.PropFirm, error)
	SaveAccount(ctx context.Context, account *models.Account) error
	GetAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	AdjustAccountBalance(ctx context.Context, id string, delta float64) error

	// Withdrawals & settings
	SaveWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	GetWithdrawals(ctx context.Context) ([]models.Withdrawal, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Backup
	ExportAll(ctx context.Context) (*models.Backup, error)
	ImportAll(ctx context.Context, backup *models.Backup) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	AccountID string
	Symbol    string
	Grade     models.Grade
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// CheckinFilter represents filters for querying daily check-ins.
type CheckinFilter struct {
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, inclusive
	Limit     int
}

// AccountFilter represents filters for querying accounts.
type AccountFilter struct {
	Status models.AccountStatus
	Firm   string
}
