package store

import (
	"context"
	"time"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

// ExportAll collects every record set into a single backup value for JSON
// export.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*models.Backup, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "export settings")
	}
	firms, err := s.GetFirms(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "export prop firms")
	}
	accounts, err := s.GetAccounts(ctx, AccountFilter{})
	if err != nil {
		return nil, apperrors.Wrap(err, "export accounts")
	}
	playbooks, err := s.GetPlaybooks(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "export playbooks")
	}
	trades, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		return nil, apperrors.Wrap(err, "export trades")
	}
	checkins, err := s.GetCheckins(ctx, CheckinFilter{})
	if err != nil {
		return nil, apperrors.Wrap(err, "export checkins")
	}
	withdrawals, err := s.GetWithdrawals(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "export withdrawals")
	}

	return &models.Backup{
		Settings:    settings,
		PropFirms:   firms,
		Accounts:    accounts,
		Playbooks:   playbooks,
		Trades:      trades,
		Checkins:    checkins,
		Withdrawals: withdrawals,
		ExportedAt:  time.Now(),
	}, nil
}

// ImportAll writes a backup's record sets into the store. Existing rows with
// matching keys are replaced; nothing else is deleted.
func (s *SQLiteStore) ImportAll(ctx context.Context, backup *models.Backup) error {
	if err := s.SaveSettings(ctx, backup.Settings); err != nil {
		return apperrors.Wrap(err, "import settings")
	}
	for i := range backup.PropFirms {
		if err := s.SaveFirm(ctx, &backup.PropFirms[i]); err != nil {
			return apperrors.Wrap(err, "import prop firms")
		}
	}
	for i := range backup.Accounts {
		if err := s.SaveAccount(ctx, &backup.Accounts[i]); err != nil {
			return apperrors.Wrap(err, "import accounts")
		}
	}
	for i := range backup.Playbooks {
		if err := s.SavePlaybook(ctx, &backup.Playbooks[i]); err != nil {
			return apperrors.Wrap(err, "import playbooks")
		}
	}
	for i := range backup.Trades {
		t := &backup.Trades[i]
		existing, err := s.GetTradeByID(ctx, t.ID)
		if err != nil {
			return apperrors.Wrap(err, "import trades")
		}
		if existing != nil {
			err = s.UpdateTrade(ctx, t)
		} else {
			err = s.LogTrade(ctx, t)
		}
		if err != nil {
			return apperrors.Wrap(err, "import trades")
		}
	}
	for i := range backup.Checkins {
		if err := s.SaveCheckin(ctx, &backup.Checkins[i]); err != nil {
			return apperrors.Wrap(err, "import checkins")
		}
	}
	for i := range backup.Withdrawals {
		if err := s.SaveWithdrawal(ctx, &backup.Withdrawals[i]); err != nil {
			return apperrors.Wrap(err, "import withdrawals")
		}
	}
	return nil
}
