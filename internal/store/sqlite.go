// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "github.com/sguzen/trading-manager-pro/internal/errors"
	"github.com/sguzen/trading-manager-pro/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Prop firm terms
	CREATE TABLE IF NOT EXISTS prop_firms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		payout_schedule TEXT,
		payout_split REAL,
		min_payout REAL,
		max_daily_loss REAL,
		max_drawdown REAL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Trading accounts
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		firm_name TEXT NOT NULL,
		number TEXT NOT NULL,
		status TEXT NOT NULL,
		size REAL NOT NULL,
		current_balance REAL NOT NULL,
		purchase_cost REAL,
		purchase_date TEXT,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Playbooks and their live rule sets
	CREATE TABLE IF NOT EXISTS playbooks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS playbook_rules (
		id TEXT PRIMARY KEY,
		playbook_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		mandatory INTEGER NOT NULL,
		description TEXT NOT NULL,
		position INTEGER NOT NULL,
		FOREIGN KEY (playbook_id) REFERENCES playbooks(id)
	);

	-- Trades carry a frozen playbook snapshot + compliance flags as JSON,
	-- so playbook edits never rewrite a historical grade
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		account_id TEXT,
		symbol TEXT NOT NULL,
		direction TEXT NOT NULL,
		position_size INTEGER NOT NULL,
		entry_price REAL,
		stop_loss REAL,
		take_profit REAL,
		pnl_gross REAL,
		pnl_net REAL,
		commission REAL,
		grade TEXT NOT NULL,
		snapshot TEXT NOT NULL,
		flags TEXT NOT NULL,
		emotional_state INTEGER,
		would_repeat INTEGER DEFAULT 0,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One check-in per calendar day; re-submission replaces the row
	CREATE TABLE IF NOT EXISTS checkins (
		id TEXT NOT NULL,
		date TEXT PRIMARY KEY,
		sleep_quality INTEGER NOT NULL,
		stress_level INTEGER NOT NULL,
		home_stress INTEGER NOT NULL,
		alcohol_24h INTEGER DEFAULT 0,
		exercise_done INTEGER DEFAULT 0,
		trading_plan TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS withdrawals (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		allocation TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_rules_playbook ON playbook_rules(playbook_id);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
	CREATE INDEX IF NOT EXISTS idx_trades_grade ON trades(grade);
	CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);
	CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Playbook Methods
// ============================================================================

// SavePlaybook saves a playbook and its full rule set, replacing any
// previously stored rules.
func (s *SQLiteStore) SavePlaybook(ctx context.Context, playbook *models.Playbook) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := playbook.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO playbooks (id, name, created_at) VALUES (?, ?, ?)
	`, playbook.ID, playbook.Name, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save playbook: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM playbook_rules WHERE playbook_id = ?`, playbook.ID); err != nil {
		return fmt.Errorf("failed to clear playbook rules: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO playbook_rules (id, playbook_id, tier, mandatory, description, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range playbook.Rules {
		mandatory := 0
		if r.Mandatory {
			mandatory = 1
		}
		if _, err := stmt.ExecContext(ctx, r.ID, playbook.ID, r.Tier, mandatory, r.Description, i); err != nil {
			return fmt.Errorf("failed to insert rule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPlaybooks retrieves all playbooks with their rules in display order.
func (s *SQLiteStore) GetPlaybooks(ctx context.Context) ([]models.Playbook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM playbooks ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playbooks: %w", err)
	}
	defer rows.Close()

	var playbooks []models.Playbook
	for rows.Next() {
		var p models.Playbook
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playbook: %w", err)
		}
		playbooks = append(playbooks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating playbooks: %w", err)
	}

	for i := range playbooks {
		rules, err := s.rulesFor(ctx, playbooks[i].ID)
		if err != nil {
			return nil, err
		}
		playbooks[i].Rules = rules
	}
	return playbooks, nil
}

func (s *SQLiteStore) rulesFor(ctx context.Context, playbookID string) ([]models.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tier, mandatory, description
		FROM playbook_rules WHERE playbook_id = ? ORDER BY position ASC
	`, playbookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []models.Rule
	for rows.Next() {
		var r models.Rule
		var mandatory int
		if err := rows.Scan(&r.ID, &r.Tier, &mandatory, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		r.Mandatory = mandatory == 1
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// DeletePlaybook removes a playbook and its live rules. Trades keep their
// frozen snapshots and stay graded as they were.
func (s *SQLiteStore) DeletePlaybook(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM playbooks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playbook: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NewNotFoundError("playbook", id)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM playbook_rules WHERE playbook_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete playbook rules: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ============================================================================
// Trade Methods
// ============================================================================

// LogTrade saves a trade to the database.
func (s *SQLiteStore) LogTrade(ctx context.Context, trade *models.Trade) error {
	snapshot, err := json.Marshal(trade.Compliance.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	flags, err := json.Marshal(trade.Compliance.Flags)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}
	wouldRepeat := 0
	if trade.WouldRepeat {
		wouldRepeat = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trades (id, date, account_id, symbol, direction, position_size, entry_price, stop_loss, take_profit, pnl_gross, pnl_net, commission, grade, snapshot, flags, emotional_state, would_repeat, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Date, trade.AccountID, trade.Symbol, trade.Direction, trade.PositionSize,
		trade.EntryPrice, trade.StopLoss, trade.TakeProfit, trade.PnLGross, trade.PnLNet, trade.Commission,
		trade.Grade, string(snapshot), string(flags), trade.EmotionalState, wouldRepeat, trade.Notes,
		trade.CreatedAt, trade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to log trade: %w", err)
	}
	return nil
}

// UpdateTrade rewrites an existing trade after a trader correction.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, trade *models.Trade) error {
	snapshot, err := json.Marshal(trade.Compliance.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	flags, err := json.Marshal(trade.Compliance.Flags)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}
	wouldRepeat := 0
	if trade.WouldRepeat {
		wouldRepeat = 1
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE trades SET date = ?, account_id = ?, symbol = ?, direction = ?, position_size = ?, entry_price = ?, stop_loss = ?, take_profit = ?, pnl_gross = ?, pnl_net = ?, commission = ?, grade = ?, snapshot = ?, flags = ?, emotional_state = ?, would_repeat = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, trade.Date, trade.AccountID, trade.Symbol, trade.Direction, trade.PositionSize,
		trade.EntryPrice, trade.StopLoss, trade.TakeProfit, trade.PnLGross, trade.PnLNet, trade.Commission,
		trade.Grade, string(snapshot), string(flags), trade.EmotionalState, wouldRepeat, trade.Notes,
		time.Now(), trade.ID)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NewNotFoundError("trade", trade.ID)
	}
	return nil
}

// DeleteTrade removes a trade.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NewNotFoundError("trade", id)
	}
	return nil
}

const tradeColumns = `id, date, account_id, symbol, direction, position_size, entry_price, stop_loss, take_profit, pnl_gross, pnl_net, commission, grade, snapshot, flags, emotional_state, would_repeat, notes, created_at, updated_at`

// GetTrades retrieves trades from the database.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, filter.AccountID)
	}
	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Grade != "" {
		query += " AND grade = ?"
		args = append(args, filter.Grade)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *t)
	}
	return trades, rows.Err()
}

// GetTradeByID retrieves a single trade, or nil when absent.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var snapshotJSON, flagsJSON string
	var wouldRepeat int

	err := row.Scan(&t.ID, &t.Date, &t.AccountID, &t.Symbol, &t.Direction, &t.PositionSize,
		&t.EntryPrice, &t.StopLoss, &t.TakeProfit, &t.PnLGross, &t.PnLNet, &t.Commission,
		&t.Grade, &snapshotJSON, &flagsJSON, &t.EmotionalState, &wouldRepeat, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan trade: %w", err)
	}

	if err := json.Unmarshal([]byte(snapshotJSON), &t.Compliance.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(flagsJSON), &t.Compliance.Flags); err != nil {
		return nil, fmt.Errorf("failed to decode flags: %w", err)
	}
	t.WouldRepeat = wouldRepeat == 1
	return &t, nil
}

// ============================================================================
// Check-in Methods
// ============================================================================

// SaveCheckin saves a daily check-in. The date is the primary key, so a
// second save for the same day is a correction that replaces the first.
func (s *SQLiteStore) SaveCheckin(ctx context.Context, checkin *models.DailyCheckin) error {
	alcohol := 0
	if checkin.Alcohol24h {
		alcohol = 1
	}
	exercise := 0
	if checkin.ExerciseDone {
		exercise = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO checkins (id, date, sleep_quality, stress_level, home_stress, alcohol_24h, exercise_done, trading_plan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, checkin.ID, checkin.Date, checkin.SleepQuality, checkin.StressLevel, checkin.HomeStress,
		alcohol, exercise, checkin.TradingPlan, checkin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save checkin: %w", err)
	}
	return nil
}

// GetCheckin retrieves the check-in for a specific date, or nil when absent.
func (s *SQLiteStore) GetCheckin(ctx context.Context, date string) (*models.DailyCheckin, error) {
	var c models.DailyCheckin
	var alcohol, exercise int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, sleep_quality, stress_level, home_stress, alcohol_24h, exercise_done, trading_plan, created_at
		FROM checkins WHERE date = ?
	`, date).Scan(&c.ID, &c.Date, &c.SleepQuality, &c.StressLevel, &c.HomeStress, &alcohol, &exercise, &c.TradingPlan, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkin: %w", err)
	}
	c.Alcohol24h = alcohol == 1
	c.ExerciseDone = exercise == 1
	return &c, nil
}

// GetCheckins retrieves check-ins from the database.
func (s *SQLiteStore) GetCheckins(ctx context.Context, filter CheckinFilter) ([]models.DailyCheckin, error) {
	query := `SELECT id, date, sleep_quality, stress_level, home_stress, alcohol_24h, exercise_done, trading_plan, created_at FROM checkins WHERE 1=1`
	args := []interface{}{}

	if filter.StartDate != "" {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkins: %w", err)
	}
	defer rows.Close()

	var checkins []models.DailyCheckin
	for rows.Next() {
		var c models.DailyCheckin
		var alcohol, exercise int
		if err := rows.Scan(&c.ID, &c.Date, &c.SleepQuality, &c.StressLevel, &c.HomeStress, &alcohol, &exercise, &c.TradingPlan, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		c.Alcohol24h = alcohol == 1
		c.ExerciseDone = exercise == 1
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// ============================================================================
// Prop Firm & Account Methods
// ============================================================================

// SaveFirm saves a prop firm to the database.
func (s *SQLiteStore) SaveFirm(ctx context.Context, firm *models.PropFirm) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO prop_firms (id, name, payout_schedule, payout_split, min_payout, max_daily_loss, max_drawdown, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, firm.ID, firm.Name, firm.PayoutSchedule, firm.PayoutSplit, firm.MinPayout, firm.MaxDailyLoss, firm.MaxDrawdown, firm.Notes, firm.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save prop firm: %w", err)
	}
	return nil
}

// GetFirms retrieves all prop firms.
func (s *SQLiteStore) GetFirms(ctx context.Context) ([]models.PropFirm, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, payout_schedule, payout_split, min_payout, max_daily_loss, max_drawdown, notes, created_at
		FROM prop_firms ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query prop firms: %w", err)
	}
	defer rows.Close()

	var firms []models.PropFirm
	for rows.Next() {
		var f models.PropFirm
		if err := rows.Scan(&f.ID, &f.Name, &f.PayoutSchedule, &f.PayoutSplit, &f.MinPayout, &f.MaxDailyLoss, &f.MaxDrawdown, &f.Notes, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prop firm: %w", err)
		}
		firms = append(firms, f)
	}
	return firms, rows.Err()
}

// SaveAccount saves an account to the database.
func (s *SQLiteStore) SaveAccount(ctx context.Context, account *models.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO accounts (id, firm_name, number, status, size, current_balance, purchase_cost, purchase_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, account.ID, account.FirmName, account.Number, account.Status, account.Size, account.CurrentBalance,
		account.PurchaseCost, account.PurchaseDate, account.Notes, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// GetAccounts retrieves accounts from the database.
func (s *SQLiteStore) GetAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, error) {
	query := `SELECT id, firm_name, number, status, size, current_balance, purchase_cost, purchase_date, notes, created_at, updated_at FROM accounts WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Firm != "" {
		query += " AND firm_name = ?"
		args = append(args, filter.Firm)
	}
	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.FirmName, &a.Number, &a.Status, &a.Size, &a.CurrentBalance, &a.PurchaseCost, &a.PurchaseDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetAccountByID retrieves a single account, or nil when absent.
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, firm_name, number, status, size, current_balance, purchase_cost, purchase_date, notes, created_at, updated_at
		FROM accounts WHERE id = ?
	`, id).Scan(&a.ID, &a.FirmName, &a.Number, &a.Status, &a.Size, &a.CurrentBalance, &a.PurchaseCost, &a.PurchaseDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &a, nil
}

// AdjustAccountBalance moves an account's balance by delta. Trade logging
// applies net P&L here; edits apply the difference and deletes reverse it.
func (s *SQLiteStore) AdjustAccountBalance(ctx context.Context, id string, delta float64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts SET current_balance = current_balance + ?, updated_at = ? WHERE id = ?
	`, delta, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to adjust account balance: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NewNotFoundError("account", id)
	}
	return nil
}

// ============================================================================
// Withdrawal & Settings Methods
// ============================================================================

// SaveWithdrawal saves a withdrawal to the database.
func (s *SQLiteStore) SaveWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO withdrawals (id, account_id, amount, status, allocation, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, withdrawal.ID, withdrawal.AccountID, withdrawal.Amount, withdrawal.Status, withdrawal.Allocation, withdrawal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save withdrawal: %w", err)
	}
	return nil
}

// GetWithdrawals retrieves all withdrawals.
func (s *SQLiteStore) GetWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, amount, status, allocation, created_at FROM withdrawals ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer rows.Close()

	var withdrawals []models.Withdrawal
	for rows.Next() {
		var w models.Withdrawal
		if err := rows.Scan(&w.ID, &w.AccountID, &w.Amount, &w.Status, &w.Allocation, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

// GetSettings retrieves trader settings, applying defaults for unset keys.
func (s *SQLiteStore) GetSettings(ctx context.Context) (models.Settings, error) {
	settings := models.Settings{
		DebtName:   "Trading Loan",
		DebtAmount: 5000,
		GoalAmount: 1000000,
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'trader'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to get settings: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists trader settings.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value) VALUES ('trader', ?)
	`, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
