package models

import "time"

// AccountStatus is the lifecycle state of a funded/evaluation account.
type AccountStatus string

const (
	AccountEvaluation AccountStatus = "evaluation"
	AccountFunded     AccountStatus = "funded"
	AccountBlown      AccountStatus = "blown"
	AccountInactive   AccountStatus = "inactive"
)

// Active reports whether the account may take new trades.
func (s AccountStatus) Active() bool {
	return s == AccountEvaluation || s == AccountFunded
}

// PropFirm holds the terms of a proprietary trading firm.
type PropFirm struct {
	ID             string
	Name           string
	PayoutSchedule string
	PayoutSplit    float64 // percent kept by the trader
	MinPayout      float64
	MaxDailyLoss   float64 // percent
	MaxDrawdown    float64 // percent
	Notes          string
	CreatedAt      time.Time
}

// Account is a single trading account at a prop firm. CurrentBalance moves
// with every logged trade's net P&L.
type Account struct {
	ID             string
	FirmName       string
	Number         string
	Status         AccountStatus
	Size           float64
	CurrentBalance float64
	PurchaseCost   float64
	PurchaseDate   string // YYYY-MM-DD
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WithdrawalStatus tracks a payout request through its lifecycle.
type WithdrawalStatus string

const (
	WithdrawalRequested WithdrawalStatus = "requested"
	WithdrawalPaid      WithdrawalStatus = "paid"
	WithdrawalDenied    WithdrawalStatus = "denied"
)

// Withdrawal is a payout taken from an account.
type Withdrawal struct {
	ID         string
	AccountID  string
	Amount     float64
	Status     WithdrawalStatus
	Allocation string // e.g. "Debt Payment", "Savings"
	CreatedAt  time.Time
}

// Settings holds trader-level financial goals.
type Settings struct {
	DebtName   string
	DebtAmount float64
	GoalAmount float64
}

// Backup is the full JSON export of all record sets.
type Backup struct {
	Settings    Settings       `json:"settings"`
	PropFirms   []PropFirm     `json:"prop_firms"`
	Accounts    []Account      `json:"accounts"`
	Playbooks   []Playbook     `json:"playbooks"`
	Trades      []Trade        `json:"trades"`
	Checkins    []DailyCheckin `json:"checkins"`
	Withdrawals []Withdrawal   `json:"withdrawals"`
	ExportedAt  time.Time      `json:"exported_at"`
}
