package models

import "time"

// Direction is the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Trade is a completed trade with its frozen compliance record and cached
// grade. The grade is derived from Compliance at log time; editing the
// compliance record is an explicit trader correction, after which the grade
// is recomputed.
type Trade struct {
	ID             string
	Date           time.Time
	AccountID      string
	Symbol         string
	Direction      Direction
	PositionSize   int
	EntryPrice     float64
	StopLoss       float64
	TakeProfit     float64
	PnLGross       float64
	PnLNet         float64
	Commission     float64
	Grade          Grade
	Compliance     ComplianceRecord
	EmotionalState int // 1=calm, 10=tilted
	WouldRepeat    bool
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Win reports whether the trade closed with a positive net P&L.
func (t *Trade) Win() bool {
	return t.PnLNet > 0
}
