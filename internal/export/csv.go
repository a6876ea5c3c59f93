// Package export renders record sets into CSV for spreadsheets and external
// analysis.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

// TradeRow is the flattened CSV shape of a trade.
type TradeRow struct {
	Date           string  `csv:"date"`
	Symbol         string  `csv:"symbol"`
	Direction      string  `csv:"direction"`
	Playbook       string  `csv:"playbook"`
	Grade          string  `csv:"grade"`
	Contracts      int     `csv:"contracts"`
	EntryPrice     float64 `csv:"entry_price"`
	StopLoss       float64 `csv:"stop_loss"`
	TakeProfit     float64 `csv:"take_profit"`
	PnLGross       float64 `csv:"pnl_gross"`
	Commission     float64 `csv:"commission"`
	PnLNet         float64 `csv:"pnl_net"`
	EmotionalState int     `csv:"emotional_state"`
	WouldRepeat    bool    `csv:"would_repeat"`
	Notes          string  `csv:"notes"`
}

// WriteTrades writes the trade history as CSV.
func WriteTrades(w io.Writer, trades []models.Trade) error {
	rows := make([]TradeRow, 0, len(trades))
	for i := range trades {
		t := &trades[i]
		rows = append(rows, TradeRow{
			Date:           t.Date.Format("2006-01-02"),
			Symbol:         t.Symbol,
			Direction:      string(t.Direction),
			Playbook:       t.Compliance.Snapshot.Name,
			Grade:          string(t.Grade),
			Contracts:      t.PositionSize,
			EntryPrice:     t.EntryPrice,
			StopLoss:       t.StopLoss,
			TakeProfit:     t.TakeProfit,
			PnLGross:       t.PnLGross,
			Commission:     t.Commission,
			PnLNet:         t.PnLNet,
			EmotionalState: t.EmotionalState,
			WouldRepeat:    t.WouldRepeat,
			Notes:          t.Notes,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// CheckinRow is the flattened CSV shape of a daily check-in.
type CheckinRow struct {
	Date         string `csv:"date"`
	SleepQuality int    `csv:"sleep_quality"`
	StressLevel  int    `csv:"stress_level"`
	HomeStress   int    `csv:"home_stress"`
	Alcohol24h   bool   `csv:"alcohol_24h"`
	ExerciseDone bool   `csv:"exercise_done"`
	TradingPlan  string `csv:"trading_plan"`
}

// WriteCheckins writes the check-in history as CSV.
func WriteCheckins(w io.Writer, checkins []models.DailyCheckin) error {
	rows := make([]CheckinRow, 0, len(checkins))
	for _, c := range checkins {
		rows = append(rows, CheckinRow{
			Date:         c.Date,
			SleepQuality: c.SleepQuality,
			StressLevel:  c.StressLevel,
			HomeStress:   c.HomeStress,
			Alcohol24h:   c.Alcohol24h,
			ExerciseDone: c.ExerciseDone,
			TradingPlan:  c.TradingPlan,
		})
	}
	return gocsv.Marshal(&rows, w)
}
