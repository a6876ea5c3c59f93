package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sguzen/trading-manager-pro/internal/models"
)

func TestWriteTrades(t *testing.T) {
	trades := []models.Trade{
		{
			Date:         time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
			Symbol:       "ES",
			Direction:    models.DirectionLong,
			PositionSize: 2,
			PnLNet:       150,
			Grade:        models.GradeA,
			Compliance: models.ComplianceRecord{
				Snapshot: models.PlaybookSnapshot{Name: "ES Opening Drive"},
			},
			EmotionalState: 3,
			WouldRepeat:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, trades))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "symbol")
	assert.Contains(t, lines[0], "pnl_net")
	assert.Contains(t, lines[1], "2026-08-28")
	assert.Contains(t, lines[1], "ES Opening Drive")
	assert.Contains(t, lines[1], "150")
}

func TestWriteTradesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, nil))
	// Header only.
	assert.Contains(t, buf.String(), "date")
}

func TestWriteCheckins(t *testing.T) {
	checkins := []models.DailyCheckin{
		{
			Date:         "2026-08-28",
			SleepQuality: 8,
			StressLevel:  3,
			HomeStress:   2,
			ExerciseDone: true,
			TradingPlan:  "ES opening drive only",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCheckins(&buf, checkins))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "sleep_quality")
	assert.Contains(t, lines[1], "2026-08-28")
	assert.Contains(t, lines[1], "ES opening drive only")
}
