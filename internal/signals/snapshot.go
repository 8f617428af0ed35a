package signals

import "github.com/bobmcallan/ava/internal/models"

// MinObservations is the minimum number of daily bars required before a
// snapshot is computed at all.
const MinObservations = 50

// RSI thresholds for the oversold/overbought classification.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Compute derives a TechnicalSnapshot from a daily price series ordered
// oldest first. Returns nil when fewer than MinObservations bars are
// available.
func Compute(bars []models.Bar) *models.TechnicalSnapshot {
	if len(bars) < MinObservations {
		return nil
	}

	price := bars[len(bars)-1].Close

	snapshot := &models.TechnicalSnapshot{
		Price: price,
		RSI:   RSI(bars, 14),
		SMA50: SMA(bars, 50),
	}
	if len(bars) >= 200 {
		snapshot.SMA200 = SMA(bars, 200)
	}

	switch {
	case snapshot.RSI < RSIOversold:
		snapshot.Signal = models.SignalOversold
	case snapshot.RSI > RSIOverbought:
		snapshot.Signal = models.SignalOverbought
	default:
		snapshot.Signal = models.SignalNeutral
	}

	if price > snapshot.SMA50 {
		snapshot.Trend = models.TrendRising
	} else {
		snapshot.Trend = models.TrendFalling
	}

	return snapshot
}
