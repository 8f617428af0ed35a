// Package signals provides technical indicator calculations
package signals

import "github.com/bobmcallan/ava/internal/models"

// SMA calculates the simple moving average of the last period closes.
// Bars are ordered oldest first. Returns 0 when there is not enough data.
func SMA(bars []models.Bar, period int) float64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(period)
}

// RSI calculates the Relative Strength Index over the last period deltas:
// 100 − 100/(1+RS), RS = mean gain / mean loss. A window with no losses
// yields 100, not a division error. Returns 50 (neutral) when there is
// not enough data.
func RSI(bars []models.Bar, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 50
	}

	var gains, losses float64
	for i := len(bars) - period; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
