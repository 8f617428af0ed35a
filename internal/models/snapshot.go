package models

// TrendDirection labels the price position relative to the 50-period SMA.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
)

// DisplayLabel returns the Turkish trend label used in replies.
func (t TrendDirection) DisplayLabel() string {
	if t == TrendRising {
		return "YÜKSELİŞ (Boğa)"
	}
	return "DÜŞÜŞ (Ayı)"
}

// RSISignal labels the RSI reading against the 30/70 thresholds.
type RSISignal string

const (
	SignalOversold   RSISignal = "oversold"
	SignalOverbought RSISignal = "overbought"
	SignalNeutral    RSISignal = "neutral"
)

// DisplayLabel returns the Turkish signal label used in replies.
func (s RSISignal) DisplayLabel() string {
	switch s {
	case SignalOversold:
		return "AŞIRI SATIM (Tepki Gelebilir)"
	case SignalOverbought:
		return "AŞIRI ALIM (Düzeltme Gelebilir)"
	default:
		return "NÖTR"
	}
}

// TechnicalSnapshot is the derived, non-persisted result of analyzing an
// instrument's recent price series. It is computed fresh per request.
type TechnicalSnapshot struct {
	Price  float64        `json:"price"`
	RSI    float64        `json:"rsi"`
	SMA50  float64        `json:"sma50"`
	SMA200 float64        `json:"sma200,omitempty"` // zero when under 200 observations
	Trend  TrendDirection `json:"trend"`
	Signal RSISignal      `json:"signal"`
}
