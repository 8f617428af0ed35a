package models

import "time"

// Bar is a single daily price observation, most recent data last.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// CompanyProfile holds the provider's summary data for an instrument.
// Equity instruments carry the fundamental fields; currencies, commodities
// and indices only the session fields.
type CompanyProfile struct {
	Sector            string  `json:"sector,omitempty"`
	Industry          string  `json:"industry,omitempty"`
	Summary           string  `json:"summary,omitempty"`
	MarketCap         float64 `json:"market_cap,omitempty"`
	PERatio           float64 `json:"pe_ratio,omitempty"`
	High52Week        float64 `json:"high_52_week,omitempty"`
	Low52Week         float64 `json:"low_52_week,omitempty"`
	RecommendationKey string  `json:"recommendation_key,omitempty"`
	Currency          string  `json:"currency,omitempty"`

	Open      float64 `json:"open,omitempty"`
	PrevClose float64 `json:"prev_close,omitempty"`
	DayLow    float64 `json:"day_low,omitempty"`
	DayHigh   float64 `json:"day_high,omitempty"`
	Volume    int64   `json:"volume,omitempty"`
}

// AnalystTarget holds the analyst consensus for an instrument.
type AnalystTarget struct {
	Current           float64 `json:"current"`
	Target            float64 `json:"target"`
	RecommendationKey string  `json:"recommendation_key,omitempty"`
	Currency          string  `json:"currency,omitempty"`
}

// UpsidePercent returns the percentage distance from the current price to
// the analyst mean target.
func (t *AnalystTarget) UpsidePercent() float64 {
	if t.Current == 0 {
		return 0
	}
	return (t.Target - t.Current) / t.Current * 100
}

// NewsItem is a single headline from a news provider.
type NewsItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}
