package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/interfaces"
	"github.com/bobmcallan/ava/internal/models"
	"github.com/bobmcallan/ava/internal/signals"
)

// TradeHandler answers buy/sell intent questions with a technical
// indicator report instead of advice. Without enough price history it
// degrades to a generic risk warning.
type TradeHandler struct {
	market interfaces.MarketDataClient
	picker *Picker
	logger *common.Logger
}

// NewTradeHandler creates the trade intent handler
func NewTradeHandler(market interfaces.MarketDataClient, picker *Picker, logger *common.Logger) *TradeHandler {
	return &TradeHandler{
		market: market,
		picker: picker,
		logger: logger,
	}
}

func (h *TradeHandler) Execute(ctx context.Context, inst models.Instrument, question string, ann *models.Annotation) (string, error) {
	var snapshot *models.TechnicalSnapshot
	bars, err := h.market.History(ctx, inst.Ticker, historyLookbackDays)
	if err != nil {
		h.logger.Warn().Str("instrument", inst.Code).Err(err).Msg("History fetch failed")
	} else {
		snapshot = signals.Compute(bars)
	}

	if snapshot == nil {
		when := "şu an"
		if ann != nil && ann.Tense != models.TenseUnspecified {
			when = string(ann.Tense)
		}
		return fmt.Sprintf(h.picker.Pick(buyWarnings), inst.Name, when), nil
	}

	rsiMarker := "🟡"
	switch snapshot.Signal {
	case models.SignalOversold:
		rsiMarker = "🟢"
	case models.SignalOverbought:
		rsiMarker = "🔴"
	}
	trendMarker := "📉"
	if snapshot.Trend == models.TrendRising {
		trendMarker = "📈"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(h.picker.Pick(technicalIntros), inst.Name))
	b.WriteString(fmt.Sprintf("\n• **Güncel Fiyat:** %s\n", FormatPrice(snapshot.Price, inst.Currency)))
	b.WriteString(fmt.Sprintf("• **Trend:** %s %s\n", trendMarker, snapshot.Trend.DisplayLabel()))
	b.WriteString(fmt.Sprintf("• **RSI (14):** %s %s -> _%s_\n", rsiMarker, FormatDecimal(snapshot.RSI), snapshot.Signal.DisplayLabel()))
	b.WriteString(fmt.Sprintf("• **50 Günlük Ort:** %s\n", FormatDecimal(snapshot.SMA50)))

	b.WriteString(h.picker.Pick(summaryLeads))
	switch {
	case snapshot.Signal == models.SignalOversold:
		b.WriteString("Fiyat teknik olarak 'ucuz' bölgede (aşırı satım). Tepki yükselişi beklenebilir.")
	case snapshot.Signal == models.SignalOverbought:
		b.WriteString("Fiyat teknik olarak 'pahalı' bölgede (aşırı alım). Kar satışı gelebilir.")
	case snapshot.Trend == models.TrendRising:
		b.WriteString("Orta vadeli yükseliş trendi korunuyor. Trend desteği takip edilmeli.")
	default:
		b.WriteString("Düşüş trendi baskın görünüyor. Temkinli olunmalı.")
	}

	b.WriteString("\n\n⚠️ _Bu bir yatırım tavsiyesi değildir. Sadece matematiksel gösterge analizidir._")
	return b.String(), nil
}
