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

// historyLookbackDays is the daily-bar window fed to the indicator
// calculations, roughly six months of sessions.
const historyLookbackDays = 180

// TrendHandler answers trend and forecast questions with the technical
// trend direction and the analyst consensus.
type TrendHandler struct {
	market interfaces.MarketDataClient
	picker *Picker
	logger *common.Logger
}

// NewTrendHandler creates the trend forecast handler
func NewTrendHandler(market interfaces.MarketDataClient, picker *Picker, logger *common.Logger) *TrendHandler {
	return &TrendHandler{
		market: market,
		picker: picker,
		logger: logger,
	}
}

func (h *TrendHandler) Execute(ctx context.Context, inst models.Instrument, question string, ann *models.Annotation) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(h.picker.Pick(forecastIntros), inst.Name))

	bars, err := h.market.History(ctx, inst.Ticker, historyLookbackDays)
	if err != nil {
		h.logger.Warn().Str("instrument", inst.Code).Err(err).Msg("History fetch failed")
	} else if snapshot := signals.Compute(bars); snapshot != nil {
		b.WriteString(fmt.Sprintf("\n• **Teknik Trend:** %s (SMA50'ye göre)\n", snapshot.Trend.DisplayLabel()))
	}

	target, err := h.market.AnalystTarget(ctx, inst.Ticker)
	if err != nil || target == nil || target.Current == 0 || target.Target == 0 {
		if err != nil {
			h.logger.Warn().Str("instrument", inst.Code).Err(err).Msg("Analyst target fetch failed")
		}
		b.WriteString("\n⚠️ Analist hedef fiyat verisine ulaşılamadı.\n")
	} else {
		upside := target.UpsidePercent()
		marker := "🟥"
		if upside > 0 {
			marker = "🟩"
		}
		b.WriteString("\n🎯 **Analist Konsensusu:**\n")
		b.WriteString(fmt.Sprintf("   • Konsensus: _%s_\n", LocalizeRecommendation(target.RecommendationKey)))
		b.WriteString(fmt.Sprintf("   • Hedef Fiyat: %s\n", FormatPrice(target.Target, target.Currency)))
		b.WriteString(fmt.Sprintf("   • Getiri Potansiyeli: %s %%%s\n", marker, FormatDecimal(upside)))
	}

	b.WriteString("\n_Veriler piyasa gecikmeli olabilir._")
	return b.String(), nil
}
