package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/ava/internal/cache"
	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/interfaces"
	"github.com/bobmcallan/ava/internal/models"
)

// priceRetryWait is the pause before the single retry of a failed
// price fetch.
const priceRetryWait = 300 * time.Millisecond

// PriceHandler answers price queries from the short-TTL price cache.
// Expired entries are never served: a stale price reads as current and
// misleads, so a fetch failure becomes an apology instead.
type PriceHandler struct {
	market    interfaces.MarketDataClient
	prices    *cache.Cache[float64]
	picker    *Picker
	retryWait time.Duration
	logger    *common.Logger
}

// NewPriceHandler creates the price query handler
func NewPriceHandler(market interfaces.MarketDataClient, prices *cache.Cache[float64], picker *Picker, logger *common.Logger) *PriceHandler {
	return &PriceHandler{
		market:    market,
		prices:    prices,
		picker:    picker,
		retryWait: priceRetryWait,
		logger:    logger,
	}
}

func (h *PriceHandler) Execute(ctx context.Context, inst models.Instrument, question string, ann *models.Annotation) (string, error) {
	price, ok := h.prices.Get(inst.Code)
	if !ok {
		fetched, err := h.fetchClose(ctx, inst.Ticker)
		if err != nil {
			h.logger.Warn().Str("instrument", inst.Code).Err(err).Msg("Price fetch failed")
			return fmt.Sprintf(h.picker.Pick(priceErrors), inst.Name), nil
		}
		h.prices.Put(inst.Code, fetched)
		price = fetched
	}

	return fmt.Sprintf(h.picker.Pick(priceReplies), inst.Name, FormatPrice(price, inst.Currency)), nil
}

// fetchClose fetches the latest close, retrying once after a short wait
// so a transient provider hiccup does not surface as an apology.
func (h *PriceHandler) fetchClose(ctx context.Context, ticker string) (float64, error) {
	price, err := h.market.LatestClose(ctx, ticker)
	if err == nil {
		return price, nil
	}
	h.logger.Debug().Str("ticker", ticker).Err(err).Msg("Price fetch failed, retrying once")

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(h.retryWait):
	}
	return h.market.LatestClose(ctx, ticker)
}
