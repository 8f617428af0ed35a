package scrape

import (
	"context"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/interfaces"
)

const (
	// MinBodyLength is the shared "good enough" threshold: a strategy's
	// result below it is treated as a miss and the next strategy runs.
	MinBodyLength = 50

	// MaxBodyLength bounds the text carried into a reply.
	MaxBodyLength = 500
)

// Chain tries an ordered list of fetch strategies until one yields a
// result of at least MinBodyLength characters. The order and threshold
// are the policy; the strategies are interchangeable.
type Chain struct {
	fetchers []interfaces.BodyFetcher
	logger   *common.Logger
}

// NewChain builds a fallback chain over the given strategies, tried in
// order.
func NewChain(logger *common.Logger, fetchers ...interfaces.BodyFetcher) *Chain {
	return &Chain{fetchers: fetchers, logger: logger}
}

// Name identifies the chain as a whole.
func (c *Chain) Name() string { return "chain" }

// FetchBody runs the strategies in order and returns the first usable
// result, truncated to MaxBodyLength. Returns "" without error when
// every strategy came back empty or short; an error only when the last
// strategy failed outright.
func (c *Chain) FetchBody(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}

	var lastErr error
	for _, fetcher := range c.fetchers {
		body, err := fetcher.FetchBody(ctx, url)
		if err != nil {
			c.logger.Debug().Str("strategy", fetcher.Name()).Str("url", url).Err(err).Msg("Fetch strategy failed")
			lastErr = err
			continue
		}
		if len(body) >= MinBodyLength {
			c.logger.Debug().Str("strategy", fetcher.Name()).Int("length", len(body)).Msg("Fetch strategy succeeded")
			return Truncate(body, MaxBodyLength), nil
		}
		lastErr = nil // strategy worked, content just too thin
	}

	return "", lastErr
}
