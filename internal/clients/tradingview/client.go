// Package tradingview provides the secondary news provider, scraping an
// instrument's rendered news-flow page.
package tradingview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/models"
	"github.com/bobmcallan/ava/internal/scrape"
)

const (
	DefaultTimeout = 20 * time.Second

	maxItems       = 5
	minTitleLength = 10
	maxDescLength  = 400
)

// Client implements the NewsClient interface by rendering the
// instrument's news-flow page in a headless browser. It is the fallback
// when the RSS provider returns nothing.
type Client struct {
	renderer *scrape.Renderer
	timeout  time.Duration
	logger   *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the render timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new TradingView news-flow client
func NewClient(renderer *scrape.Renderer, opts ...ClientOption) *Client {
	c := &Client{
		renderer: renderer,
		timeout:  DefaultTimeout,
		logger:   common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name identifies the provider.
func (c *Client) Name() string { return "tradingview" }

// Search renders the instrument's news-flow page and scrapes the
// headline list.
func (c *Client) Search(ctx context.Context, inst models.Instrument) ([]*models.NewsItem, error) {
	if inst.NewsFlowURL == "" {
		return nil, fmt.Errorf("tradingview: no news-flow URL for %s", inst.Code)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	html, _, err := c.renderer.Render(ctx, inst.NewsFlowURL)
	if err != nil {
		return nil, fmt.Errorf("tradingview: render failed for %s: %w", inst.Code, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("tradingview: parse failed for %s: %w", inst.Code, err)
	}

	items := make([]*models.NewsItem, 0, maxItems)
	doc.Find(".news-item, .item-row, article").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find(".title, h3, .headline, a").First().Text())
		if len(title) <= minTitleLength {
			return true
		}

		desc := scrape.Truncate(strings.TrimSpace(s.Find(".description, .summary, p").First().Text()), maxDescLength)

		items = append(items, &models.NewsItem{
			Title:       title,
			Description: desc,
			Source:      "TradingView",
			PublishedAt: parseItemTime(s),
		})
		return len(items) < maxItems
	})

	c.logger.Debug().Str("instrument", inst.Code).Int("items", len(items)).Msg("TradingView news-flow result")

	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

// parseItemTime reads the item's datetime attribute when present.
// TradingView renders relative labels ("2 saat önce") as text, so only
// the machine-readable attribute is trusted.
func parseItemTime(s *goquery.Selection) time.Time {
	attr, ok := s.Find("time").First().Attr("datetime")
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, attr)
	if err != nil {
		return time.Time{}
	}
	return t
}
