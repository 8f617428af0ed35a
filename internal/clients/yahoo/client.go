// Package yahoo provides a client for the Yahoo Finance public API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client implements the MarketDataClient interface against the Yahoo
// Finance chart and quoteSummary endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-200 response from Yahoo Finance
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// chartRange maps a lookback in days onto Yahoo's coarse range buckets.
func chartRange(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

// fetchChart retrieves daily bars for ticker, oldest first.
func (c *Client) fetchChart(ctx context.Context, ticker, interval, rng string) ([]models.Bar, error) {
	params := url.Values{}
	params.Set("interval", interval)
	params.Set("range", rng)

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(ticker))

	var chart chartResponse
	if err := c.get(ctx, path, params, &chart); err != nil {
		return nil, err
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo chart: no data for %s", ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart: no quote data for %s", ticker)
	}
	quote := result.Indicators.Quote[0]

	bars := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar := models.Bar{
			Date:   time.Unix(ts, 0),
			Open:   floatAt(quote.Open, i),
			High:   floatAt(quote.High, i),
			Low:    floatAt(quote.Low, i),
			Close:  floatAt(quote.Close, i),
			Volume: intAt(quote.Volume, i),
		}
		if bar.Open == 0 && bar.High == 0 && bar.Low == 0 && bar.Close == 0 {
			continue // null bars on holidays
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// LatestClose retrieves the most recent daily close price.
func (c *Client) LatestClose(ctx context.Context, ticker string) (float64, error) {
	bars, err := c.fetchChart(ctx, ticker, "1d", "5d")
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("yahoo: no price data for %s", ticker)
	}
	return bars[len(bars)-1].Close, nil
}

// History retrieves the daily price series for the lookback window,
// ordered oldest first.
func (c *Client) History(ctx context.Context, ticker string, lookbackDays int) ([]models.Bar, error) {
	bars, err := c.fetchChart(ctx, ticker, "1d", chartRange(lookbackDays))
	if err != nil {
		return nil, err
	}
	if len(bars) > lookbackDays {
		bars = bars[len(bars)-lookbackDays:]
	}
	return bars, nil
}

// Profile retrieves the instrument summary from the quoteSummary endpoint.
func (c *Client) Profile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	summary, err := c.quoteSummary(ctx, ticker, "assetProfile,summaryDetail,financialData,price")
	if err != nil {
		return nil, err
	}

	profile := &models.CompanyProfile{}
	if p := summary.AssetProfile; p != nil {
		profile.Sector = p.Sector
		profile.Industry = p.Industry
		profile.Summary = p.LongBusinessSummary
	}
	if d := summary.SummaryDetail; d != nil {
		profile.MarketCap = d.MarketCap.Raw
		profile.PERatio = d.TrailingPE.Raw
		if profile.PERatio == 0 {
			profile.PERatio = d.ForwardPE.Raw
		}
		profile.High52Week = d.FiftyTwoWeekHigh.Raw
		profile.Low52Week = d.FiftyTwoWeekLow.Raw
		profile.Open = d.Open.Raw
		profile.PrevClose = d.PreviousClose.Raw
		profile.DayLow = d.DayLow.Raw
		profile.DayHigh = d.DayHigh.Raw
		profile.Volume = int64(d.Volume.Raw)
	}
	if f := summary.FinancialData; f != nil {
		profile.RecommendationKey = f.RecommendationKey
	}
	if p := summary.Price; p != nil {
		profile.Currency = p.Currency
	}

	return profile, nil
}

// AnalystTarget retrieves the analyst mean target and consensus.
func (c *Client) AnalystTarget(ctx context.Context, ticker string) (*models.AnalystTarget, error) {
	summary, err := c.quoteSummary(ctx, ticker, "financialData,price")
	if err != nil {
		return nil, err
	}

	f := summary.FinancialData
	if f == nil {
		return nil, fmt.Errorf("yahoo: no financial data for %s", ticker)
	}

	current := f.CurrentPrice.Raw
	if current == 0 && summary.Price != nil {
		current = summary.Price.RegularMarketPreviousClose.Raw
	}
	target := f.TargetMeanPrice.Raw
	if current == 0 || target == 0 {
		return nil, fmt.Errorf("yahoo: no analyst target for %s", ticker)
	}

	result := &models.AnalystTarget{
		Current:           current,
		Target:            target,
		RecommendationKey: f.RecommendationKey,
	}
	if summary.Price != nil {
		result.Currency = summary.Price.Currency
	}
	return result, nil
}

// quoteSummary fetches the requested quoteSummary modules for ticker.
func (c *Client) quoteSummary(ctx context.Context, ticker, modules string) (*quoteSummaryModules, error) {
	params := url.Values{}
	params.Set("modules", modules)

	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(ticker))

	var resp quoteSummaryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo quoteSummary error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary: no data for %s", ticker)
	}

	return &resp.QuoteSummary.Result[0], nil
}
