package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/ava/internal/common"
)

// StaticFetcher retrieves a page over plain HTTP and extracts readable
// text. First strategy in the chain: cheap, but blind to
// JavaScript-rendered content and client-side redirects.
type StaticFetcher struct {
	httpClient *http.Client
	logger     *common.Logger
}

// NewStaticFetcher creates the plain-HTTP fetch strategy.
func NewStaticFetcher(timeout time.Duration, logger *common.Logger) *StaticFetcher {
	return &StaticFetcher{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Name identifies the strategy.
func (f *StaticFetcher) Name() string { return "static" }

// FetchBody retrieves and extracts the readable text of the page.
func (f *StaticFetcher) FetchBody(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}

	// Google News article links serve an interstitial, not content; the
	// static strategy cannot follow the client-side redirect.
	if strings.Contains(resp.Request.URL.Host, "google.com") && strings.Contains(url, "news.google.com") {
		return "", fmt.Errorf("fetch %s: stuck on google redirect page", url)
	}

	return ExtractReadable(string(body)), nil
}

// RenderedFetcher retrieves a page through the headless renderer.
// Second strategy: follows client-side redirects and executes scripts,
// at the cost of a browser round trip.
type RenderedFetcher struct {
	renderer *Renderer
	logger   *common.Logger
}

// NewRenderedFetcher creates the headless-browser fetch strategy.
func NewRenderedFetcher(renderer *Renderer, logger *common.Logger) *RenderedFetcher {
	return &RenderedFetcher{renderer: renderer, logger: logger}
}

// Name identifies the strategy.
func (f *RenderedFetcher) Name() string { return "rendered" }

// FetchBody renders the page and extracts the readable text.
func (f *RenderedFetcher) FetchBody(ctx context.Context, url string) (string, error) {
	html, finalURL, err := f.renderer.Render(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}

	// Still parked on a Google domain after settling means the redirect
	// never fired.
	if strings.Contains(url, "news.google.com") && strings.Contains(finalURL, "google.com") {
		return "", fmt.Errorf("render %s: redirect did not resolve", url)
	}

	f.logger.Debug().Str("final_url", finalURL).Msg("Rendered article page")
	return ExtractReadable(html), nil
}
