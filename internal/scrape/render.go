// Package scrape provides best-effort article body extraction through an
// ordered chain of fetch strategies.
package scrape

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/bobmcallan/ava/internal/common"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Renderer drives a headless browser to fetch pages that require
// JavaScript execution (news-flow widgets, redirect interstitials).
type Renderer struct {
	userAgent string
	settle    time.Duration // wait after navigation for scripts to run
	logger    *common.Logger
}

// RendererOption configures the renderer
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger
func WithRendererLogger(logger *common.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithSettleTime sets how long to wait after navigation before reading
// the DOM.
func WithSettleTime(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.settle = d
	}
}

// NewRenderer creates a headless page renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		userAgent: defaultUserAgent,
		settle:    3 * time.Second,
		logger:    common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render navigates to url in a fresh headless browser context and
// returns the rendered document HTML along with the final URL after any
// client-side redirects. The caller bounds the whole operation through
// ctx.
func (r *Renderer) Render(ctx context.Context, url string) (html string, finalURL string, err error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(r.userAgent),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	r.logger.Debug().Str("url", url).Msg("Rendering page")

	err = chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(r.settle),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", "", err
	}
	return html, finalURL, nil
}
