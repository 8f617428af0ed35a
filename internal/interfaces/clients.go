// Package interfaces defines collaborator contracts for Ava
package interfaces

import (
	"context"

	"github.com/bobmcallan/ava/internal/models"
)

// MarketDataClient provides access to market data for a provider ticker.
type MarketDataClient interface {
	// LatestClose retrieves the most recent close price
	LatestClose(ctx context.Context, ticker string) (float64, error)

	// Profile retrieves the company/instrument summary data
	Profile(ctx context.Context, ticker string) (*models.CompanyProfile, error)

	// History retrieves the daily price series for the lookback window,
	// ordered oldest first
	History(ctx context.Context, ticker string, lookbackDays int) ([]models.Bar, error)

	// AnalystTarget retrieves the analyst mean target and consensus
	AnalystTarget(ctx context.Context, ticker string) (*models.AnalystTarget, error)
}

// NewsClient retrieves headlines for an instrument. Clients are tried in
// a fixed priority order until one yields a non-empty result.
type NewsClient interface {
	// Name identifies the provider in logs and item attribution
	Name() string

	// Search retrieves recent headlines for the instrument
	Search(ctx context.Context, inst models.Instrument) ([]*models.NewsItem, error)
}

// BodyFetcher retrieves readable article text from a URL. Implementations
// form the ordered scraping fallback chain.
type BodyFetcher interface {
	// Name identifies the strategy in logs
	Name() string

	// FetchBody retrieves the readable text of the page at url
	FetchBody(ctx context.Context, url string) (string, error)
}

// IntentClassifier returns the intent label and confidence for a
// normalized utterance.
type IntentClassifier interface {
	Classify(ctx context.Context, text string) (*models.IntentPrediction, error)
}

// MorphAnalyzer returns the morphological annotation for an utterance.
// Callers must degrade to a rule-based default when it errors.
type MorphAnalyzer interface {
	Annotate(ctx context.Context, text string) (*models.Annotation, error)
}

// Translator translates text into the target language. Best-effort:
// callers keep the original text on error.
type Translator interface {
	Translate(ctx context.Context, text string, targetLang string) (string, error)
}
