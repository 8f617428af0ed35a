// Package app wires configuration, clients, caches and the chat
// pipeline into a running application. It is the shared core used by
// both cmd/ava and cmd/ava-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/ava/internal/cache"
	"github.com/bobmcallan/ava/internal/chat"
	"github.com/bobmcallan/ava/internal/clients/classifier"
	"github.com/bobmcallan/ava/internal/clients/deepl"
	"github.com/bobmcallan/ava/internal/clients/googlenews"
	"github.com/bobmcallan/ava/internal/clients/tradingview"
	"github.com/bobmcallan/ava/internal/clients/yahoo"
	"github.com/bobmcallan/ava/internal/clients/zemberek"
	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/interfaces"
	"github.com/bobmcallan/ava/internal/models"
	"github.com/bobmcallan/ava/internal/scrape"
)

// App holds all initialized clients, caches and the chat dispatcher.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Market      interfaces.MarketDataClient
	Dispatcher  *chat.Dispatcher
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes the application. configPath may be empty, in which
// case AVA_CONFIG and the binary directory are checked in order.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("AVA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "ava.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/ava.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative log file path to binary directory
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	// Market data
	market := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	// Rendered scraping, shared by the news fallback provider and the
	// article body chain
	renderer := scrape.NewRenderer(scrape.WithRendererLogger(logger))

	// News providers, tried in order
	providers := []interfaces.NewsClient{
		googlenews.NewClient(
			googlenews.WithBaseURL(config.Clients.GoogleNews.BaseURL),
			googlenews.WithTimeout(config.Clients.GoogleNews.GetTimeout()),
			googlenews.WithLogger(logger),
		),
	}
	if config.Clients.TradingView.Enabled {
		providers = append(providers, tradingview.NewClient(renderer,
			tradingview.WithTimeout(config.Clients.TradingView.GetTimeout()),
			tradingview.WithLogger(logger),
		))
	}

	// Article body fetch chain: rendered first, plain HTTP as a cheaper
	// fallback when the browser fails
	bodies := scrape.NewChain(logger,
		scrape.NewRenderedFetcher(renderer, logger),
		scrape.NewStaticFetcher(config.Clients.GoogleNews.GetTimeout(), logger),
	)

	// NLP services
	intentClient := classifier.NewClient(
		classifier.WithBaseURL(config.Clients.Classifier.BaseURL),
		classifier.WithTimeout(config.Clients.Classifier.GetTimeout()),
		classifier.WithLogger(logger),
	)
	morphClient := zemberek.NewClient(
		zemberek.WithBaseURL(config.Clients.Zemberek.BaseURL),
		zemberek.WithTimeout(config.Clients.Zemberek.GetTimeout()),
		zemberek.WithLogger(logger),
	)

	var translator interfaces.Translator
	if key := config.Clients.DeepL.APIKey; key != "" {
		// Endpoint follows the key tier unless the config pins one
		deeplOpts := []deepl.ClientOption{
			deepl.WithTimeout(config.Clients.DeepL.GetTimeout()),
			deepl.WithLogger(logger),
		}
		if config.Clients.DeepL.BaseURL != "" {
			deeplOpts = append(deeplOpts, deepl.WithBaseURL(config.Clients.DeepL.BaseURL))
		}
		translator = deepl.NewClient(key, deeplOpts...)
	} else {
		logger.Warn().Msg("DeepL API key not configured - company summaries stay untranslated")
	}

	// Caches
	prices := cache.New[float64](config.Cache.GetPriceTTL())
	profiles := cache.New[*models.CompanyProfile](config.Cache.GetProfileTTL())
	headlines := cache.New[[]*models.NewsItem](config.Cache.GetNewsTTL())

	picker := chat.NewPicker(0)

	handlers := map[string]chat.Handler{
		chat.IntentGeneralInfo:   chat.NewProfileHandler(market, translator, profiles, picker, logger),
		chat.IntentNewsAndRisk:   chat.NewNewsHandler(providers, bodies, headlines, googlenews.ResolveRedirect, picker, logger),
		chat.IntentPriceQuery:    chat.NewPriceHandler(market, prices, picker, logger),
		chat.IntentTradeIntent:   chat.NewTradeHandler(market, picker, logger),
		chat.IntentTrendForecast: chat.NewTrendHandler(market, picker, logger),
	}

	dispatcher := chat.NewDispatcher(
		config.Instruments,
		intentClient,
		morphClient,
		handlers,
		config.Chat.ConfidenceThreshold,
		config.Chat.HistoryDepth,
		logger,
	)

	a := &App{
		Config:      config,
		Logger:      logger,
		Market:      market,
		Dispatcher:  dispatcher,
		StartupTime: startupStart,
	}

	logger.Info().
		Int("instruments", len(config.Instruments)).
		Float64("confidence_threshold", config.Chat.ConfidenceThreshold).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}
