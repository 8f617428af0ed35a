package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/ava/internal/cache"
	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/interfaces"
	"github.com/bobmcallan/ava/internal/models"
)

const (
	// minDescriptionLength is the floor below which a headline is not
	// worth showing; a body fetch is attempted first.
	minDescriptionLength = 30

	// maxDisplayedItems bounds the reply; maxConsideredItems bounds how
	// many headlines a body fetch is attempted for.
	maxDisplayedItems  = 3
	maxConsideredItems = 5
)

// NewsHandler answers news and risk questions. Providers are tried in
// order until one returns headlines; thin descriptions are filled by
// scraping the article body through the fetch chain.
type NewsHandler struct {
	providers  []interfaces.NewsClient
	bodies     interfaces.BodyFetcher
	headlines  *cache.Cache[[]*models.NewsItem]
	resolveURL func(string) string
	picker     *Picker
	logger     *common.Logger
}

// NewNewsHandler creates the news handler. resolveURL rewrites
// aggregator links to publisher links before scraping; nil means no
// rewriting. bodies may be nil, disabling body fetches.
func NewNewsHandler(providers []interfaces.NewsClient, bodies interfaces.BodyFetcher, headlines *cache.Cache[[]*models.NewsItem], resolveURL func(string) string, picker *Picker, logger *common.Logger) *NewsHandler {
	if resolveURL == nil {
		resolveURL = func(u string) string { return u }
	}
	return &NewsHandler{
		providers:  providers,
		bodies:     bodies,
		headlines:  headlines,
		resolveURL: resolveURL,
		picker:     picker,
		logger:     logger,
	}
}

func (h *NewsHandler) Execute(ctx context.Context, inst models.Instrument, question string, ann *models.Annotation) (string, error) {
	if items, ok := h.headlines.Get(inst.Code); ok {
		return h.format(ctx, inst, items), nil
	}

	var items []*models.NewsItem
	failures := 0
	for _, provider := range h.providers {
		result, err := provider.Search(ctx, inst)
		if err != nil {
			h.logger.Warn().Str("provider", provider.Name()).Str("instrument", inst.Code).Err(err).Msg("News provider failed")
			failures++
			continue
		}
		if len(result) > 0 {
			h.logger.Debug().Str("provider", provider.Name()).Int("items", len(result)).Msg("News provider succeeded")
			items = result
			break
		}
	}

	if len(items) == 0 {
		if failures == len(h.providers) {
			return h.picker.Pick(newsErrors), nil
		}
		return fmt.Sprintf(h.picker.Pick(newsEmpty), inst.Name), nil
	}

	h.headlines.Put(inst.Code, items)
	return h.format(ctx, inst, items), nil
}

func (h *NewsHandler) format(ctx context.Context, inst models.Instrument, items []*models.NewsItem) string {
	entries := make([]string, 0, maxDisplayedItems)
	for i, item := range items {
		if i >= maxConsideredItems || len(entries) >= maxDisplayedItems {
			break
		}

		desc := item.Description
		if len([]rune(desc)) < minDescriptionLength && item.URL != "" && h.bodies != nil {
			body, err := h.bodies.FetchBody(ctx, h.resolveURL(item.URL))
			if err != nil {
				h.logger.Debug().Str("url", item.URL).Err(err).Msg("Body fetch failed")
			} else if body != "" {
				desc = body
			}
		}
		if len([]rune(desc)) < minDescriptionLength {
			continue
		}

		entries = append(entries, formatEntry(item, desc))
	}

	if len(entries) == 0 {
		return fmt.Sprintf(h.picker.Pick(newsEmpty), inst.Name)
	}

	intro := fmt.Sprintf(h.picker.Pick(newsIntros), inst.Name)
	outro := h.picker.Pick(newsOutros)
	return intro + "\n\n" + strings.Join(entries, "\n\n") + "\n\n" + outro
}

func formatEntry(item *models.NewsItem, desc string) string {
	meta := make([]string, 0, 2)
	if item.Source != "" {
		meta = append(meta, item.Source)
	}
	if !item.PublishedAt.IsZero() {
		meta = append(meta, item.PublishedAt.Format("02.01.2006 15:04"))
	}

	if len(meta) > 0 {
		return fmt.Sprintf("  📰 **%s**\n     _%s_\n     %s", item.Title, strings.Join(meta, " | "), desc)
	}
	return fmt.Sprintf("  📰 **%s**\n     %s", item.Title, desc)
}
