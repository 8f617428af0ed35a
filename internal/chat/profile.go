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

// maxSummaryLength bounds the company summary before translation. The
// cut backs up to the last full sentence.
const maxSummaryLength = 400

// ProfileHandler answers general info questions with the instrument's
// profile. Profiles age slowly, so a provider failure is masked with the
// last cached profile when one exists.
type ProfileHandler struct {
	market     interfaces.MarketDataClient
	translator interfaces.Translator // optional
	profiles   *cache.Cache[*models.CompanyProfile]
	picker     *Picker
	logger     *common.Logger
}

// NewProfileHandler creates the general info handler. translator may be
// nil, in which case provider text stays untranslated.
func NewProfileHandler(market interfaces.MarketDataClient, translator interfaces.Translator, profiles *cache.Cache[*models.CompanyProfile], picker *Picker, logger *common.Logger) *ProfileHandler {
	return &ProfileHandler{
		market:     market,
		translator: translator,
		profiles:   profiles,
		picker:     picker,
		logger:     logger,
	}
}

func (h *ProfileHandler) Execute(ctx context.Context, inst models.Instrument, question string, ann *models.Annotation) (string, error) {
	if profile, ok := h.profiles.Get(inst.Code); ok {
		return h.format(inst, profile), nil
	}

	profile, err := h.market.Profile(ctx, inst.Ticker)
	if err != nil {
		if stale, ok := h.profiles.GetStale(inst.Code); ok {
			h.logger.Warn().Str("instrument", inst.Code).Err(err).Msg("Profile fetch failed, serving stale data")
			return h.format(inst, stale), nil
		}
		h.logger.Warn().Str("instrument", inst.Code).Err(err).Msg("Profile fetch failed")
		return fmt.Sprintf(h.picker.Pick(profileEmpty), inst.Name), nil
	}

	h.localize(ctx, profile)
	h.profiles.Put(inst.Code, profile)
	return h.format(inst, profile), nil
}

// localize trims the summary to sentence length and translates the
// provider's English text fields. Translation failures keep the
// original text.
func (h *ProfileHandler) localize(ctx context.Context, profile *models.CompanyProfile) {
	profile.Summary = trimSummary(profile.Summary)
	if h.translator == nil {
		return
	}

	for _, field := range []*string{&profile.Summary, &profile.Sector, &profile.Industry} {
		if *field == "" {
			continue
		}
		translated, err := h.translator.Translate(ctx, *field, "TR")
		if err != nil {
			h.logger.Debug().Err(err).Msg("Translation failed, keeping original text")
			continue
		}
		if translated != "" {
			*field = translated
		}
	}
}

// trimSummary cuts the text to maxSummaryLength runes, backing up to the
// last complete sentence.
func trimSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSummaryLength {
		return s
	}
	cut := string(runes[:maxSummaryLength])
	if idx := strings.LastIndex(cut, "."); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "."
}

func (h *ProfileHandler) format(inst models.Instrument, profile *models.CompanyProfile) string {
	if inst.Category == models.CategoryEquity {
		return h.formatEquity(inst, profile)
	}
	return h.formatQuote(inst, profile)
}

func (h *ProfileHandler) formatEquity(inst models.Instrument, profile *models.CompanyProfile) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(h.picker.Pick(profileIntros), inst.Name))

	b.WriteString(fmt.Sprintf("\n🏢 **Sektör:** %s / %s\n", profile.Sector, profile.Industry))

	marketCap := "N/A"
	if profile.MarketCap > 0 {
		marketCap = FormatDecimal(profile.MarketCap/1_000_000_000) + " Milyar"
	}
	peRatio := "N/A"
	if profile.PERatio > 0 {
		peRatio = FormatDecimal(profile.PERatio)
	}

	b.WriteString(fmt.Sprintf("💰 **Piyasa Değeri:** %s %s\n", marketCap, profile.Currency))
	b.WriteString(fmt.Sprintf("📉 **F/K Oranı:** %s (Yatırım Geri Dönüş Süresi)\n", peRatio))
	b.WriteString(fmt.Sprintf("↕️ **52 Haftalık Aralık:** %s - %s\n", FormatDecimal(profile.Low52Week), FormatDecimal(profile.High52Week)))
	b.WriteString(fmt.Sprintf("🎯 **Analist Konsensusu:** %s\n", LocalizeRecommendation(profile.RecommendationKey)))

	summary := profile.Summary
	if summary == "" {
		summary = "Bilgi bulunamadı."
	}
	b.WriteString(fmt.Sprintf("\nℹ️ **Şirket Hakkında:** %s", summary))
	return b.String()
}

func (h *ProfileHandler) formatQuote(inst models.Instrument, profile *models.CompanyProfile) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 **%s Piyasa Verileri** (%s)\n", inst.Name, inst.Category.DisplayLabel()))

	b.WriteString(fmt.Sprintf("\n📉 **Önceki Kapanış:** %s\n", FormatPrice(profile.PrevClose, profile.Currency)))
	b.WriteString(fmt.Sprintf("🌅 **Açılış:** %s\n", FormatPrice(profile.Open, profile.Currency)))
	b.WriteString(fmt.Sprintf("↕️ **Günlük Aralık:** %s - %s\n", FormatDecimal(profile.DayLow), FormatDecimal(profile.DayHigh)))
	if profile.Volume > 0 {
		b.WriteString(fmt.Sprintf("📊 **Hacim:** %s\n", FormatCount(profile.Volume)))
	}

	b.WriteString("\n_Bu varlık türü için temel bilanço verileri sunulmamaktadır._")
	return b.String()
}
