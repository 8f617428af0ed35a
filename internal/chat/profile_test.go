package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/ava/internal/cache"
	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/models"
)

func equityProfile() *models.CompanyProfile {
	return &models.CompanyProfile{
		Sector:            "Industrials",
		Industry:          "Airlines",
		Summary:           "Türk Hava Yolları is the flag carrier airline of Turkey.",
		MarketCap:         412_000_000_000,
		PERatio:           4.25,
		High52Week:        345.0,
		Low52Week:         210.5,
		RecommendationKey: "strong_buy",
		Currency:          "TRY",
	}
}

func TestProfileHandler_EquityReport(t *testing.T) {
	market := &mockMarket{profile: equityProfile()}
	handler := NewProfileHandler(market, nil, cache.New[*models.CompanyProfile](300*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["THY"]
	reply, err := handler.Execute(context.Background(), inst, "thy nasıl bir şirket", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"**Sektör:** Industrials / Airlines",
		"412,00 Milyar TRY",
		"**F/K Oranı:** 4,25",
		"210,50 - 345,00",
		"Güçlü AL 🟢",
		"flag carrier",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestProfileHandler_QuoteReportForCurrency(t *testing.T) {
	market := &mockMarket{profile: &models.CompanyProfile{
		Open:      34.12,
		PrevClose: 34.05,
		DayLow:    34.01,
		DayHigh:   34.28,
		Volume:    1234567,
		Currency:  "TRY",
	}}
	handler := NewProfileHandler(market, nil, cache.New[*models.CompanyProfile](300*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["DOLAR"]
	reply, err := handler.Execute(context.Background(), inst, "dolar hakkında bilgi", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"**Amerikan Doları Piyasa Verileri** (DÖVİZ)",
		"**Önceki Kapanış:** 34,05 TRY",
		"**Açılış:** 34,12 TRY",
		"34,01 - 34,28",
		"**Hacim:** 1.234.567",
		"temel bilanço verileri sunulmamaktadır",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestProfileHandler_TranslatesTextFields(t *testing.T) {
	market := &mockMarket{profile: equityProfile()}
	translator := &mockTranslator{prefix: "TR:"}
	handler := NewProfileHandler(market, translator, cache.New[*models.CompanyProfile](300*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["THY"]
	reply, err := handler.Execute(context.Background(), inst, "thy nedir", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply, "TR:Industrials") {
		t.Errorf("sector not translated:\n%s", reply)
	}
	if translator.calls != 3 {
		t.Errorf("translator calls = %d, want 3 (summary, sector, industry)", translator.calls)
	}
}

func TestProfileHandler_TranslationFailureKeepsOriginal(t *testing.T) {
	market := &mockMarket{profile: equityProfile()}
	translator := &mockTranslator{err: errUnavailable}
	handler := NewProfileHandler(market, translator, cache.New[*models.CompanyProfile](300*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["THY"]
	reply, err := handler.Execute(context.Background(), inst, "thy nedir", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply, "Industrials") {
		t.Errorf("original sector lost on translation failure:\n%s", reply)
	}
}

func TestProfileHandler_StaleFallbackOnFetchFailure(t *testing.T) {
	profiles := cache.New[*models.CompanyProfile](300 * time.Second)

	now := time.Now()
	clock := now
	profiles.SetClock(func() time.Time { return clock })

	market := &mockMarket{profile: equityProfile()}
	handler := NewProfileHandler(market, nil, profiles, NewPicker(1), common.NewSilentLogger())
	inst := testInstruments()["THY"]
	ctx := context.Background()

	if _, err := handler.Execute(ctx, inst, "thy nedir", nil); err != nil {
		t.Fatal(err)
	}

	// Entry expires, then the provider goes down
	clock = now.Add(10 * time.Minute)
	market.profileErr = errUnavailable

	reply, err := handler.Execute(ctx, inst, "thy nedir", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(reply, "Industrials") {
		t.Errorf("stale profile not served:\n%s", reply)
	}
	if market.profileCalls != 2 {
		t.Errorf("profile calls = %d, want 2", market.profileCalls)
	}
}

func TestProfileHandler_NoDataReturnsApology(t *testing.T) {
	market := &mockMarket{profileErr: errUnavailable}
	handler := NewProfileHandler(market, nil, cache.New[*models.CompanyProfile](300*time.Second), NewPicker(1), common.NewSilentLogger())

	inst := testInstruments()["THY"]
	reply, err := handler.Execute(context.Background(), inst, "thy nedir", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !oneOf(reply, profileEmpty, func(v string) string { return fmt.Sprintf(v, inst.Name) }) {
		t.Errorf("reply = %q, want one of the no-profile templates", reply)
	}
}

func TestTrimSummary(t *testing.T) {
	long := strings.Repeat("Bu cümle tam olarak burada sona eriyor. ", 20)
	got := trimSummary(long)
	if len([]rune(got)) > maxSummaryLength {
		t.Errorf("trimmed summary too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "eriyor.") {
		t.Errorf("trim should back up to a sentence boundary: %q", got)
	}
	if strings.HasSuffix(got, "..") {
		t.Errorf("trim should not double the period: %q", got)
	}

	short := "Kısa özet."
	if trimSummary(short) != short {
		t.Errorf("short summary should pass through unchanged")
	}
}
