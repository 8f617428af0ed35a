package chat

import (
	"context"
	"errors"

	"github.com/bobmcallan/ava/internal/models"
)

// --- Mock classifier ---

type mockClassifier struct {
	prediction *models.IntentPrediction
	err        error
	calls      int
	lastText   string
}

func (m *mockClassifier) Classify(_ context.Context, text string) (*models.IntentPrediction, error) {
	m.calls++
	m.lastText = text
	return m.prediction, m.err
}

// --- Mock morphological analyzer ---

type mockAnalyzer struct {
	annotation *models.Annotation
	err        error
	calls      int
}

func (m *mockAnalyzer) Annotate(_ context.Context, _ string) (*models.Annotation, error) {
	m.calls++
	return m.annotation, m.err
}

// --- Mock market data client ---

type mockMarket struct {
	close         float64
	closeErr      error
	closeFailures int // fail this many calls before succeeding
	closeCalls    int

	profile      *models.CompanyProfile
	profileErr   error
	profileCalls int

	bars       []models.Bar
	historyErr error

	target    *models.AnalystTarget
	targetErr error
}

func (m *mockMarket) LatestClose(_ context.Context, _ string) (float64, error) {
	m.closeCalls++
	if m.closeCalls <= m.closeFailures {
		return 0, errUnavailable
	}
	return m.close, m.closeErr
}

func (m *mockMarket) Profile(_ context.Context, _ string) (*models.CompanyProfile, error) {
	m.profileCalls++
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

func (m *mockMarket) History(_ context.Context, _ string, _ int) ([]models.Bar, error) {
	return m.bars, m.historyErr
}

func (m *mockMarket) AnalystTarget(_ context.Context, _ string) (*models.AnalystTarget, error) {
	if m.targetErr != nil {
		return nil, m.targetErr
	}
	return m.target, nil
}

// --- Mock news provider ---

type mockNewsProvider struct {
	name  string
	items []*models.NewsItem
	err   error
	calls int
}

func (m *mockNewsProvider) Name() string { return m.name }

func (m *mockNewsProvider) Search(_ context.Context, _ models.Instrument) ([]*models.NewsItem, error) {
	m.calls++
	return m.items, m.err
}

// --- Mock body fetcher ---

type mockFetcher struct {
	body  string
	err   error
	calls int
}

func (m *mockFetcher) Name() string { return "mock" }

func (m *mockFetcher) FetchBody(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.body, m.err
}

// --- Mock handler ---

type mockHandler struct {
	reply    string
	err      error
	calls    int
	lastInst models.Instrument
	lastAnn  *models.Annotation
}

func (m *mockHandler) Execute(_ context.Context, inst models.Instrument, _ string, ann *models.Annotation) (string, error) {
	m.calls++
	m.lastInst = inst
	m.lastAnn = ann
	return m.reply, m.err
}

// --- Mock translator ---

type mockTranslator struct {
	prefix string
	err    error
	calls  int
}

func (m *mockTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.prefix + text, nil
}

// --- Shared fixtures ---

var errUnavailable = errors.New("service unavailable")

func testInstruments() map[string]models.Instrument {
	index := make(map[string]models.Instrument)
	for _, inst := range models.DefaultInstruments() {
		index[inst.Code] = inst
	}
	return index
}

// oneOf reports whether got matches any rendered variant.
func oneOf(got string, variants []string, render func(string) string) bool {
	for _, v := range variants {
		if got == render(v) {
			return true
		}
	}
	return false
}
