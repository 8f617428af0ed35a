package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "timestamp": [1755216000, 1755302400, 1755388800],
      "indicators": {
        "quote": [{
          "open":   [280.0, 282.0, 0],
          "high":   [286.0, 287.5, 0],
          "low":    [279.0, 281.0, 0],
          "close":  [283.0, 284.5, 0],
          "volume": [1000000, 1200000, 0]
        }]
      }
    }],
    "error": null
  }
}`

const quoteSummaryPayload = `{
  "quoteSummary": {
    "result": [{
      "assetProfile": {
        "sector": "Industrials",
        "industry": "Airlines",
        "longBusinessSummary": "The flag carrier airline."
      },
      "summaryDetail": {
        "marketCap": {"raw": 412000000000},
        "trailingPE": {"raw": 4.25},
        "fiftyTwoWeekHigh": {"raw": 345.0},
        "fiftyTwoWeekLow": {"raw": 210.5},
        "previousClose": {"raw": 283.0},
        "open": {"raw": 284.0},
        "dayLow": {"raw": 282.5},
        "dayHigh": {"raw": 286.0},
        "volume": {"raw": 1200000}
      },
      "financialData": {
        "currentPrice": {"raw": 284.5},
        "targetMeanPrice": {"raw": 350.0},
        "recommendationKey": "strong_buy"
      },
      "price": {"currency": "TRY"}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL), WithRateLimit(1000))
}

func TestLatestClose(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/THYAO.IS" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, chartPayload)
	})

	got, err := client.LatestClose(context.Background(), "THYAO.IS")
	if err != nil {
		t.Fatalf("LatestClose() error = %v", err)
	}
	// The all-zero holiday bar is dropped; the last real close wins
	if got != 284.5 {
		t.Errorf("LatestClose() = %v, want 284.5", got)
	}
}

func TestHistory(t *testing.T) {
	var gotRange string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.URL.Query().Get("range")
		fmt.Fprint(w, chartPayload)
	})

	bars, err := client.History(context.Background(), "THYAO.IS", 180)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if gotRange != "6mo" {
		t.Errorf("range = %q, want 6mo for a 180-day lookback", gotRange)
	}
	if len(bars) != 2 {
		t.Fatalf("bars = %d, want 2 after dropping the null bar", len(bars))
	}
	if bars[0].Close != 283.0 || bars[1].Close != 284.5 {
		t.Errorf("bars out of order: %v, %v", bars[0].Close, bars[1].Close)
	}
}

func TestChartRange(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{10, "1mo"},
		{90, "3mo"},
		{180, "6mo"},
		{365, "1y"},
		{400, "2y"},
	}
	for _, tc := range cases {
		if got := chartRange(tc.days); got != tc.want {
			t.Errorf("chartRange(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/THYAO.IS" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, quoteSummaryPayload)
	})

	profile, err := client.Profile(context.Background(), "THYAO.IS")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.Sector != "Industrials" || profile.Industry != "Airlines" {
		t.Errorf("sector/industry = %q/%q", profile.Sector, profile.Industry)
	}
	if profile.MarketCap != 412000000000 {
		t.Errorf("market cap = %v", profile.MarketCap)
	}
	if profile.PERatio != 4.25 {
		t.Errorf("PE = %v", profile.PERatio)
	}
	if profile.RecommendationKey != "strong_buy" {
		t.Errorf("recommendation = %q", profile.RecommendationKey)
	}
	if profile.Currency != "TRY" {
		t.Errorf("currency = %q", profile.Currency)
	}
	if profile.Volume != 1200000 {
		t.Errorf("volume = %d", profile.Volume)
	}
}

func TestAnalystTarget(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, quoteSummaryPayload)
	})

	target, err := client.AnalystTarget(context.Background(), "THYAO.IS")
	if err != nil {
		t.Fatalf("AnalystTarget() error = %v", err)
	}
	if target.Current != 284.5 || target.Target != 350.0 {
		t.Errorf("target = %+v", target)
	}
	if target.Currency != "TRY" {
		t.Errorf("currency = %q", target.Currency)
	}
}

func TestAnalystTarget_MissingData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{"financialData":{}}],"error":null}}`)
	})

	if _, err := client.AnalystTarget(context.Background(), "GC=F"); err == nil {
		t.Fatal("AnalystTarget() expected error without target data")
	}
}

func TestGet_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.LatestClose(context.Background(), "YOKBOYLE.IS")
	if err == nil {
		t.Fatal("expected error on 404")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestFetchChart_ChartError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})

	if _, err := client.LatestClose(context.Background(), "YOKBOYLE.IS"); err == nil {
		t.Fatal("expected error from chart error payload")
	}
}
